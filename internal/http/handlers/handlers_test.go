package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/modules/media"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/objectstore"
	"github.com/yungbote/designhire-backend/internal/services"
)

type recordingJobs struct {
	enqueued []map[string]any
	runs     map[uuid.UUID]*types.JobRun
}

func (r *recordingJobs) Enqueue(_ dbctx.Context, req services.JobRequest) (*types.JobRun, error) {
	r.enqueued = append(r.enqueued, req.Payload)
	job := &types.JobRun{ID: uuid.New(), OwnerUserID: req.OwnerUserID, JobType: req.JobType, EntityType: req.EntityType, EntityID: req.EntityID}
	if r.runs == nil {
		r.runs = map[uuid.UUID]*types.JobRun{}
	}
	r.runs[job.ID] = job
	return job, nil
}

func (r *recordingJobs) GetForOwner(_ context.Context, owner, id uuid.UUID) (*types.JobRun, error) {
	job, ok := r.runs[id]
	if !ok || job.OwnerUserID != owner {
		return nil, apierr.NotFound("job_not_found", "Job not found")
	}
	return job, nil
}

func asUser(rd *ctxutil.RequestData) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rd != nil {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		}
		c.Next()
	}
}

func newMediaEngine(t *testing.T, rd *ctxutil.RequestData, jobs *recordingJobs) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	deps := media.UsecasesDeps{
		Log:     log,
		Store:   objectstore.NewMemoryStore(),
		Now:     func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) },
		RandHex: func(int) string { return "0123456789abcdef" },
	}
	if jobs != nil {
		deps.Jobs = jobs
	}
	uc := media.New(deps)
	h := NewMediaHandler(uc)
	r := gin.New()
	r.Use(asUser(rd))
	r.POST("/media/signed-url", h.SignedUploadURL)
	r.GET("/media/url/*key", h.FileURL)
	r.POST("/media/process", h.Process)
	return r
}

func serve(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMediaSignedURLEnqueuesThumbnail(t *testing.T) {
	userID := uuid.New()
	jobs := &recordingJobs{}
	r := newMediaEngine(t, &ctxutil.RequestData{UserID: userID, Role: types.RoleDesigner}, jobs)

	w := serve(r, http.MethodPost, "/media/signed-url", map[string]any{
		"file_name": "me.png", "content_type": "image/png", "file_size": 2048,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var out media.SignedURL
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "image/" + userID.String() + "/20240309/0123456789abcdef.png"
	if out.ObjectKey != want {
		t.Fatalf("object key: got %q want %q", out.ObjectKey, want)
	}
	if len(jobs.enqueued) != 1 || jobs.enqueued[0]["object_key"] != want {
		t.Fatalf("expected one thumbnail job for %q, got %v", want, jobs.enqueued)
	}
}

func TestMediaFileURLStripsWildcardSlash(t *testing.T) {
	r := newMediaEngine(t, &ctxutil.RequestData{UserID: uuid.New()}, nil)

	w := serve(r, http.MethodGet, "/media/url/images/abc/photo.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out media.FileURL
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ObjectKey != "images/abc/photo.png" {
		t.Fatalf("object key: got %q", out.ObjectKey)
	}
}

func TestMediaProcessAcceptsQueryParams(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	jobs := &recordingJobs{}
	r := newMediaEngine(t, &ctxutil.RequestData{UserID: userID}, jobs)

	key := "image/" + userID.String() + "/20240309/x.jpg"
	w := serve(r, http.MethodPost, "/media/process?object_key="+key+"&profile_id="+profileID.String(), nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if len(jobs.enqueued) != 1 || jobs.enqueued[0]["profile_id"] != profileID.String() {
		t.Fatalf("unexpected jobs: %v", jobs.enqueued)
	}

	w = serve(r, http.MethodPost, "/media/process?object_key="+key+"&profile_id=nope", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad profile_id, got %d", w.Code)
	}
}

func TestMediaRequiresCaller(t *testing.T) {
	r := newMediaEngine(t, nil, nil)
	w := serve(r, http.MethodGet, "/media/url/images/a/b.png", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestQueryListAndPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var skills []string
	var skip, limit int
	var ok bool
	r := gin.New()
	r.GET("/q", func(c *gin.Context) {
		skills = queryList(c, "skills")
		skip, limit, ok = paging(c)
		if ok {
			c.Status(http.StatusNoContent)
		}
	})

	w := serve(r, http.MethodGet, "/q?skills=figma,%20ux&skills=motion&skip=10&limit=5", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if strings.Join(skills, "|") != "figma|ux|motion" {
		t.Fatalf("skills: got %v", skills)
	}
	if skip != 10 || limit != 5 {
		t.Fatalf("paging: got skip=%d limit=%d", skip, limit)
	}

	w = serve(r, http.MethodGet, "/q?skip=x", nil)
	if w.Code != http.StatusBadRequest || ok {
		t.Fatalf("expected 400 for bad skip, got %d", w.Code)
	}
}

func TestGetJobHidesPayloadAndOtherOwners(t *testing.T) {
	gin.SetMode(gin.TestMode)
	owner := &ctxutil.RequestData{UserID: uuid.New(), Role: types.RoleDesigner}
	jobs := &recordingJobs{}
	job, _ := jobs.Enqueue(dbctx.Context{Ctx: context.Background()}, services.JobRequest{
		OwnerUserID: owner.UserID,
		JobType:     media.ThumbnailJob,
		Payload:     map[string]any{"object_key": "image/x/y.png"},
	})
	job.Status = "succeeded"
	job.Result = []byte(`{"thumbnail_key":"thumbnails/image/x/y.png"}`)
	job.Payload = []byte(`{"object_key":"image/x/y.png"}`)

	h := NewJobHandler(jobs)
	r := gin.New()
	r.Use(asUser(owner))
	r.GET("/jobs/:id", h.GetJob)

	w := serve(r, http.MethodGet, "/jobs/"+job.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Job map[string]any `json:"job"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Job["status"] != "succeeded" || body.Job["job_type"] != media.ThumbnailJob {
		t.Fatalf("unexpected job view: %v", body.Job)
	}
	if _, leaked := body.Job["payload"]; leaked {
		t.Fatalf("payload must not be exposed: %v", body.Job)
	}
	result, _ := body.Job["result"].(map[string]any)
	if result["thumbnail_key"] != "thumbnails/image/x/y.png" {
		t.Fatalf("result: got %v", body.Job["result"])
	}

	other := gin.New()
	other.Use(asUser(&ctxutil.RequestData{UserID: uuid.New(), Role: types.RoleDesigner}))
	other.GET("/jobs/:id", h.GetJob)
	if w := serve(other, http.MethodGet, "/jobs/"+job.ID.String(), nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/jobs/nope", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}
