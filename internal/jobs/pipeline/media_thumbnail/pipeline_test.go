package media_thumbnail

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	jobdomain "github.com/yungbote/designhire-backend/internal/domain/jobs"
	jobrt "github.com/yungbote/designhire-backend/internal/jobs/runtime"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/objectstore"
)

type recordingProfiles struct {
	profileID uuid.UUID
	key       string
}

func (r *recordingProfiles) AttachThumbnail(_ context.Context, profileID uuid.UUID, key string) error {
	r.profileID, r.key = profileID, key
	return nil
}

func TestPipelineAttachesThumbnailToProfile(t *testing.T) {
	log, _ := logger.New("test")
	store := objectstore.NewMemoryStore()
	ctx := context.Background()

	var src bytes.Buffer
	if err := jpeg.Encode(&src, image.NewRGBA(image.Rect(0, 0, 800, 800)), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	key := "image/u/20240101/me.jpg"
	if err := store.Put(ctx, key, "image/jpeg", &src); err != nil {
		t.Fatalf("Put: %v", err)
	}

	profiles := &recordingProfiles{}
	p := New(log, store, profiles)
	pid := uuid.New()
	payload, _ := json.Marshal(map[string]any{"object_key": key, "profile_id": pid.String()})
	jc := jobrt.NewContext(ctx, nil, &types.JobRun{ID: uuid.New(), Payload: payload}, nil)

	if err := p.Run(jc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if jc.Job.Status != jobdomain.StatusSucceeded {
		t.Fatalf("status: %s (%s)", jc.Job.Status, jc.Job.Error)
	}
	if profiles.profileID != pid || profiles.key != "image/u/20240101/me_thumb.jpg" {
		t.Fatalf("attach: %+v", profiles)
	}
}

func TestPipelineFailsWhenSourceMissing(t *testing.T) {
	log, _ := logger.New("test")
	p := New(log, objectstore.NewMemoryStore(), nil)
	payload, _ := json.Marshal(map[string]any{"object_key": "image/u/missing.png"})
	jc := jobrt.NewContext(context.Background(), nil, &types.JobRun{ID: uuid.New(), Payload: payload}, nil)

	if err := p.Run(jc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if jc.Job.Status != jobdomain.StatusFailed || jc.Job.Stage != "render" {
		t.Fatalf("status=%s stage=%s", jc.Job.Status, jc.Job.Stage)
	}
}
