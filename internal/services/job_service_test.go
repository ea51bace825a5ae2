package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

type countingNotifier struct{ created int }

func (n *countingNotifier) JobCreated(uuid.UUID, *types.JobRun) { n.created++ }

func TestJobServiceEnqueueCarriesTraceIDs(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	notifier := &countingNotifier{}
	svc := NewJobService(log, repos.NewJobRunRepo(db, log), notifier)

	ctx := ctxutil.WithTraceData(context.Background(), &ctxutil.TraceData{TraceID: "trace-1", RequestID: "req-1"})
	owner := testutil.SeedUser(t, ctx, db, types.RoleDesigner)

	in := map[string]any{"object_key": "image/x/y.png"}
	job, err := svc.Enqueue(dbctx.Context{Ctx: ctx}, JobRequest{
		OwnerUserID: owner.ID,
		JobType:     "media_thumbnail",
		EntityType:  "media",
		Payload:     in,
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if job.Status != "queued" || notifier.created != 1 {
		t.Fatalf("unexpected job state: status=%s notified=%d", job.Status, notifier.created)
	}
	if _, leaked := in["trace_id"]; leaked {
		t.Fatalf("caller payload was mutated: %v", in)
	}
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["trace_id"] != "trace-1" || payload["request_id"] != "req-1" || payload["object_key"] != "image/x/y.png" {
		t.Fatalf("unexpected payload: %v", payload)
	}

	got, err := svc.GetForOwner(ctx, owner.ID, job.ID)
	if err != nil || got.ID != job.ID {
		t.Fatalf("GetForOwner: job=%v err=%v", got, err)
	}
	_, err = svc.GetForOwner(ctx, uuid.New(), job.ID)
	wantAPIErr(t, err, http.StatusNotFound, "job_not_found")
	_, err = svc.GetForOwner(ctx, owner.ID, uuid.New())
	wantAPIErr(t, err, http.StatusNotFound, "job_not_found")
}

func TestJobServiceEnqueueRequiresOwnerAndType(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewJobService(log, repos.NewJobRunRepo(db, log), nil)
	ctx := dbctx.Context{Ctx: context.Background()}
	if _, err := svc.Enqueue(ctx, JobRequest{JobType: "x"}); !errors.Is(err, errMissingOwner) {
		t.Fatalf("expected errMissingOwner, got %v", err)
	}
	if _, err := svc.Enqueue(ctx, JobRequest{OwnerUserID: uuid.New(), JobType: "  "}); !errors.Is(err, errMissingJobType) {
		t.Fatalf("expected errMissingJobType, got %v", err)
	}
}
