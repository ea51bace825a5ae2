package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	jobdomain "github.com/yungbote/designhire-backend/internal/domain/jobs"
	"github.com/yungbote/designhire-backend/internal/jobs/runtime"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/services"
)

type funcHandler struct {
	typ string
	run func(*runtime.Context) error
}

func (h funcHandler) Type() string                  { return h.typ }
func (h funcHandler) Run(jc *runtime.Context) error { return h.run(jc) }

type fixture struct {
	repo   repos.JobRunRepo
	jobs   services.JobService
	worker *Worker
	owner  *types.User
}

func newFixture(t *testing.T, cfg Config, handlers ...runtime.Handler) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewJobRunRepo(db, log)
	reg := runtime.NewRegistry()
	for _, h := range handlers {
		if err := reg.Register(h); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	return fixture{
		repo:   repo,
		jobs:   services.NewJobService(log, repo, nil),
		worker: NewWorker(db, log, repo, reg, nil, cfg),
		owner:  testutil.SeedUser(t, context.Background(), db, types.RoleDesigner),
	}
}

func (f fixture) enqueue(t *testing.T, jobType string) uuid.UUID {
	t.Helper()
	job, err := f.jobs.Enqueue(dbctx.Context{Ctx: context.Background()}, services.JobRequest{
		OwnerUserID: f.owner.ID,
		JobType:     jobType,
		Payload:     map[string]any{"n": 1},
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	return job.ID
}

func (f fixture) load(t *testing.T, id uuid.UUID) *types.JobRun {
	t.Helper()
	job, err := f.repo.Get(dbctx.Context{Ctx: context.Background()}, id)
	if err != nil || job == nil {
		t.Fatalf("load job %s: %v", id, err)
	}
	return job
}

func TestRunOnceSucceeds(t *testing.T) {
	f := newFixture(t, Config{}, funcHandler{typ: "echo", run: func(jc *runtime.Context) error {
		jc.Succeed("done", map[string]any{"n": jc.Payload()["n"]})
		return nil
	}})
	id := f.enqueue(t, "echo")

	if !f.worker.RunOnce(context.Background(), 1) {
		t.Fatalf("expected a job to be claimed")
	}
	job := f.load(t, id)
	if job.Status != jobdomain.StatusSucceeded || job.Attempts != 1 || job.Progress != 100 {
		t.Fatalf("unexpected job state: status=%s attempts=%d progress=%d", job.Status, job.Attempts, job.Progress)
	}
	var result map[string]any
	if err := json.Unmarshal(job.Result, &result); err != nil || result["n"] != float64(1) {
		t.Fatalf("result: %s err=%v", job.Result, err)
	}
	if f.worker.RunOnce(context.Background(), 1) {
		t.Fatalf("queue should be empty")
	}
}

func TestFailedJobsRetryUpToMaxAttempts(t *testing.T) {
	calls := 0
	f := newFixture(t, Config{MaxAttempts: 3, RetryDelay: time.Millisecond}, funcHandler{typ: "flaky", run: func(*runtime.Context) error {
		calls++
		return errors.New("boom")
	}})
	id := f.enqueue(t, "flaky")

	for i := 0; i < 5; i++ {
		f.worker.RunOnce(context.Background(), 1)
		time.Sleep(5 * time.Millisecond)
	}
	job := f.load(t, id)
	if calls != 3 || job.Attempts != 3 {
		t.Fatalf("want 3 attempts, got calls=%d attempts=%d", calls, job.Attempts)
	}
	if job.Status != jobdomain.StatusFailed || job.Error != "boom" {
		t.Fatalf("unexpected job state: status=%s error=%q", job.Status, job.Error)
	}
}

func TestPanicsAndUnknownTypesFailTheJob(t *testing.T) {
	f := newFixture(t, Config{}, funcHandler{typ: "explode", run: func(*runtime.Context) error {
		panic("kaboom")
	}})
	panicID := f.enqueue(t, "explode")
	f.worker.RunOnce(context.Background(), 1)
	if job := f.load(t, panicID); job.Status != jobdomain.StatusFailed || job.Stage != "panic" {
		t.Fatalf("panic: status=%s stage=%s", job.Status, job.Stage)
	}

	unknownID := f.enqueue(t, "nobody_handles_this")
	time.Sleep(2 * time.Millisecond)
	for f.worker.RunOnce(context.Background(), 1) {
		if f.load(t, unknownID).Stage == "dispatch" {
			break
		}
	}
	if job := f.load(t, unknownID); job.Status != jobdomain.StatusFailed || job.Stage != "dispatch" {
		t.Fatalf("unknown type: status=%s stage=%s", job.Status, job.Stage)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t, Config{Concurrency: 2, PollInterval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.worker.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop")
	}
}
