package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	jobdomain "github.com/yungbote/designhire-backend/internal/domain/jobs"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

/*
Context is the execution handle for one claimed job run.

Handlers never write job_run directly; they report through Progress, Fail and
Succeed so the lifecycle columns stay consistent. The payload is decoded once
on construction and is never nil.
*/
type Context struct {
	Ctx  context.Context
	DB   *gorm.DB
	Job  *types.JobRun
	Repo repos.JobRunRepo

	payload map[string]any
}

func NewContext(ctx context.Context, db *gorm.DB, job *types.JobRun, repo repos.JobRunRepo) *Context {
	c := &Context{Ctx: ctx, DB: db, Job: job, Repo: repo}
	_ = c.decodePayload()
	c.applyTraceData()
	return c
}

func (c *Context) decodePayload() error {
	if c.Job == nil || len(c.Job.Payload) == 0 {
		c.payload = map[string]any{}
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(c.Job.Payload, &m); err != nil || m == nil {
		c.payload = map[string]any{}
		return err
	}
	c.payload = m
	return nil
}

// applyTraceData carries the enqueuing request's ids into the job's logs.
func (c *Context) applyTraceData() {
	if c.Ctx == nil {
		c.Ctx = context.Background()
	}
	traceID := c.PayloadString("trace_id")
	reqID := c.PayloadString("request_id")
	if traceID == "" && reqID == "" {
		return
	}
	c.Ctx = ctxutil.WithTraceData(c.Ctx, &ctxutil.TraceData{TraceID: traceID, RequestID: reqID})
}

func (c *Context) Payload() map[string]any {
	if c.payload == nil {
		c.payload = map[string]any{}
	}
	return c.payload
}

func (c *Context) PayloadString(key string) string {
	v, ok := c.Payload()[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (c *Context) PayloadUUID(key string) (uuid.UUID, bool) {
	s := c.PayloadString(key)
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Context) update(updates map[string]interface{}) {
	if c.Repo == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	_ = c.Repo.Patch(dbctx.Context{Ctx: context.WithoutCancel(c.Ctx)}, c.Job.ID, updates)
}

func (c *Context) Progress(stage string, pct int) {
	now := time.Now().UTC()
	c.update(map[string]interface{}{
		"stage":        stage,
		"progress":     pct,
		"heartbeat_at": now,
	})
	if c.Job != nil {
		c.Job.Stage = stage
		c.Job.Progress = pct
		c.Job.HeartbeatAt = &now
	}
}

// Fail records err and leaves the row eligible for retry by the worker.
func (c *Context) Fail(stage string, err error) {
	now := time.Now().UTC()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.update(map[string]interface{}{
		"status":        jobdomain.StatusFailed,
		"stage":         stage,
		"error":         msg,
		"last_error_at": now,
		"locked_at":     nil,
	})
	if c.Job != nil {
		c.Job.Status = jobdomain.StatusFailed
		c.Job.Stage = stage
		c.Job.Error = msg
		c.Job.LastErrorAt = &now
		c.Job.LockedAt = nil
	}
}

func (c *Context) Succeed(stage string, result any) {
	b, err := json.Marshal(result)
	if err != nil || result == nil {
		b = []byte(`{}`)
	}
	c.update(map[string]interface{}{
		"status":    jobdomain.StatusSucceeded,
		"stage":     stage,
		"progress":  100,
		"error":     "",
		"result":    datatypes.JSON(b),
		"locked_at": nil,
	})
	if c.Job != nil {
		c.Job.Status = jobdomain.StatusSucceeded
		c.Job.Stage = stage
		c.Job.Progress = 100
		c.Job.Error = ""
		c.Job.Result = datatypes.JSON(b)
		c.Job.LockedAt = nil
	}
}
