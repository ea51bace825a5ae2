package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	jobdomain "github.com/yungbote/designhire-backend/internal/domain/jobs"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// JobRequest describes a background job to queue for the worker pool.
type JobRequest struct {
	OwnerUserID uuid.UUID
	JobType     string
	// EntityType and EntityID name the record the job acts on, when any.
	EntityType string
	EntityID   *uuid.UUID
	Payload    map[string]any
}

// JobNotifier observes newly queued jobs.
type JobNotifier interface {
	JobCreated(ownerUserID uuid.UUID, job *types.JobRun)
}

type JobService interface {
	Enqueue(dbc dbctx.Context, req JobRequest) (*types.JobRun, error)
	// GetForOwner hides jobs owned by other users behind job_not_found.
	GetForOwner(ctx context.Context, ownerUserID, jobID uuid.UUID) (*types.JobRun, error)
}

var (
	errMissingOwner   = errors.New("job request has no owner")
	errMissingJobType = errors.New("job request has no job_type")
)

type jobService struct {
	log    *logger.Logger
	repo   repos.JobRunRepo
	notify JobNotifier
}

func NewJobService(baseLog *logger.Logger, repo repos.JobRunRepo, notify JobNotifier) JobService {
	return &jobService{
		log:    baseLog.With("service", "JobService"),
		repo:   repo,
		notify: notify,
	}
}

func (s *jobService) Enqueue(dbc dbctx.Context, req JobRequest) (*types.JobRun, error) {
	if req.OwnerUserID == uuid.Nil {
		return nil, errMissingOwner
	}
	jobType := strings.TrimSpace(req.JobType)
	if jobType == "" {
		return nil, errMissingJobType
	}

	payload := make(map[string]any, len(req.Payload)+2)
	for k, v := range req.Payload {
		payload[k] = v
	}
	// Trace ids ride along so the worker's logs join the request's.
	if td := ctxutil.GetTraceData(dbc.Ctx); td != nil {
		if _, set := payload["trace_id"]; !set && td.TraceID != "" {
			payload["trace_id"] = td.TraceID
		}
		if _, set := payload["request_id"]; !set && td.RequestID != "" {
			payload["request_id"] = td.RequestID
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", jobType, err)
	}

	now := time.Now().UTC()
	job := &types.JobRun{
		ID:          uuid.New(),
		OwnerUserID: req.OwnerUserID,
		JobType:     jobType,
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		Status:      jobdomain.StatusQueued,
		Stage:       "queued",
		Payload:     datatypes.JSON(raw),
		Result:      datatypes.JSON(`{}`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(dbc, job); err != nil {
		return nil, fmt.Errorf("insert %s job: %w", jobType, err)
	}
	if s.notify != nil {
		s.notify.JobCreated(req.OwnerUserID, job)
	}
	s.log.Debug("Job queued", append([]interface{}{"job_id", job.ID, "job_type", jobType}, ctxutil.TraceFields(dbc.Ctx)...)...)
	return job, nil
}

func (s *jobService) GetForOwner(ctx context.Context, ownerUserID, jobID uuid.UUID) (*types.JobRun, error) {
	job, err := s.repo.Get(dbctx.Context{Ctx: ctx}, jobID)
	if err != nil {
		return nil, apierr.Internal("load_job_failed", err)
	}
	if job == nil || job.OwnerUserID != ownerUserID {
		return nil, apierr.NotFound("job_not_found", "Job not found")
	}
	return job, nil
}
