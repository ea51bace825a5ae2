package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/services"
)

type JobHandler struct {
	jobs services.JobService
}

func NewJobHandler(jobs services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// jobStatus is the client-facing view of a job run. Payload and lock columns
// stay internal.
type jobStatus struct {
	ID         uuid.UUID       `json:"id"`
	JobType    string          `json:"job_type"`
	EntityType string          `json:"entity_type,omitempty"`
	EntityID   *uuid.UUID      `json:"entity_id,omitempty"`
	Status     string          `json:"status"`
	Stage      string          `json:"stage"`
	Progress   int             `json:"progress"`
	Attempts   int             `json:"attempts"`
	Error      string          `json:"error,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func newJobStatus(j *types.JobRun) jobStatus {
	out := jobStatus{
		ID:         j.ID,
		JobType:    j.JobType,
		EntityType: j.EntityType,
		EntityID:   j.EntityID,
		Status:     j.Status,
		Stage:      j.Stage,
		Progress:   j.Progress,
		Attempts:   j.Attempts,
		Error:      j.Error,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
	if len(j.Result) > 0 {
		out.Result = json.RawMessage(j.Result)
	}
	return out
}

// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "id", "invalid_job_id")
	if !ok {
		return
	}
	job, err := h.jobs.GetForOwner(c.Request.Context(), rd.UserID, jobID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"job": newJobStatus(job)})
}
