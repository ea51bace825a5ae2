package jobs

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/designhire-backend/internal/domain"
	jobdomain "github.com/yungbote/designhire-backend/internal/domain/jobs"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// ClaimPolicy decides which job rows a worker may pick up.
type ClaimPolicy struct {
	// MaxAttempts caps retries of failed rows.
	MaxAttempts int
	// RetryDelay is the minimum wait after a failure before a retry.
	RetryDelay time.Duration
	// StaleAfter reclaims running rows whose heartbeat stopped this long ago.
	StaleAfter time.Duration
}

type JobRunRepo interface {
	Create(dbc dbctx.Context, job *types.JobRun) error
	Get(dbc dbctx.Context, id uuid.UUID) (*types.JobRun, error)
	ClaimNext(dbc dbctx.Context, policy ClaimPolicy) (*types.JobRun, error)
	Patch(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Touch(dbc dbctx.Context, id uuid.UUID) error
}

type jobRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRunRepo(db *gorm.DB, baseLog *logger.Logger) JobRunRepo {
	return &jobRunRepo{db: db, log: baseLog.With("repo", "JobRunRepo")}
}

func (r *jobRunRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *jobRunRepo) Create(dbc dbctx.Context, job *types.JobRun) error {
	if job == nil {
		return nil
	}
	return r.conn(dbc).Create(job).Error
}

// Get returns nil without error when no row has the id.
func (r *jobRunRepo) Get(dbc dbctx.Context, id uuid.UUID) (*types.JobRun, error) {
	var job types.JobRun
	err := r.conn(dbc).Where("id = ?", id).Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ClaimNext locks the oldest eligible row and flips it to running in the same
// transaction. Eligible rows are queued, failed and past the retry delay with
// attempts left, or running with a stale heartbeat. Returns nil when idle.
func (r *jobRunRepo) ClaimNext(dbc dbctx.Context, policy ClaimPolicy) (*types.JobRun, error) {
	now := time.Now().UTC()
	var claimed *types.JobRun
	err := r.conn(dbc).Transaction(func(tx *gorm.DB) error {
		queued := tx.Where("status = ?", jobdomain.StatusQueued)
		retryable := tx.Where("status = ? AND attempts < ?", jobdomain.StatusFailed, policy.MaxAttempts).
			Where("(last_error_at IS NULL OR last_error_at < ?)", now.Add(-policy.RetryDelay))
		stale := tx.Where("status = ? AND heartbeat_at IS NOT NULL AND heartbeat_at < ?",
			jobdomain.StatusRunning, now.Add(-policy.StaleAfter))

		var job types.JobRun
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where(queued.Or(retryable).Or(stale)).
			Order("created_at ASC").
			Take(&job).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&types.JobRun{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
			"status":       jobdomain.StatusRunning,
			"stage":        "running",
			"attempts":     gorm.Expr("attempts + 1"),
			"locked_at":    now,
			"heartbeat_at": now,
			"updated_at":   now,
		}).Error; err != nil {
			return err
		}
		job.Status = jobdomain.StatusRunning
		job.Stage = "running"
		job.Attempts++
		job.LockedAt = &now
		job.HeartbeatAt = &now
		claimed = &job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Patch applies column updates and stamps updated_at unless the caller did.
func (r *jobRunRepo) Patch(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return r.conn(dbc).Model(&types.JobRun{}).Where("id = ?", id).Updates(updates).Error
}

// Touch refreshes the heartbeat so the row is not reclaimed as stale.
func (r *jobRunRepo) Touch(dbc dbctx.Context, id uuid.UUID) error {
	return r.Patch(dbc, id, map[string]interface{}{"heartbeat_at": time.Now().UTC()})
}
