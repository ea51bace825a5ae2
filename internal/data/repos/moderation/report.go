package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type ReportRepo interface {
	Create(dbc dbctx.Context, reports []*types.Report) ([]*types.Report, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Report, error)
	ListByReporter(dbc dbctx.Context, reporterID uuid.UUID, skip, limit int) ([]*types.Report, error)
	ListByStatus(dbc dbctx.Context, status string, skip, limit int) ([]*types.Report, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Count(dbc dbctx.Context) (int64, error)
	CountGrouped(dbc dbctx.Context, column string) (map[string]int64, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (r *reportRepo) Create(dbc dbctx.Context, reports []*types.Report) ([]*types.Report, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(reports) == 0 {
		return []*types.Report{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Report, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rep types.Report
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rep).Error; err != nil {
		return nil, err
	}
	if rep.ID == uuid.Nil {
		return nil, nil
	}
	return &rep, nil
}

func (r *reportRepo) ListByReporter(dbc dbctx.Context, reporterID uuid.UUID, skip, limit int) ([]*types.Report, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Report
	if err := transaction.WithContext(dbc.Ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStatus returns oldest first so the review queue drains in order.
func (r *reportRepo) ListByStatus(dbc dbctx.Context, status string, skip, limit int) ([]*types.Report, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Report
	if err := transaction.WithContext(dbc.Ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Report{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *reportRepo) Count(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(dbc.Ctx).Model(&types.Report{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountGrouped counts reports per value of column ("status" or "report_type").
func (r *reportRepo) CountGrouped(dbc dbctx.Context, column string) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	switch column {
	case "status", "report_type":
	default:
		return nil, gorm.ErrInvalidField
	}
	var rows []struct {
		K string
		N int64
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Report{}).
		Select(column + " AS k, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.K] = row.N
	}
	return out, nil
}
