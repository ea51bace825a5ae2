package social

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/designhire-backend/internal/domain"
	socialdomain "github.com/yungbote/designhire-backend/internal/domain/social"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type MatchRepo interface {
	CreateIfAbsent(dbc dbctx.Context, match *types.Match) (bool, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error)
	FindByPair(dbc dbctx.Context, a, b uuid.UUID) (*types.Match, error)
	ListActiveForUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Match, error)
	Unmatch(dbc dbctx.Context, id uuid.UUID, at time.Time) error
}

type matchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	return &matchRepo{db: db, log: baseLog.With("repo", "MatchRepo")}
}

// CreateIfAbsent inserts the match unless the pair already has one. It
// reports false when the unique pair index rejected the row.
func (r *matchRepo) CreateIfAbsent(dbc dbctx.Context, match *types.Match) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
			DoNothing: true,
		}).
		Create(match)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *matchRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var m types.Match
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&m).Error; err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

// FindByPair looks the pair up in either order, active or not.
func (r *matchRepo) FindByPair(dbc dbctx.Context, a, b uuid.UUID) (*types.Match, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	lo, hi := socialdomain.CanonicalPair(a, b)
	var m types.Match
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_low_id = ? AND user_high_id = ?", lo, hi).
		Limit(1).
		Find(&m).Error; err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *matchRepo) ListActiveForUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Match, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Match
	if err := transaction.WithContext(dbc.Ctx).
		Where("(user1_id = ? OR user2_id = ?)", userID, userID).
		Where("is_active = ? AND unmatched = ?", true, false).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *matchRepo) Unmatch(dbc dbctx.Context, id uuid.UUID, at time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unmatched":    true,
			"is_active":    false,
			"unmatched_at": at.UTC(),
			"updated_at":   at.UTC(),
		}).Error
}
