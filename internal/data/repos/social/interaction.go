package social

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type InteractionFilter struct {
	TargetType string
	Action     string
}

type InteractionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Interaction) ([]*types.Interaction, error)
	// ExistsWithin reports an identical row with created_at in [since, until).
	ExistsWithin(dbc dbctx.Context, userID uuid.UUID, targetType string, targetID uuid.UUID, action string, since, until time.Time) (bool, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, filter InteractionFilter, skip, limit int) ([]*types.Interaction, error)
	CountByAction(dbc dbctx.Context, userID uuid.UUID) (map[string]int64, error)
	ListProfileLikes(dbc dbctx.Context, userID uuid.UUID) ([]*types.Interaction, error)
	HasLikedProfileOf(dbc dbctx.Context, likerID uuid.UUID, ownerUserID uuid.UUID) (bool, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	return &interactionRepo{db: db, log: baseLog.With("repo", "InteractionRepo")}
}

func (r *interactionRepo) Create(dbc dbctx.Context, rows []*types.Interaction) ([]*types.Interaction, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Interaction{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepo) ExistsWithin(dbc dbctx.Context, userID uuid.UUID, targetType string, targetID uuid.UUID, action string, since, until time.Time) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Interaction{}).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND action = ?", userID, targetType, targetID, action).
		Where("created_at >= ? AND created_at < ?", since.UTC(), until.UTC()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interactionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, filter InteractionFilter, skip, limit int) ([]*types.Interaction, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if filter.TargetType != "" {
		q = q.Where("target_type = ?", filter.TargetType)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	var out []*types.Interaction
	if err := q.Order("created_at DESC").
		Order("id DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *interactionRepo) CountByAction(dbc dbctx.Context, userID uuid.UUID) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Action string
		N      int64
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Interaction{}).
		Select("action, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("action").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Action] = row.N
	}
	return out, nil
}

// ListProfileLikes returns the user's profile likes oldest first, which is
// the order match detection scans them in.
func (r *interactionRepo) ListProfileLikes(dbc dbctx.Context, userID uuid.UUID) ([]*types.Interaction, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Interaction
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND target_type = ? AND action = ?", userID, types.TargetProfile, types.ActionLike).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// HasLikedProfileOf reports whether likerID has ever liked a profile owned by
// ownerUserID. There is no time window.
func (r *interactionRepo) HasLikedProfileOf(dbc dbctx.Context, likerID uuid.UUID, ownerUserID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Interaction{}).
		Joins("JOIN profiles ON profiles.id = interactions.target_id").
		Where("interactions.user_id = ?", likerID).
		Where("interactions.target_type = ? AND interactions.action = ?", types.TargetProfile, types.ActionLike).
		Where("profiles.user_id = ?", ownerUserID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
