package interactions

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/social"
	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

// DedupWindow is how long an identical action on the same target is rejected.
const DedupWindow = 24 * time.Hour

type RecordInput struct {
	ActorID    uuid.UUID
	TargetType string
	TargetID   uuid.UUID
	Action     string
}

var pastTense = map[string]string{
	types.ActionLike:      "liked",
	types.ActionSkip:      "skipped",
	types.ActionApply:     "applied to",
	types.ActionSuperLike: "super liked",
}

// Record appends an interaction. The actor's user row is locked for the
// duration so concurrent records by one actor cannot both pass the
// duplicate check.
func (u Usecases) Record(ctx context.Context, in RecordInput) (*types.Interaction, error) {
	in.TargetType = strings.ToLower(strings.TrimSpace(in.TargetType))
	in.Action = strings.ToLower(strings.TrimSpace(in.Action))
	if !social.ValidTargetType(in.TargetType) {
		return nil, apierr.BadRequest("invalid_target_type", "Invalid target_type. Must be 'profile' or 'listing'")
	}
	if !social.ValidAction(in.Action) {
		return nil, apierr.BadRequest("invalid_action", "Invalid action. Must be one of like, skip, apply, super_like")
	}
	if in.TargetID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_target_id", "target_id is required")
	}

	now := u.now()
	var created *types.Interaction
	err := u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		actor, err := u.deps.Users.LockByID(dbc, in.ActorID)
		if err != nil {
			return fmt.Errorf("lock actor: %w", err)
		}
		if actor == nil {
			return apierr.NotFound("user_not_found", "User not found")
		}

		dup, err := u.deps.Interactions.ExistsWithin(dbc, in.ActorID, in.TargetType, in.TargetID, in.Action, now.Add(-DedupWindow), now)
		if err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if dup {
			return apierr.Detail(http.StatusBadRequest, "duplicate_interaction",
				fmt.Sprintf("You have already %s this %s recently", pastTense[in.Action], in.TargetType),
				pkgerrors.ErrDuplicateInteraction)
		}

		ownerID, err := u.resolveTargetOwner(dbc, in.TargetType, in.TargetID)
		if err != nil {
			return err
		}
		if ownerID == in.ActorID {
			return apierr.Detail(http.StatusBadRequest, "self_interaction",
				"You cannot interact with your own "+in.TargetType,
				pkgerrors.ErrSelfTarget)
		}

		row := &types.Interaction{
			ID:         uuid.New(),
			UserID:     in.ActorID,
			TargetType: in.TargetType,
			TargetID:   in.TargetID,
			Action:     in.Action,
			CreatedAt:  now,
		}
		if _, err := u.deps.Interactions.Create(dbc, []*types.Interaction{row}); err != nil {
			return fmt.Errorf("create interaction: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, apierr.As(err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Debug("Interaction recorded", "user_id", in.ActorID, "target_type", in.TargetType, "target_id", in.TargetID, "action", in.Action)
	}
	if u.deps.OnRecorded != nil {
		u.deps.OnRecorded(in.Action)
	}
	return created, nil
}

func (u Usecases) resolveTargetOwner(dbc dbctx.Context, targetType string, targetID uuid.UUID) (uuid.UUID, error) {
	switch targetType {
	case types.TargetProfile:
		p, err := u.deps.Profiles.GetByID(dbc, targetID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			return uuid.Nil, apierr.NotFound("profile_not_found", "Profile not found")
		}
		return p.UserID, nil
	case types.TargetListing:
		l, err := u.deps.Listings.GetByID(dbc, targetID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("load listing: %w", err)
		}
		if l == nil {
			return uuid.Nil, apierr.NotFound("listing_not_found", "Listing not found")
		}
		return l.UserID, nil
	}
	return uuid.Nil, apierr.BadRequest("invalid_target_type", "Invalid target_type. Must be 'profile' or 'listing'")
}
