package matches

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

// DetectAndCreate walks the actor's profile likes oldest first and creates a
// match for every reciprocated pair that has none. The first match created
// in that order is returned.
func (u Usecases) DetectAndCreate(ctx context.Context, actorID uuid.UUID) (*types.Match, error) {
	var created []*types.Match
	err := u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		likes, err := u.deps.Interactions.ListProfileLikes(dbc, actorID)
		if err != nil {
			return fmt.Errorf("list likes: %w", err)
		}
		if len(likes) == 0 {
			return nil
		}

		profileIDs := make([]uuid.UUID, 0, len(likes))
		for _, l := range likes {
			profileIDs = append(profileIDs, l.TargetID)
		}
		profiles, err := u.deps.Profiles.GetByIDs(dbc, profileIDs)
		if err != nil {
			return fmt.Errorf("load liked profiles: %w", err)
		}
		ownerByProfile := make(map[uuid.UUID]uuid.UUID, len(profiles))
		for _, p := range profiles {
			ownerByProfile[p.ID] = p.UserID
		}

		seen := map[uuid.UUID]bool{}
		for _, like := range likes {
			peerID, ok := ownerByProfile[like.TargetID]
			if !ok || peerID == actorID || seen[peerID] {
				continue
			}
			seen[peerID] = true

			reciprocal, err := u.deps.Interactions.HasLikedProfileOf(dbc, peerID, actorID)
			if err != nil {
				return fmt.Errorf("check reciprocal like: %w", err)
			}
			if !reciprocal {
				continue
			}
			existing, err := u.deps.Matches.FindByPair(dbc, actorID, peerID)
			if err != nil {
				return fmt.Errorf("find match: %w", err)
			}
			if existing != nil {
				continue
			}

			now := u.deps.Now().UTC()
			m := &types.Match{
				ID:        uuid.New(),
				User1ID:   actorID,
				User2ID:   peerID,
				MatchType: types.MatchTypeLike,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			inserted, err := u.deps.Matches.CreateIfAbsent(dbc, m)
			if err != nil {
				return fmt.Errorf("create match: %w", err)
			}
			if inserted {
				created = append(created, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apierr.As(err)
	}
	if len(created) == 0 {
		return nil, apierr.Detail(http.StatusNotFound, "no_new_matches", "No new matches found", pkgerrors.ErrNoNewMatch)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Matches created", "user_id", actorID, "count", len(created), "first_match_id", created[0].ID)
	}
	if u.deps.OnCreated != nil {
		u.deps.OnCreated(len(created))
	}
	return created[0], nil
}
