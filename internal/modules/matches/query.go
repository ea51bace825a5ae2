package matches

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type UnmatchResult struct {
	Message string    `json:"message"`
	MatchID uuid.UUID `json:"match_id"`
}

func (u Usecases) List(ctx context.Context, actorID uuid.UUID, skip, limit int) ([]*types.Match, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 || limit < 1 || limit > MaxListLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	rows, err := u.deps.Matches.ListActiveForUser(dbctx.Context{Ctx: ctx}, actorID, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_matches_failed", err)
	}
	return rows, nil
}

func (u Usecases) Get(ctx context.Context, actorID, matchID uuid.UUID) (*types.Match, error) {
	return u.loadForMember(ctx, actorID, matchID, "You don't have permission to view this match")
}

// Unmatch deactivates the match for both users. Repeating it is a no-op
// success and message history is left in place.
func (u Usecases) Unmatch(ctx context.Context, actorID, matchID uuid.UUID) (*UnmatchResult, error) {
	m, err := u.loadForMember(ctx, actorID, matchID, "You don't have permission to unmatch this user")
	if err != nil {
		return nil, err
	}
	if err := u.deps.Matches.Unmatch(dbctx.Context{Ctx: ctx}, m.ID, u.deps.Now()); err != nil {
		return nil, apierr.Internal("unmatch_failed", err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Match unmatched", "match_id", m.ID, "user_id", actorID, "peer_id", m.Peer(actorID))
	}
	return &UnmatchResult{Message: "Match unmatched successfully", MatchID: m.ID}, nil
}

func (u Usecases) loadForMember(ctx context.Context, actorID, matchID uuid.UUID, forbiddenMsg string) (*types.Match, error) {
	m, err := u.deps.Matches.GetByID(dbctx.Context{Ctx: ctx}, matchID)
	if err != nil {
		return nil, apierr.Internal("load_match_failed", err)
	}
	if m == nil {
		return nil, apierr.NotFound("match_not_found", "Match not found")
	}
	if !m.HasUser(actorID) {
		return nil, apierr.Forbidden(forbiddenMsg)
	}
	return m, nil
}
