package interactions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/social"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type ListInput struct {
	ActorID    uuid.UUID
	TargetType string
	Action     string
	Skip       int
	Limit      int
}

type Stats struct {
	TotalInteractions int64            `json:"total_interactions"`
	ByAction          map[string]int64 `json:"by_action"`
}

func (u Usecases) List(ctx context.Context, in ListInput) ([]*types.Interaction, error) {
	if in.Limit == 0 {
		in.Limit = DefaultListLimit
	}
	if in.Skip < 0 || in.Limit < 1 || in.Limit > MaxListLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	filter := repos.InteractionFilter{
		TargetType: strings.ToLower(strings.TrimSpace(in.TargetType)),
		Action:     strings.ToLower(strings.TrimSpace(in.Action)),
	}
	if filter.TargetType != "" && !social.ValidTargetType(filter.TargetType) {
		return nil, apierr.BadRequest("invalid_target_type", "Invalid target_type. Must be 'profile' or 'listing'")
	}
	if filter.Action != "" && !social.ValidAction(filter.Action) {
		return nil, apierr.BadRequest("invalid_action", "Invalid action. Must be one of like, skip, apply, super_like")
	}
	rows, err := u.deps.Interactions.ListByUser(dbctx.Context{Ctx: ctx}, in.ActorID, filter, in.Skip, in.Limit)
	if err != nil {
		return nil, apierr.Internal("list_interactions_failed", err)
	}
	return rows, nil
}

// Stats always reports every action, zero-filled.
func (u Usecases) Stats(ctx context.Context, actorID uuid.UUID) (*Stats, error) {
	counts, err := u.deps.Interactions.CountByAction(dbctx.Context{Ctx: ctx}, actorID)
	if err != nil {
		return nil, apierr.Internal("interaction_stats_failed", err)
	}
	out := &Stats{ByAction: make(map[string]int64, len(social.Actions))}
	for _, a := range social.Actions {
		n := counts[a]
		out.ByAction[a] = n
		out.TotalInteractions += n
	}
	return out, nil
}
