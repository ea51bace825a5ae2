package domain

import (
	"github.com/yungbote/designhire-backend/internal/domain/jobs"
	"github.com/yungbote/designhire-backend/internal/domain/marketplace"
	"github.com/yungbote/designhire-backend/internal/domain/moderation"
	"github.com/yungbote/designhire-backend/internal/domain/social"
	"github.com/yungbote/designhire-backend/internal/domain/user"
)

type (
	User          = user.User
	Profile       = user.Profile
	PortfolioLink = user.PortfolioLink
	MediaRefs     = user.MediaRefs

	Listing = marketplace.Listing
	Payment = marketplace.Payment

	Interaction = social.Interaction
	Match       = social.Match
	Message     = social.Message

	Report = moderation.Report

	JobRun = jobs.JobRun
)

const (
	RoleDesigner = user.RoleDesigner
	RoleHirer    = user.RoleHirer
	RoleAdmin    = user.RoleAdmin

	TargetProfile = social.TargetProfile
	TargetListing = social.TargetListing

	ActionLike      = social.ActionLike
	ActionSkip      = social.ActionSkip
	ActionApply     = social.ActionApply
	ActionSuperLike = social.ActionSuperLike

	MatchTypeLike = social.MatchTypeLike
)

// AllModels is the migration set, in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Listing{},
		&Payment{},
		&Interaction{},
		&Match{},
		&Message{},
		&Report{},
		&JobRun{},
	}
}
