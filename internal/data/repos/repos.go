package repos

import (
	"github.com/yungbote/designhire-backend/internal/data/repos/jobs"
	"github.com/yungbote/designhire-backend/internal/data/repos/marketplace"
	"github.com/yungbote/designhire-backend/internal/data/repos/moderation"
	"github.com/yungbote/designhire-backend/internal/data/repos/social"
	"github.com/yungbote/designhire-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo
type UserFilter = user.UserFilter
type ProfileRepo = user.ProfileRepo

type ListingRepo = marketplace.ListingRepo
type ListingFilter = marketplace.ListingFilter
type PaymentRepo = marketplace.PaymentRepo

type InteractionRepo = social.InteractionRepo
type InteractionFilter = social.InteractionFilter
type MatchRepo = social.MatchRepo
type MessageRepo = social.MessageRepo

type ReportRepo = moderation.ReportRepo

type JobRunRepo = jobs.JobRunRepo
type ClaimPolicy = jobs.ClaimPolicy

var (
	NewUserRepo        = user.NewUserRepo
	NewProfileRepo     = user.NewProfileRepo
	NewListingRepo     = marketplace.NewListingRepo
	NewPaymentRepo     = marketplace.NewPaymentRepo
	NewInteractionRepo = social.NewInteractionRepo
	NewMatchRepo       = social.NewMatchRepo
	NewMessageRepo     = social.NewMessageRepo
	NewReportRepo      = moderation.NewReportRepo
	NewJobRunRepo      = jobs.NewJobRunRepo
)
