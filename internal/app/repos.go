package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Profile     repos.ProfileRepo
	Listing     repos.ListingRepo
	Payment     repos.PaymentRepo
	Interaction repos.InteractionRepo
	Match       repos.MatchRepo
	Message     repos.MessageRepo
	Report      repos.ReportRepo
	JobRun      repos.JobRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Profile:     repos.NewProfileRepo(db, log),
		Listing:     repos.NewListingRepo(db, log),
		Payment:     repos.NewPaymentRepo(db, log),
		Interaction: repos.NewInteractionRepo(db, log),
		Match:       repos.NewMatchRepo(db, log),
		Message:     repos.NewMessageRepo(db, log),
		Report:      repos.NewReportRepo(db, log),
		JobRun:      repos.NewJobRunRepo(db, log),
	}
}
