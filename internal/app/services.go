package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/jobs/pipeline/media_thumbnail"
	jobruntime "github.com/yungbote/designhire-backend/internal/jobs/runtime"
	"github.com/yungbote/designhire-backend/internal/jobs/worker"
	"github.com/yungbote/designhire-backend/internal/modules/admin"
	"github.com/yungbote/designhire-backend/internal/modules/interactions"
	"github.com/yungbote/designhire-backend/internal/modules/listings"
	"github.com/yungbote/designhire-backend/internal/modules/matches"
	"github.com/yungbote/designhire-backend/internal/modules/media"
	"github.com/yungbote/designhire-backend/internal/modules/messages"
	"github.com/yungbote/designhire-backend/internal/modules/payments"
	"github.com/yungbote/designhire-backend/internal/modules/profiles"
	"github.com/yungbote/designhire-backend/internal/modules/reports"
	"github.com/yungbote/designhire-backend/internal/observability"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/services"
)

type Usecases struct {
	Profiles     profiles.Usecases
	Listings     listings.Usecases
	Interactions interactions.Usecases
	Matches      matches.Usecases
	Messages     messages.Usecases
	Reports      reports.Usecases
	Payments     payments.Usecases
	Media        media.Usecases
	Admin        admin.Usecases
}

type Services struct {
	Auth       services.AuthService
	Filter     services.ContentFilter
	JobService services.JobService

	Usecases Usecases

	// Job infra
	JobRegistry *jobruntime.Registry
	JobWorker   *worker.Worker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	filter, err := services.NewContentFilter(log, cfg.ModerationRulesPath)
	if err != nil {
		return Services{}, fmt.Errorf("init content filter: %w", err)
	}
	auth := services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	jobService := services.NewJobService(log, repos.JobRun, nil)

	uc := Usecases{
		Profiles: profiles.New(profiles.UsecasesDeps{
			Log:      log.With("module", "profiles"),
			Profiles: repos.Profile,
			Filter:   filter,
		}),
		Listings: listings.New(listings.UsecasesDeps{
			Log:      log.With("module", "listings"),
			Listings: repos.Listing,
			Filter:   filter,
		}),
		Interactions: interactions.New(interactions.UsecasesDeps{
			DB:           db,
			Log:          log.With("module", "interactions"),
			Users:        repos.User,
			Profiles:     repos.Profile,
			Listings:     repos.Listing,
			Interactions: repos.Interaction,
			OnRecorded:   metrics.InteractionRecorded,
		}),
		Matches: matches.New(matches.UsecasesDeps{
			DB:           db,
			Log:          log.With("module", "matches"),
			Profiles:     repos.Profile,
			Interactions: repos.Interaction,
			Matches:      repos.Match,
			OnCreated:    metrics.MatchesCreated,
		}),
		Messages: messages.New(messages.UsecasesDeps{
			Log:      log.With("module", "messages"),
			Matches:  repos.Match,
			Messages: repos.Message,
			OnSent:   metrics.MessageSent,
		}),
		Reports: reports.New(reports.UsecasesDeps{
			Log:     log.With("module", "reports"),
			Reports: repos.Report,
		}),
		Payments: payments.New(payments.UsecasesDeps{
			DB:          db,
			Log:         log.With("module", "payments"),
			Payments:    repos.Payment,
			Listings:    repos.Listing,
			OnCompleted: metrics.PaymentCompleted,
		}),
		Media: media.New(media.UsecasesDeps{
			Log:   log.With("module", "media"),
			Store: clients.Store,
			Jobs:  jobService,
		}),
		Admin: admin.New(admin.UsecasesDeps{
			Log:   log.With("module", "admin"),
			Users: repos.User,
		}),
	}

	registry := jobruntime.NewRegistry()
	if err := registry.Register(media_thumbnail.New(log, clients.Store, uc.Profiles)); err != nil {
		return Services{}, fmt.Errorf("register media_thumbnail: %w", err)
	}

	var jobWorker *worker.Worker
	if cfg.WorkerEnabled {
		jobWorker = worker.NewWorker(db, log, repos.JobRun, registry, metrics, worker.Config{
			Concurrency:  cfg.WorkerConcurrency,
			PollInterval: cfg.WorkerPollInterval,
		})
	}

	return Services{
		Auth:        auth,
		Filter:      filter,
		JobService:  jobService,
		Usecases:    uc,
		JobRegistry: registry,
		JobWorker:   jobWorker,
	}, nil
}
