package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/http"
	httpH "github.com/yungbote/designhire-backend/internal/http/handlers"
	httpMW "github.com/yungbote/designhire-backend/internal/http/middleware"
	"github.com/yungbote/designhire-backend/internal/observability"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type Middleware struct {
	Auth      *httpMW.AuthMiddleware
	RateLimit *httpMW.RateLimitMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Profile     *httpH.ProfileHandler
	Listing     *httpH.ListingHandler
	Interaction *httpH.InteractionHandler
	Match       *httpH.MatchHandler
	Message     *httpH.MessageHandler
	Report      *httpH.ReportHandler
	Payment     *httpH.PaymentHandler
	Media       *httpH.MediaHandler
	Admin       *httpH.AdminHandler
	Job         *httpH.JobHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	uc := services.Usecases
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		Auth:        httpH.NewAuthHandler(services.Auth),
		Profile:     httpH.NewProfileHandler(uc.Profiles),
		Listing:     httpH.NewListingHandler(uc.Listings),
		Interaction: httpH.NewInteractionHandler(uc.Interactions),
		Match:       httpH.NewMatchHandler(uc.Matches),
		Message:     httpH.NewMessageHandler(uc.Messages),
		Report:      httpH.NewReportHandler(uc.Reports),
		Payment:     httpH.NewPaymentHandler(log, uc.Payments),
		Media:       httpH.NewMediaHandler(uc.Media),
		Admin:       httpH.NewAdminHandler(uc.Admin),
		Job:         httpH.NewJobHandler(services.JobService),
	}
}

func wireMiddleware(log *logger.Logger, services Services, clients Clients, metrics *observability.Metrics) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      httpMW.NewAuthMiddleware(log, services.Auth),
		RateLimit: httpMW.NewRateLimitMiddleware(log, clients.Limiter, metrics),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) http.RouterConfig {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		ServiceName:         serviceName,
		CORSOrigins:         cfg.CORSOrigins,
		AuthMiddleware:      middleware.Auth,
		RateLimitMiddleware: middleware.RateLimit,
		AuthHandler:         handlers.Auth,
		ProfileHandler:      handlers.Profile,
		ListingHandler:      handlers.Listing,
		InteractionHandler:  handlers.Interaction,
		MatchHandler:        handlers.Match,
		MessageHandler:      handlers.Message,
		ReportHandler:       handlers.Report,
		PaymentHandler:      handlers.Payment,
		MediaHandler:        handlers.Media,
		AdminHandler:        handlers.Admin,
		JobHandler:          handlers.Job,
		HealthHandler:       handlers.Health,
	}
}

// Router builds the engine without starting a listener.
func (a *App) Router() *gin.Engine {
	return http.NewRouter(a.routerCfg)
}
