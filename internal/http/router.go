package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/designhire-backend/internal/http/handlers"
	httpMW "github.com/yungbote/designhire-backend/internal/http/middleware"
	"github.com/yungbote/designhire-backend/internal/observability"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware      *httpMW.AuthMiddleware
	RateLimitMiddleware *httpMW.RateLimitMiddleware

	AuthHandler        *httpH.AuthHandler
	ProfileHandler     *httpH.ProfileHandler
	ListingHandler     *httpH.ListingHandler
	InteractionHandler *httpH.InteractionHandler
	MatchHandler       *httpH.MatchHandler
	MessageHandler     *httpH.MessageHandler
	ReportHandler      *httpH.ReportHandler
	PaymentHandler     *httpH.PaymentHandler
	MediaHandler       *httpH.MediaHandler
	AdminHandler       *httpH.AdminHandler
	JobHandler         *httpH.JobHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	rl := cfg.RateLimitMiddleware

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			auth := api.Group("/auth", rl.Limit(ratelimit.Auth))
			auth.POST("/signup", cfg.AuthHandler.Signup)
			auth.POST("/login", cfg.AuthHandler.Login)
			auth.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Payment provider callback (public)
		if cfg.PaymentHandler != nil {
			api.POST("/payments/webhook", cfg.PaymentHandler.Webhook)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		apiLimit := rl.Limit(ratelimit.API)

		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", apiLimit, cfg.AuthHandler.Me)
		}

		// Profiles
		if h := cfg.ProfileHandler; h != nil {
			g := protected.Group("/profiles", apiLimit)
			g.POST("", h.Create)
			g.GET("/me", h.GetMine)
			g.PUT("/me", h.UpdateMine)
			g.DELETE("/me", h.DeleteMine)
			g.GET("/feed", h.Feed)
			g.GET("/:id", h.Get)
		}

		// Listings
		if h := cfg.ListingHandler; h != nil {
			g := protected.Group("/listings", apiLimit)
			g.POST("", h.Create)
			g.GET("", h.Search)
			g.GET("/my-listings", h.Mine)
			g.GET("/:id", h.Get)
			g.PUT("/:id", h.Update)
			g.DELETE("/:id", h.Delete)
		}

		// Interactions (swipes carry their own budget)
		if h := cfg.InteractionHandler; h != nil {
			protected.POST("/interactions", rl.Limit(ratelimit.Swipe), h.Record)
			protected.GET("/interactions", apiLimit, h.List)
			protected.GET("/interactions/stats", apiLimit, h.Stats)
		}

		// Matches
		if h := cfg.MatchHandler; h != nil {
			g := protected.Group("/matches", apiLimit)
			g.POST("", h.Detect)
			g.GET("", h.List)
			g.GET("/:id", h.Get)
			g.DELETE("/:id", h.Unmatch)
		}

		// Messages
		if h := cfg.MessageHandler; h != nil {
			g := protected.Group("/messages", apiLimit)
			g.POST("", h.Send)
			g.GET("/match/:id", h.ListForMatch)
			g.PUT("/:id/read", h.MarkRead)
			g.GET("/unread/count", h.UnreadCount)
		}

		// Reports
		if h := cfg.ReportHandler; h != nil {
			g := protected.Group("/reports", apiLimit)
			g.POST("", h.Create)
			g.GET("/my-reports", h.Mine)
			g.GET("/pending", h.Pending)
			g.GET("/stats/overview", h.Stats)
			g.GET("/:id", h.Get)
			g.PUT("/:id/review", h.Review)
		}

		// Payments
		if h := cfg.PaymentHandler; h != nil {
			g := protected.Group("/payments", apiLimit)
			g.POST("/boost/checkout", h.CreateBoostCheckout)
			g.POST("/boost/confirm", h.ConfirmBoost)
			g.GET("/my-payments", h.Mine)
		}

		// Media
		if h := cfg.MediaHandler; h != nil {
			g := protected.Group("/media", apiLimit)
			g.POST("/signed-url", h.SignedUploadURL)
			g.POST("/delete", h.Delete)
			g.GET("/url/*key", h.FileURL)
			g.POST("/process", h.Process)
		}

		// Admin
		if h := cfg.AdminHandler; h != nil {
			g := protected.Group("/admin", apiLimit)
			if cfg.AuthMiddleware != nil {
				g.Use(cfg.AuthMiddleware.RequireAdmin())
			}
			g.GET("/users", h.ListUsers)
			g.PUT("/users/:id/activate", h.Activate)
			g.PUT("/users/:id/deactivate", h.Deactivate)
			g.PUT("/users/:id/role", h.ChangeRole)
		}

		// Job
		if cfg.JobHandler != nil {
			protected.GET("/jobs/:id", apiLimit, cfg.JobHandler.GetJob)
		}
	}

	return r
}
