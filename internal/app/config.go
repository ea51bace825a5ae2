package app

import (
	"strings"
	"time"

	"github.com/yungbote/designhire-backend/internal/observability"
	"github.com/yungbote/designhire-backend/internal/platform/envutil"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Environment string
	HTTPAddr    string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	WorkerEnabled      bool
	WorkerConcurrency  int
	WorkerPollInterval time.Duration

	CORSOrigins         []string
	RateLimitEnabled    bool
	ModerationRulesPath string

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.String("ENVIRONMENT", "development", log)
	cfg := Config{
		Environment: env,
		HTTPAddr:    envutil.String("HTTP_ADDR", ":8000", log),

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", defaultJWTSecret, log),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", 30*time.Minute, log),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 7*24*time.Hour, log),

		RedisAddr:     strings.TrimSpace(envutil.String("REDIS_ADDR", "", log)),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),

		WorkerEnabled:      envutil.Bool("WORKER_ENABLED", true, log),
		WorkerConcurrency:  envutil.Int("WORKER_CONCURRENCY", 2, log),
		WorkerPollInterval: envutil.Duration("WORKER_POLL_INTERVAL", time.Second, log),

		CORSOrigins:         envutil.List("CORS_ALLOWED_ORIGINS", nil, log),
		RateLimitEnabled:    envutil.Bool("RATE_LIMIT_ENABLED", true, log),
		ModerationRulesPath: envutil.String("MODERATION_RULES_PATH", "", log),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "designhire-api", log),
			Environment: env,
			Version:     envutil.String("SERVICE_VERSION", "dev", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1, log),
		},
	}
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY is not set; using an insecure development secret")
	}
	return cfg
}
