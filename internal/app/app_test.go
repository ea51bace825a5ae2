package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "JWT_SECRET_KEY", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "REDIS_ADDR", "WORKER_ENABLED", "OTEL_SAMPLER_RATIO"} {
		t.Setenv(k, "")
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := LoadConfig(log)
	if cfg.HTTPAddr != ":8000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTL != 30*time.Minute || cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("token ttls = %v / %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if !cfg.WorkerEnabled || cfg.RedisAddr != "" {
		t.Fatalf("unexpected worker/redis defaults: %+v", cfg)
	}
	if cfg.Otel.SampleRatio != 0.1 {
		t.Fatalf("sample ratio = %v", cfg.Otel.SampleRatio)
	}
}

func TestNewWiresLocalApp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("OBJECT_STORAGE_MODE", "memory")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("WORKER_ENABLED", "false")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("OTEL_ENABLED", "false")

	a, err := New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)

	if a.Services.JobWorker != nil {
		t.Fatalf("worker should be disabled")
	}
	if got := a.Services.JobRegistry.Types(); len(got) != 1 || got[0] != "media_thumbnail" {
		t.Fatalf("registered job types = %v", got)
	}
	if a.Clients.Limiter == nil {
		t.Fatalf("expected in-memory limiter when redis is not configured")
	}

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthcheck = %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/matches", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("protected route without token = %d", w.Code)
	}
}
