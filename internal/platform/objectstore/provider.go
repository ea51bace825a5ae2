package objectstore

import (
	"context"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// New builds the Store for cfg.Mode.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeS3:
		return NewS3Store(ctx, log, cfg)
	case ModeGCS, ModeGCSEmulator:
		return NewGCSStore(ctx, log, cfg)
	case ModeMemory:
		log.Warn("Object storage running in memory mode; uploads are not durable")
		return NewMemoryStore(), nil
	}
	return nil, &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
}
