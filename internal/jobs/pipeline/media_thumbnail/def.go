package media_thumbnail

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/objectstore"
)

// ProfileThumbnails records a finished thumbnail on a profile.
type ProfileThumbnails interface {
	AttachThumbnail(ctx context.Context, profileID uuid.UUID, key string) error
}

type Pipeline struct {
	log      *logger.Logger
	store    objectstore.Store
	profiles ProfileThumbnails
}

func New(baseLog *logger.Logger, store objectstore.Store, profiles ProfileThumbnails) *Pipeline {
	return &Pipeline{
		log:      baseLog.With("job", "media_thumbnail"),
		store:    store,
		profiles: profiles,
	}
}

func (p *Pipeline) Type() string { return "media_thumbnail" }
