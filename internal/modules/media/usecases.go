package media

import (
	"time"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/objectstore"
	"github.com/yungbote/designhire-backend/internal/services"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Store objectstore.Store
	Jobs  services.JobService

	Now func() time.Time
	// RandHex returns n random bytes hex-encoded; tests pin it.
	RandHex func(n int) string
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.RandHex == nil {
		deps.RandHex = randomHex
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
