package interactions

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Users        repos.UserRepo
	Profiles     repos.ProfileRepo
	Listings     repos.ListingRepo
	Interactions repos.InteractionRepo

	// Now defaults to time.Now.
	Now func() time.Time
	// OnRecorded is called after a successful insert.
	OnRecorded func(action string)
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

func (u Usecases) now() time.Time { return u.deps.Now().UTC() }
