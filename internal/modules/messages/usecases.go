package messages

import (
	"time"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Matches  repos.MatchRepo
	Messages repos.MessageRepo

	Now    func() time.Time
	OnSent func()
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
