package admin

import (
	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Users repos.UserRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
