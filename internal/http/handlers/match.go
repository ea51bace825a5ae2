package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/matches"
)

type MatchHandler struct {
	matches matches.Usecases
}

func NewMatchHandler(uc matches.Usecases) *MatchHandler {
	return &MatchHandler{matches: uc}
}

// POST /api/matches
func (h *MatchHandler) Detect(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	m, err := h.matches.DetectAndCreate(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

// GET /api/matches
func (h *MatchHandler) List(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.matches.List(c.Request.Context(), rd.UserID, skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/matches/:id
func (h *MatchHandler) Get(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_match_id")
	if !ok {
		return
	}
	m, err := h.matches.Get(c.Request.Context(), rd.UserID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// DELETE /api/matches/:id
func (h *MatchHandler) Unmatch(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_match_id")
	if !ok {
		return
	}
	res, err := h.matches.Unmatch(c.Request.Context(), rd.UserID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
