package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/profiles"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
)

type ProfileHandler struct {
	profiles profiles.Usecases
}

func NewProfileHandler(uc profiles.Usecases) *ProfileHandler {
	return &ProfileHandler{profiles: uc}
}

// POST /api/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var in profiles.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.profiles.Create(c.Request.Context(), rd.UserID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

// GET /api/profiles/me
func (h *ProfileHandler) GetMine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	p, err := h.profiles.GetMine(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// PUT /api/profiles/me
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var in profiles.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.profiles.UpdateMine(c.Request.Context(), rd.UserID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// DELETE /api/profiles/me
func (h *ProfileHandler) DeleteMine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	if err := h.profiles.DeleteMine(c.Request.Context(), rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_profile_id")
	if !ok {
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// GET /api/profiles/feed?exclude_ids=a,b&limit=20
func (h *ProfileHandler) Feed(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	var exclude []uuid.UUID
	for _, raw := range queryList(c, "exclude_ids") {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondAPIError(c, apierr.BadRequest("invalid_request", "exclude_ids must be a list of ids"))
			return
		}
		exclude = append(exclude, id)
	}
	cards, err := h.profiles.Feed(c.Request.Context(), rd.UserID, exclude, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cards)
}
