package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/media"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
)

type MediaHandler struct {
	media media.Usecases
}

func NewMediaHandler(uc media.Usecases) *MediaHandler {
	return &MediaHandler{media: uc}
}

func mediaActor(rd *ctxutil.RequestData) media.Actor {
	return media.Actor{UserID: rd.UserID, Role: rd.Role}
}

// POST /api/media/signed-url
func (h *MediaHandler) SignedUploadURL(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var in media.SignedURLInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.media.SignedUploadURL(c.Request.Context(), mediaActor(rd), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// POST /api/media/delete
func (h *MediaHandler) Delete(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		ObjectKey string `json:"object_key"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.media.Delete(c.Request.Context(), mediaActor(rd), req.ObjectKey)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/media/url/*key
func (h *MediaHandler) FileURL(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	res, err := h.media.FileURL(c.Request.Context(), key)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/media/process
// Accepts {"object_key", "profile_id"} or the same names as query params.
func (h *MediaHandler) Process(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		ObjectKey string `json:"object_key"`
		ProfileID string `json:"profile_id"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.ObjectKey == "" {
		req.ObjectKey = c.Query("object_key")
	}
	if req.ProfileID == "" {
		req.ProfileID = c.Query("profile_id")
	}
	var profileID *uuid.UUID
	if req.ProfileID != "" {
		id, err := uuid.Parse(req.ProfileID)
		if err != nil {
			response.RespondAPIError(c, apierr.BadRequest("invalid_request", "profile_id must be a valid id"))
			return
		}
		profileID = &id
	}
	res, err := h.media.Process(c.Request.Context(), mediaActor(rd), req.ObjectKey, profileID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondAccepted(c, res)
}
