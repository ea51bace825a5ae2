package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/interactions"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
)

type InteractionHandler struct {
	interactions interactions.Usecases
}

func NewInteractionHandler(uc interactions.Usecases) *InteractionHandler {
	return &InteractionHandler{interactions: uc}
}

type recordInteractionRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Action     string `json:"action"`
}

// POST /api/interactions
func (h *InteractionHandler) Record(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req recordInteractionRequest
	if !bindJSON(c, &req) {
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", "target_id must be a valid id"))
		return
	}
	row, err := h.interactions.Record(c.Request.Context(), interactions.RecordInput{
		ActorID:    rd.UserID,
		TargetType: req.TargetType,
		TargetID:   targetID,
		Action:     req.Action,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, row)
}

// GET /api/interactions?target_type=&action=&skip=&limit=
func (h *InteractionHandler) List(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.interactions.List(c.Request.Context(), interactions.ListInput{
		ActorID:    rd.UserID,
		TargetType: c.Query("target_type"),
		Action:     c.Query("action"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/interactions/stats
func (h *InteractionHandler) Stats(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	stats, err := h.interactions.Stats(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
