package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/messages"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
)

type MessageHandler struct {
	messages messages.Usecases
}

func NewMessageHandler(uc messages.Usecases) *MessageHandler {
	return &MessageHandler{messages: uc}
}

// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		MatchID string `json:"match_id"`
		Content string `json:"content"`
	}
	if !bindJSON(c, &req) {
		return
	}
	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", "match_id must be a valid id"))
		return
	}
	msg, err := h.messages.Send(c.Request.Context(), messages.SendInput{
		SenderID: rd.UserID,
		MatchID:  matchID,
		Content:  req.Content,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, msg)
}

// GET /api/messages/match/:id
func (h *MessageHandler) ListForMatch(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	matchID, ok := pathUUID(c, "id", "invalid_match_id")
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.messages.ListForMatch(c.Request.Context(), rd.UserID, matchID, skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// PUT /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_message_id")
	if !ok {
		return
	}
	msg, err := h.messages.MarkRead(c.Request.Context(), rd.UserID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, msg)
}

// GET /api/messages/unread/count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	res, err := h.messages.UnreadCount(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
