package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/payments"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	log      *logger.Logger
	payments payments.Usecases
}

func NewPaymentHandler(log *logger.Logger, uc payments.Usecases) *PaymentHandler {
	return &PaymentHandler{log: log.With("handler", "PaymentHandler"), payments: uc}
}

// POST /api/payments/boost/checkout
func (h *PaymentHandler) CreateBoostCheckout(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		ListingID string `json:"listing_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", "listing_id must be a valid id"))
		return
	}
	session, err := h.payments.CreateBoostCheckout(c.Request.Context(), payments.Actor{UserID: rd.UserID, Role: rd.Role}, listingID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, session)
}

// POST /api/payments/boost/confirm
func (h *PaymentHandler) ConfirmBoost(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.payments.ConfirmBoost(c.Request.Context(), payments.Actor{UserID: rd.UserID, Role: rd.Role}, req.SessionID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/payments/my-payments
func (h *PaymentHandler) Mine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.payments.Mine(c.Request.Context(), rd.UserID, skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.log.Warn("Webhook body read failed", "error", err)
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", "Unreadable webhook body"))
		return
	}
	response.RespondOK(c, h.payments.Webhook(c.Request.Context(), body))
}
