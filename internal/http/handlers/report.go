package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/reports"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
)

type ReportHandler struct {
	reports reports.Usecases
}

func NewReportHandler(uc reports.Usecases) *ReportHandler {
	return &ReportHandler{reports: uc}
}

func reportActor(rd *ctxutil.RequestData) reports.Actor {
	return reports.Actor{UserID: rd.UserID, Role: rd.Role}
}

// POST /api/reports
func (h *ReportHandler) Create(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var in reports.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	rep, err := h.reports.Create(c.Request.Context(), rd.UserID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, rep)
}

// GET /api/reports/my-reports
func (h *ReportHandler) Mine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.reports.Mine(c.Request.Context(), rd.UserID, skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/reports/pending
func (h *ReportHandler) Pending(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.reports.Pending(c.Request.Context(), reportActor(rd), skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/reports/stats/overview
func (h *ReportHandler) Stats(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	stats, err := h.reports.Stats(c.Request.Context(), reportActor(rd))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_report_id")
	if !ok {
		return
	}
	rep, err := h.reports.Get(c.Request.Context(), reportActor(rd), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rep)
}

// PUT /api/reports/:id/review
func (h *ReportHandler) Review(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_report_id")
	if !ok {
		return
	}
	var in reports.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	rep, err := h.reports.Review(c.Request.Context(), reportActor(rd), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rep)
}
