package reports

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/moderation"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	maxReasonLength      = 50
	maxDescriptionLength = 1000
	DefaultListLimit     = 50
	MaxListLimit         = 100
)

type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) isAdmin() bool { return a.Role == types.RoleAdmin }

type CreateInput struct {
	ReportType  string `json:"report_type"`
	TargetID    string `json:"target_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type ReviewInput struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes"`
}

type Stats struct {
	TotalReports int64            `json:"total_reports"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByType       map[string]int64 `json:"by_type"`
}

func (u Usecases) Create(ctx context.Context, reporterID uuid.UUID, in CreateInput) (*types.Report, error) {
	reportType := strings.ToLower(strings.TrimSpace(in.ReportType))
	if !moderation.ValidReportType(reportType) {
		return nil, apierr.BadRequest("invalid_report_type",
			"Invalid report type. Must be one of: "+strings.Join(moderation.ReportTypes, ", "))
	}
	target := strings.TrimSpace(in.TargetID)
	if target == "" {
		return nil, apierr.BadRequest("invalid_request", "target_id is required")
	}
	reason := strings.TrimSpace(in.Reason)
	if n := utf8.RuneCountInString(reason); n < 1 || n > maxReasonLength {
		return nil, apierr.BadRequest("invalid_request", fmt.Sprintf("reason must be between 1 and %d characters", maxReasonLength))
	}
	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) > maxDescriptionLength {
		return nil, apierr.BadRequest("invalid_request", fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	now := u.deps.Now().UTC()
	rep := &types.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ReportType:  reportType,
		TargetID:    target,
		Reason:      reason,
		Description: desc,
		Status:      moderation.ReportStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := u.deps.Reports.Create(dbctx.Context{Ctx: ctx}, []*types.Report{rep}); err != nil {
		return nil, apierr.Internal("create_report_failed", err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Report filed", "report_id", rep.ID, "report_type", rep.ReportType, "target_id", rep.TargetID)
	}
	return rep, nil
}

func (u Usecases) Mine(ctx context.Context, reporterID uuid.UUID, skip, limit int) ([]*types.Report, error) {
	if err := checkPaging(&skip, &limit); err != nil {
		return nil, err
	}
	rows, err := u.deps.Reports.ListByReporter(dbctx.Context{Ctx: ctx}, reporterID, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_reports_failed", err)
	}
	return rows, nil
}

func (u Usecases) Pending(ctx context.Context, actor Actor, skip, limit int) ([]*types.Report, error) {
	if !actor.isAdmin() {
		return nil, apierr.Forbidden("Admin access required")
	}
	if err := checkPaging(&skip, &limit); err != nil {
		return nil, err
	}
	rows, err := u.deps.Reports.ListByStatus(dbctx.Context{Ctx: ctx}, moderation.ReportStatusPending, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_reports_failed", err)
	}
	return rows, nil
}

func (u Usecases) Get(ctx context.Context, actor Actor, id uuid.UUID) (*types.Report, error) {
	rep, err := u.deps.Reports.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_report_failed", err)
	}
	if rep == nil {
		return nil, apierr.NotFound("report_not_found", "Report not found")
	}
	if rep.ReporterID != actor.UserID && !actor.isAdmin() {
		return nil, apierr.Forbidden("Not authorized")
	}
	return rep, nil
}

func (u Usecases) Review(ctx context.Context, actor Actor, id uuid.UUID, in ReviewInput) (*types.Report, error) {
	if !actor.isAdmin() {
		return nil, apierr.Forbidden("Admin access required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	rep, err := u.deps.Reports.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal("load_report_failed", err)
	}
	if rep == nil {
		return nil, apierr.NotFound("report_not_found", "Report not found")
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !moderation.ValidReportStatus(status) {
		return nil, apierr.BadRequest("invalid_status",
			"Invalid status. Must be one of: "+strings.Join(moderation.ReportStatuses, ", "))
	}
	notes := strings.TrimSpace(in.ReviewNotes)
	if utf8.RuneCountInString(notes) > maxDescriptionLength {
		return nil, apierr.BadRequest("invalid_request", fmt.Sprintf("review_notes must be at most %d characters", maxDescriptionLength))
	}
	now := u.deps.Now().UTC()
	reviewer := actor.UserID
	if err := u.deps.Reports.UpdateFields(dbc, rep.ID, map[string]interface{}{
		"status":       status,
		"review_notes": notes,
		"reviewed_by":  reviewer,
		"reviewed_at":  now,
	}); err != nil {
		return nil, apierr.Internal("review_report_failed", err)
	}
	rep.Status = status
	rep.ReviewNotes = notes
	rep.ReviewedBy = &reviewer
	rep.ReviewedAt = &now
	rep.UpdatedAt = now
	return rep, nil
}

// Stats runs the three aggregate queries concurrently.
func (u Usecases) Stats(ctx context.Context, actor Actor) (*Stats, error) {
	if !actor.isAdmin() {
		return nil, apierr.Forbidden("Admin access required")
	}
	var (
		total    int64
		byStatus map[string]int64
		byType   map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := u.deps.Reports.Count(dbctx.Context{Ctx: gctx})
		total = n
		return err
	})
	g.Go(func() error {
		m, err := u.deps.Reports.CountGrouped(dbctx.Context{Ctx: gctx}, "status")
		byStatus = m
		return err
	})
	g.Go(func() error {
		m, err := u.deps.Reports.CountGrouped(dbctx.Context{Ctx: gctx}, "report_type")
		byType = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Internal("report_stats_failed", err)
	}
	out := &Stats{
		TotalReports: total,
		ByStatus:     make(map[string]int64, len(moderation.ReportStatuses)),
		ByType:       make(map[string]int64, len(moderation.ReportTypes)),
	}
	for _, s := range moderation.ReportStatuses {
		out.ByStatus[s] = byStatus[s]
	}
	for _, t := range moderation.ReportTypes {
		out.ByType[t] = byType[t]
	}
	return out, nil
}

func checkPaging(skip, limit *int) error {
	if *limit == 0 {
		*limit = DefaultListLimit
	}
	if *skip < 0 || *limit < 1 || *limit > MaxListLimit {
		return apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	return nil
}
