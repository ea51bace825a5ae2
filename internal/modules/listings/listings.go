package listings

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/marketplace"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultSearchLimit = 100
	MaxSearchLimit     = 100
	maxTextLength      = 255
)

var remotePreferences = map[string]bool{"remote": true, "onsite": true, "hybrid": true}

type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) isAdmin() bool { return a.Role == types.RoleAdmin }

// ListingInput carries create and partial-update fields. Nil means unset.
type ListingInput struct {
	Title            *string   `json:"title"`
	Company          *string   `json:"company"`
	Description      *string   `json:"description"`
	SkillsRequired   *[]string `json:"skills_required"`
	Location         *string   `json:"location"`
	RemotePreference *string   `json:"remote_preference"`
	SalaryMin        *float64  `json:"salary_min"`
	SalaryMax        *float64  `json:"salary_max"`
	HourlyRate       *float64  `json:"hourly_rate"`
	EquityOffered    *bool     `json:"equity_offered"`
	MediaRefs        *[]string `json:"media_refs"`
	Status           *string   `json:"status"`
}

type SearchInput struct {
	Status           string
	Location         string
	RemotePreference string
	MinSalary        *float64
	MaxSalary        *float64
	Skills           []string
	Skip             int
	Limit            int
}

type ListingCard struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	RemotePreference string    `json:"remote_preference"`
	SkillsRequired   []string  `json:"skills_required"`
	HourlyRate       *float64  `json:"hourly_rate"`
	SalaryMin        *float64  `json:"salary_min"`
	SalaryMax        *float64  `json:"salary_max"`
	CreatedAt        time.Time `json:"created_at"`
	IsBoosted        bool      `json:"is_boosted"`
}

type DeleteResult struct {
	Message   string    `json:"message"`
	ListingID uuid.UUID `json:"listing_id"`
}

func (u Usecases) Create(ctx context.Context, actor Actor, in ListingInput) (*types.Listing, error) {
	if actor.Role != types.RoleHirer && !actor.isAdmin() {
		return nil, apierr.Forbidden("Only hirers can create listings")
	}
	for field, v := range map[string]*string{"title": in.Title, "company": in.Company, "description": in.Description} {
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, apierr.BadRequest("invalid_request", field+" is required")
		}
	}
	if in.SkillsRequired == nil {
		return nil, apierr.BadRequest("invalid_request", "skills_required is required")
	}
	now := u.deps.Now().UTC()
	l := &types.Listing{
		ID:             uuid.New(),
		UserID:         actor.UserID,
		SkillsRequired: datatypes.JSONSlice[string]{},
		MediaRefs:      datatypes.JSONSlice[string]{},
		Status:         marketplace.ListingStatusDraft,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := applyInput(l, in); err != nil {
		return nil, err
	}
	u.moderate(l)
	if _, err := u.deps.Listings.Create(dbctx.Context{Ctx: ctx}, []*types.Listing{l}); err != nil {
		return nil, apierr.Internal("create_listing_failed", err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Listing created", "listing_id", l.ID, "user_id", actor.UserID, "flagged", l.Flagged)
	}
	return l, nil
}

func (u Usecases) Search(ctx context.Context, in SearchInput) ([]ListingCard, error) {
	if in.Limit == 0 {
		in.Limit = DefaultSearchLimit
	}
	if in.Skip < 0 || in.Limit < 1 || in.Limit > MaxSearchLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxSearchLimit))
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = marketplace.ListingStatusActive
	}
	if !marketplace.ValidListingStatus(status) {
		return nil, apierr.BadRequest("invalid_status", "Invalid listing status")
	}
	rows, err := u.deps.Listings.Search(dbctx.Context{Ctx: ctx}, repos.ListingFilter{
		Status:           status,
		Location:         in.Location,
		RemotePreference: strings.TrimSpace(in.RemotePreference),
		MinSalary:        in.MinSalary,
		MaxSalary:        in.MaxSalary,
		Skills:           in.Skills,
		Skip:             in.Skip,
		Limit:            in.Limit,
	})
	if err != nil {
		return nil, apierr.Internal("search_listings_failed", err)
	}
	out := make([]ListingCard, 0, len(rows))
	for _, l := range rows {
		skills := []string(l.SkillsRequired)
		if skills == nil {
			skills = []string{}
		}
		out = append(out, ListingCard{
			ID:               l.ID,
			Title:            l.Title,
			Company:          l.Company,
			Location:         l.Location,
			RemotePreference: l.RemotePreference,
			SkillsRequired:   skills,
			HourlyRate:       l.HourlyRate,
			SalaryMin:        l.SalaryMin,
			SalaryMax:        l.SalaryMax,
			CreatedAt:        l.CreatedAt,
			IsBoosted:        l.IsBoosted,
		})
	}
	return out, nil
}

func (u Usecases) Mine(ctx context.Context, actorID uuid.UUID, skip, limit int) ([]*types.Listing, error) {
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if skip < 0 || limit < 1 || limit > MaxSearchLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxSearchLimit))
	}
	rows, err := u.deps.Listings.ListByUser(dbctx.Context{Ctx: ctx}, actorID, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_listings_failed", err)
	}
	return rows, nil
}

func (u Usecases) Get(ctx context.Context, id uuid.UUID) (*types.Listing, error) {
	l, err := u.deps.Listings.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_listing_failed", err)
	}
	if l == nil {
		return nil, apierr.NotFound("listing_not_found", "Listing not found")
	}
	return l, nil
}

func (u Usecases) Update(ctx context.Context, actor Actor, id uuid.UUID, in ListingInput) (*types.Listing, error) {
	l, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != actor.UserID && !actor.isAdmin() {
		return nil, apierr.Forbidden("You don't have permission to update this listing")
	}
	for field, v := range map[string]*string{"title": in.Title, "company": in.Company, "description": in.Description} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, apierr.BadRequest("invalid_request", field+" cannot be empty")
		}
	}
	if err := applyInput(l, in); err != nil {
		return nil, err
	}
	u.moderate(l)
	l.UpdatedAt = u.deps.Now().UTC()
	if err := u.deps.Listings.Save(dbctx.Context{Ctx: ctx}, l); err != nil {
		return nil, apierr.Internal("update_listing_failed", err)
	}
	return l, nil
}

func (u Usecases) Delete(ctx context.Context, actor Actor, id uuid.UUID) (*DeleteResult, error) {
	l, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != actor.UserID && !actor.isAdmin() {
		return nil, apierr.Forbidden("You don't have permission to delete this listing")
	}
	if err := u.deps.Listings.Delete(dbctx.Context{Ctx: ctx}, l.ID); err != nil {
		return nil, apierr.Internal("delete_listing_failed", err)
	}
	return &DeleteResult{Message: "Listing deleted successfully", ListingID: l.ID}, nil
}

func (u Usecases) moderate(l *types.Listing) {
	if u.deps.Filter != nil {
		l.Flagged, l.FlagReason = u.deps.Filter.CheckListing(l)
	}
}

func applyInput(l *types.Listing, in ListingInput) error {
	for field, v := range map[string]*string{"title": in.Title, "company": in.Company, "location": in.Location} {
		if v != nil && utf8.RuneCountInString(strings.TrimSpace(*v)) > maxTextLength {
			return apierr.BadRequest("invalid_request", fmt.Sprintf("%s must be at most %d characters", field, maxTextLength))
		}
	}
	for field, v := range map[string]*float64{"salary_min": in.SalaryMin, "salary_max": in.SalaryMax, "hourly_rate": in.HourlyRate} {
		if v != nil && *v < 0 {
			return apierr.BadRequest("invalid_request", field+" must be non-negative")
		}
	}
	if in.RemotePreference != nil {
		rp := strings.ToLower(strings.TrimSpace(*in.RemotePreference))
		if rp != "" && !remotePreferences[rp] {
			return apierr.BadRequest("invalid_request", "remote_preference must be one of remote, onsite, hybrid")
		}
		l.RemotePreference = rp
	}
	if in.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*in.Status))
		if !marketplace.ValidListingStatus(st) {
			return apierr.BadRequest("invalid_status", "Invalid listing status")
		}
		l.Status = st
	}

	if in.Title != nil {
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Company != nil {
		l.Company = strings.TrimSpace(*in.Company)
	}
	if in.Description != nil {
		l.Description = strings.TrimSpace(*in.Description)
	}
	if in.SkillsRequired != nil {
		skills := make([]string, 0, len(*in.SkillsRequired))
		for _, s := range *in.SkillsRequired {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		l.SkillsRequired = datatypes.JSONSlice[string](skills)
	}
	if in.Location != nil {
		l.Location = strings.TrimSpace(*in.Location)
	}
	if in.SalaryMin != nil {
		v := *in.SalaryMin
		l.SalaryMin = &v
	}
	if in.SalaryMax != nil {
		v := *in.SalaryMax
		l.SalaryMax = &v
	}
	if in.HourlyRate != nil {
		v := *in.HourlyRate
		l.HourlyRate = &v
	}
	if in.EquityOffered != nil {
		l.EquityOffered = *in.EquityOffered
	}
	if in.MediaRefs != nil {
		l.MediaRefs = datatypes.JSONSlice[string](append([]string{}, *in.MediaRefs...))
	}
	if l.SalaryMin != nil && l.SalaryMax != nil && *l.SalaryMin > *l.SalaryMax {
		return apierr.BadRequest("invalid_salary_range", "Minimum salary cannot be greater than maximum salary")
	}
	return nil
}
