package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// ProfileInput carries create and partial-update fields. Nil means unset.
type ProfileInput struct {
	Headline         *string                `json:"headline"`
	Bio              *string                `json:"bio"`
	Skills           *[]string              `json:"skills"`
	PortfolioLinks   *[]types.PortfolioLink `json:"portfolio_links"`
	Availability     *string                `json:"availability"`
	HourlyRate       *float64               `json:"hourly_rate"`
	MediaRefs        *types.MediaRefs       `json:"media_refs"`
	Location         *string                `json:"location"`
	RemotePreference *string                `json:"remote_preference"`
}

type ProfileCard struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Headline          string    `json:"headline"`
	Skills            []string  `json:"skills"`
	Location          string    `json:"location"`
	RemotePreference  string    `json:"remote_preference"`
	Availability      string    `json:"availability"`
	HourlyRate        *float64  `json:"hourly_rate"`
	ProfileImage      string    `json:"profile_image,omitempty"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	CompletenessScore int       `json:"completeness_score"`
}

func (u Usecases) Create(ctx context.Context, actorID uuid.UUID, in ProfileInput) (*types.Profile, error) {
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := u.deps.Profiles.GetByUserID(dbc, actorID)
	if err != nil {
		return nil, apierr.Internal("load_profile_failed", err)
	}
	if existing != nil {
		return nil, apierr.BadRequest("profile_exists", "Profile already exists. Use PUT to update.")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := u.deps.Now().UTC()
	p := &types.Profile{
		ID:             uuid.New(),
		UserID:         actorID,
		Skills:         datatypes.JSONSlice[string]{},
		PortfolioLinks: datatypes.JSONSlice[types.PortfolioLink]{},
		MediaRefs:      datatypes.NewJSONType(types.MediaRefs{}),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyInput(p, in)
	u.derive(p)
	if _, err := u.deps.Profiles.Create(dbc, []*types.Profile{p}); err != nil {
		return nil, apierr.Internal("create_profile_failed", err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Profile created", "profile_id", p.ID, "user_id", actorID, "completeness", p.CompletenessScore, "flagged", p.Flagged)
	}
	return p, nil
}

func (u Usecases) GetMine(ctx context.Context, actorID uuid.UUID) (*types.Profile, error) {
	p, err := u.deps.Profiles.GetByUserID(dbctx.Context{Ctx: ctx}, actorID)
	if err != nil {
		return nil, apierr.Internal("load_profile_failed", err)
	}
	if p == nil {
		return nil, apierr.NotFound("profile_not_found", "Profile not found")
	}
	return p, nil
}

func (u Usecases) Get(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	p, err := u.deps.Profiles.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_profile_failed", err)
	}
	if p == nil {
		return nil, apierr.NotFound("profile_not_found", "Profile not found")
	}
	return p, nil
}

func (u Usecases) UpdateMine(ctx context.Context, actorID uuid.UUID, in ProfileInput) (*types.Profile, error) {
	p, err := u.GetMine(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	applyInput(p, in)
	u.derive(p)
	p.UpdatedAt = u.deps.Now().UTC()
	if err := u.deps.Profiles.Save(dbctx.Context{Ctx: ctx}, p); err != nil {
		return nil, apierr.Internal("update_profile_failed", err)
	}
	return p, nil
}

func (u Usecases) DeleteMine(ctx context.Context, actorID uuid.UUID) error {
	if _, err := u.GetMine(ctx, actorID); err != nil {
		return err
	}
	if err := u.deps.Profiles.DeleteByUserID(dbctx.Context{Ctx: ctx}, actorID); err != nil {
		return apierr.Internal("delete_profile_failed", err)
	}
	return nil
}

// Feed returns swipe cards, best-filled profiles first.
func (u Usecases) Feed(ctx context.Context, actorID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]ProfileCard, error) {
	if limit == 0 {
		limit = DefaultFeedLimit
	}
	if limit < 1 || limit > MaxFeedLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("limit must be between 1 and %d", MaxFeedLimit))
	}
	rows, err := u.deps.Profiles.Feed(dbctx.Context{Ctx: ctx}, actorID, excludeIDs, limit)
	if err != nil {
		return nil, apierr.Internal("profile_feed_failed", err)
	}
	out := make([]ProfileCard, 0, len(rows))
	for _, p := range rows {
		refs := p.MediaRefs.Data()
		skills := []string(p.Skills)
		if skills == nil {
			skills = []string{}
		}
		out = append(out, ProfileCard{
			ID:                p.ID,
			UserID:            p.UserID,
			Headline:          p.Headline,
			Skills:            skills,
			Location:          p.Location,
			RemotePreference:  p.RemotePreference,
			Availability:      p.Availability,
			HourlyRate:        p.HourlyRate,
			ProfileImage:      refs.ProfileImage,
			ThumbnailURL:      refs.ProfileThumbnail,
			CompletenessScore: p.CompletenessScore,
		})
	}
	return out, nil
}

// AttachThumbnail records a generated thumbnail key on the profile.
func (u Usecases) AttachThumbnail(ctx context.Context, profileID uuid.UUID, key string) error {
	dbc := dbctx.Context{Ctx: ctx}
	p, err := u.deps.Profiles.GetByID(dbc, profileID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return apierr.NotFound("profile_not_found", "Profile not found")
	}
	refs := p.MediaRefs.Data()
	refs.ProfileThumbnail = key
	p.MediaRefs = datatypes.NewJSONType(refs)
	p.UpdatedAt = u.deps.Now().UTC()
	return u.deps.Profiles.Save(dbc, p)
}

func validateInput(in ProfileInput) error {
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return apierr.BadRequest("invalid_hourly_rate", "hourly_rate must be non-negative")
	}
	if in.PortfolioLinks != nil {
		for _, l := range *in.PortfolioLinks {
			if strings.TrimSpace(l.URL) == "" {
				return apierr.BadRequest("invalid_portfolio_link", "portfolio links require a url")
			}
		}
	}
	return nil
}

func applyInput(p *types.Profile, in ProfileInput) {
	if in.Headline != nil {
		p.Headline = strings.TrimSpace(*in.Headline)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Skills != nil {
		p.Skills = datatypes.JSONSlice[string](cleanStrings(*in.Skills))
	}
	if in.PortfolioLinks != nil {
		p.PortfolioLinks = datatypes.JSONSlice[types.PortfolioLink](append([]types.PortfolioLink{}, *in.PortfolioLinks...))
	}
	if in.Availability != nil {
		p.Availability = strings.TrimSpace(*in.Availability)
	}
	if in.HourlyRate != nil {
		rate := *in.HourlyRate
		p.HourlyRate = &rate
	}
	if in.MediaRefs != nil {
		refs := *in.MediaRefs
		// Thumbnails are only set by the media pipeline.
		refs.ProfileThumbnail = p.MediaRefs.Data().ProfileThumbnail
		p.MediaRefs = datatypes.NewJSONType(refs)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.RemotePreference != nil {
		p.RemotePreference = strings.TrimSpace(*in.RemotePreference)
	}
}

func (u Usecases) derive(p *types.Profile) {
	p.CompletenessScore = Score(p)
	if u.deps.Filter != nil {
		p.Flagged, p.FlagReason = u.deps.Filter.CheckProfile(p)
	}
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
