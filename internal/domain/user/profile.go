package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PortfolioLink struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type MediaRefs struct {
	ProfileImage     string   `json:"profile_image,omitempty"`
	ProfileThumbnail string   `json:"profile_thumbnail,omitempty"`
	Gallery          []string `json:"gallery,omitempty"`
}

type Profile struct {
	ID               uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Headline         string                             `gorm:"column:headline" json:"headline"`
	Bio              string                             `gorm:"column:bio" json:"bio"`
	Skills           datatypes.JSONSlice[string]        `gorm:"column:skills" json:"skills"`
	PortfolioLinks   datatypes.JSONSlice[PortfolioLink] `gorm:"column:portfolio_links" json:"portfolio_links"`
	Availability     string                             `gorm:"column:availability" json:"availability"`
	HourlyRate       *float64                           `gorm:"column:hourly_rate" json:"hourly_rate"`
	MediaRefs        datatypes.JSONType[MediaRefs]      `gorm:"column:media_refs" json:"media_refs"`
	Location         string                             `gorm:"column:location" json:"location"`
	RemotePreference string                             `gorm:"column:remote_preference" json:"remote_preference"`

	IsActive          bool   `gorm:"not null;column:is_active;index" json:"is_active"`
	Flagged           bool   `gorm:"not null;column:flagged" json:"flagged"`
	FlagReason        string `gorm:"column:flag_reason" json:"flag_reason,omitempty"`
	CompletenessScore int    `gorm:"not null;column:completeness_score;index" json:"completeness_score"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
