package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ListingStatusDraft    = "draft"
	ListingStatusActive   = "active"
	ListingStatusPaused   = "paused"
	ListingStatusClosed   = "closed"
	ListingStatusArchived = "archived"
)

func ValidListingStatus(s string) bool {
	switch s {
	case ListingStatusDraft, ListingStatusActive, ListingStatusPaused, ListingStatusClosed, ListingStatusArchived:
		return true
	}
	return false
}

type Listing struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string                      `gorm:"column:title;size:255;not null;index" json:"title"`
	Company          string                      `gorm:"column:company;size:255;not null" json:"company"`
	Description      string                      `gorm:"column:description;not null" json:"description"`
	SkillsRequired   datatypes.JSONSlice[string] `gorm:"column:skills_required" json:"skills_required"`
	Location         string                      `gorm:"column:location;size:255" json:"location"`
	RemotePreference string                      `gorm:"column:remote_preference;size:50" json:"remote_preference"`
	SalaryMin        *float64                    `gorm:"column:salary_min" json:"salary_min"`
	SalaryMax        *float64                    `gorm:"column:salary_max" json:"salary_max"`
	HourlyRate       *float64                    `gorm:"column:hourly_rate" json:"hourly_rate"`
	EquityOffered    bool                        `gorm:"not null;column:equity_offered" json:"equity_offered"`
	Status           string                      `gorm:"column:status;not null;index" json:"status"`
	MediaRefs        datatypes.JSONSlice[string] `gorm:"column:media_refs" json:"media_refs"`

	IsBoosted    bool       `gorm:"not null;column:is_boosted;index" json:"is_boosted"`
	BoostedUntil *time.Time `gorm:"column:boosted_until" json:"boosted_until,omitempty"`

	IsActive   bool   `gorm:"not null;column:is_active;index" json:"is_active"`
	Flagged    bool   `gorm:"not null;column:flagged" json:"flagged"`
	FlagReason string `gorm:"column:flag_reason" json:"flag_reason,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = ListingStatusDraft
	}
	return nil
}
