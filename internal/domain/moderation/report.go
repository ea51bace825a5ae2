package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"

	ReportTypeProfile = "profile"
	ReportTypeListing = "listing"
	ReportTypeMessage = "message"
	ReportTypeMedia   = "media"
)

var (
	ReportStatuses = []string{ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed}
	ReportTypes    = []string{ReportTypeProfile, ReportTypeListing, ReportTypeMessage, ReportTypeMedia}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidReportStatus(s string) bool { return contains(ReportStatuses, s) }
func ValidReportType(s string) bool   { return contains(ReportTypes, s) }

// Report.TargetID is a string so media reports can reference object keys.
type Report struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID  uuid.UUID  `gorm:"type:uuid;column:reporter_id;not null;index" json:"reporter_id"`
	ReportType  string     `gorm:"column:report_type;not null;index" json:"report_type"`
	TargetID    string     `gorm:"column:target_id;not null;index" json:"target_id"`
	Reason      string     `gorm:"column:reason;size:50;not null" json:"reason"`
	Description string     `gorm:"column:description" json:"description,omitempty"`
	Status      string     `gorm:"column:status;not null;index" json:"status"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewNotes string     `gorm:"column:review_notes" json:"review_notes,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
}

func (Report) TableName() string { return "reports" }

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReportStatusPending
	}
	return nil
}
