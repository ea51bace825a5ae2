package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"

	PaymentTypeBoost        = "boost"
	PaymentTypeSubscription = "subscription"
	PaymentTypeFeature      = "feature"
)

type Payment struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                  uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PaymentType             string         `gorm:"column:payment_type;not null;index" json:"payment_type"`
	StripePaymentIntentID   *string        `gorm:"column:stripe_payment_intent_id;uniqueIndex" json:"stripe_payment_intent_id,omitempty"`
	StripeCheckoutSessionID *string        `gorm:"column:stripe_checkout_session_id;uniqueIndex" json:"stripe_checkout_session_id,omitempty"`
	Amount                  float64        `gorm:"column:amount;not null" json:"amount"`
	Currency                string         `gorm:"column:currency;size:3;not null" json:"currency"`
	Status                  string         `gorm:"column:status;not null;index" json:"status"`
	ListingID               *uuid.UUID     `gorm:"type:uuid;column:listing_id;index" json:"listing_id,omitempty"`
	Metadata                datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt               time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"not null" json:"updated_at"`
	CompletedAt             *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	return nil
}
