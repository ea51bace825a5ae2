package social

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TargetProfile = "profile"
	TargetListing = "listing"

	ActionLike      = "like"
	ActionSkip      = "skip"
	ActionApply     = "apply"
	ActionSuperLike = "super_like"
)

var Actions = []string{ActionLike, ActionSkip, ActionApply, ActionSuperLike}

func ValidTargetType(t string) bool { return t == TargetProfile || t == TargetListing }

func ValidAction(a string) bool {
	for _, x := range Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Interaction rows are append-only.
type Interaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetType string    `gorm:"column:target_type;not null" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;column:target_id;not null" json:"target_id"`
	Action     string    `gorm:"column:action;not null" json:"action"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}

func (Interaction) TableName() string { return "interactions" }

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
