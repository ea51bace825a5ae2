package social

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxMessageLength = 5000

type Message struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID   uuid.UUID  `gorm:"type:uuid;column:match_id;not null;index" json:"match_id"`
	SenderID  uuid.UUID  `gorm:"type:uuid;column:sender_id;not null;index" json:"sender_id"`
	Content   string     `gorm:"column:content;not null" json:"content"`
	Read      bool       `gorm:"not null;column:read;index" json:"read"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
