package social

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MatchTypeLike = "like"

// Match links two users. UserLowID/UserHighID hold the pair in canonical
// order and carry the unique index that keeps one match per pair.
type Match struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	User1ID     uuid.UUID  `gorm:"type:uuid;column:user1_id;not null;index" json:"user1_id"`
	User2ID     uuid.UUID  `gorm:"type:uuid;column:user2_id;not null;index" json:"user2_id"`
	UserLowID   uuid.UUID  `gorm:"type:uuid;column:user_low_id;not null" json:"-"`
	UserHighID  uuid.UUID  `gorm:"type:uuid;column:user_high_id;not null" json:"-"`
	MatchType   string     `gorm:"column:match_type;not null" json:"match_type"`
	IsActive    bool       `gorm:"not null;column:is_active;index" json:"is_active"`
	Unmatched   bool       `gorm:"not null;column:unmatched" json:"unmatched"`
	UnmatchedAt *time.Time `gorm:"column:unmatched_at" json:"unmatched_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Match) TableName() string { return "matches" }

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.UserLowID, m.UserHighID = CanonicalPair(m.User1ID, m.User2ID)
	return nil
}

func (m *Match) HasUser(id uuid.UUID) bool {
	return m != nil && (m.User1ID == id || m.User2ID == id)
}

func (m *Match) Peer(id uuid.UUID) uuid.UUID {
	if m.User1ID == id {
		return m.User2ID
	}
	return m.User1ID
}

func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}
