package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Password: "pw",
		Role:     role,
		IsActive: true,
	}
	u.Email = "user-" + u.ID.String() + "@example.com"
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, headline string) *types.Profile {
	tb.Helper()
	p := &types.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Headline:  headline,
		Skills:    datatypes.JSONSlice[string]{},
		IsActive:  true,
		MediaRefs: datatypes.NewJSONType(types.MediaRefs{}),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedListing(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string) *types.Listing {
	tb.Helper()
	l := &types.Listing{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Company:        "Acme",
		Description:    "Design work",
		SkillsRequired: datatypes.JSONSlice[string]{"Figma"},
		Status:         "active",
		IsActive:       true,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed listing: %v", err)
	}
	return l
}

func SeedInteraction(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetType string, targetID uuid.UUID, action string, at time.Time) *types.Interaction {
	tb.Helper()
	in := &types.Interaction{
		ID:         uuid.New(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Action:     action,
		CreatedAt:  at.UTC(),
	}
	if err := tx.WithContext(ctx).Create(in).Error; err != nil {
		tb.Fatalf("seed interaction: %v", err)
	}
	return in
}

func SeedMatch(tb testing.TB, ctx context.Context, tx *gorm.DB, user1, user2 uuid.UUID) *types.Match {
	tb.Helper()
	m := &types.Match{
		ID:        uuid.New(),
		User1ID:   user1,
		User2ID:   user2,
		MatchType: types.MatchTypeLike,
		IsActive:  true,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed match: %v", err)
	}
	return m
}

func SeedMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, matchID, senderID uuid.UUID, content string) *types.Message {
	tb.Helper()
	msg := &types.Message{
		ID:       uuid.New(),
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := tx.WithContext(ctx).Create(msg).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return msg
}
