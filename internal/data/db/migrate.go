package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := EnsureSocialIndexes(db); err != nil {
		return err
	}
	if err := EnsureMarketplaceIndexes(db); err != nil {
		return err
	}
	return nil
}

// EnsureSocialIndexes holds the indexes the ledger and match detector rely on.
// The statements are portable across Postgres and SQLite.
func EnsureSocialIndexes(db *gorm.DB) error {
	// One match per unordered pair.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_pair
		ON matches (user_low_id, user_high_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_matches_pair: %w", err)
	}

	// Dedup window lookup.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_interactions_dedup
		ON interactions (user_id, target_type, target_id, action, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_interactions_dedup: %w", err)
	}

	// Reciprocity lookup: who liked this target.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_interactions_target_action
		ON interactions (target_type, target_id, action);
	`).Error; err != nil {
		return fmt.Errorf("create idx_interactions_target_action: %w", err)
	}

	// Unread counts and conversation paging.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_match_created
		ON messages (match_id, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_messages_match_created: %w", err)
	}
	return nil
}

func EnsureMarketplaceIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_search
		ON listings (status, is_active, is_boosted, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_listings_search: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_profiles_feed
		ON profiles (is_active, flagged, completeness_score);
	`).Error; err != nil {
		return fmt.Errorf("create idx_profiles_feed: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Running migrations")
	return AutoMigrateAll(s.db)
}
