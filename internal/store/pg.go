package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// OpenPostgres opens a gorm connection and migrates the schema
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&schema.LeaderboardEntry{},
		&schema.NotificationRecord{},
		&schema.NotificationToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// ConfigureConnectionPool sets pool limits on the underlying sql.DB,
// applying defaults for zero values.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

// ReplaceLeaderboard swaps the leaderboard contents in one transaction so
// concurrent readers see either the old snapshot or the new one
func (s *pgStore) ReplaceLeaderboard(ctx context.Context, entries []schema.LeaderboardEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&schema.LeaderboardEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear leaderboard: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(entries, 100).Error; err != nil {
			return fmt.Errorf("failed to insert leaderboard entries: %w", err)
		}

		return nil
	})
}

// GetLeaderboard returns ranked entries ordered by rank ascending
func (s *pgStore) GetLeaderboard(ctx context.Context, limit, offset int) ([]schema.LeaderboardEntry, error) {
	query := s.db.WithContext(ctx).Order("rank ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var entries []schema.LeaderboardEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	return entries, nil
}

// GetEntryByCastHash returns the entry keyed by a cast, or nil
func (s *pgStore) GetEntryByCastHash(ctx context.Context, castHash string) (*schema.LeaderboardEntry, error) {
	var entry schema.LeaderboardEntry
	err := s.db.WithContext(ctx).Where("cast_hash = ?", castHash).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry %s: %w", castHash, err)
	}

	return &entry, nil
}

// FindEntryByLockupID returns the entry whose stake arrays contain the
// lockup, using jsonb containment on the parallel id arrays
func (s *pgStore) FindEntryByLockupID(ctx context.Context, lockupID uint64) (*schema.LeaderboardEntry, error) {
	needle := fmt.Sprintf("[%d]", lockupID)

	var entry schema.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Where("caster_stake -> 'lockup_ids' @> ? OR supporter_stake -> 'lockup_ids' @> ?", needle, needle).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry for lockup %d: %w", lockupID, err)
	}

	return &entry, nil
}

// MarkLockupUnlocked flips the lockup's unlocked flag in the owning entry.
// Only the stake columns are written back: ranking fields stay untouched so
// a concurrent materializer run is never clobbered.
func (s *pgStore) MarkLockupUnlocked(ctx context.Context, lockupID uint64) (*schema.LeaderboardEntry, error) {
	entry, err := s.FindEntryByLockupID(ctx, lockupID)
	if err != nil || entry == nil {
		return nil, err
	}

	caster := entry.CasterStake.Data()
	supporter := entry.SupporterStake.Data()

	changed := false
	for i, id := range caster.LockupIDs {
		if id == lockupID && !caster.Unlocked[i] {
			caster.Unlocked[i] = true
			changed = true
		}
	}
	for i, id := range supporter.LockupIDs {
		if id == lockupID && !supporter.Unlocked[i] {
			supporter.Unlocked[i] = true
			changed = true
		}
	}

	if !changed {
		return entry, nil
	}

	entry.CasterStake = datatypes.NewJSONType(caster)
	entry.SupporterStake = datatypes.NewJSONType(supporter)

	err = s.db.WithContext(ctx).
		Model(&schema.LeaderboardEntry{}).
		Where("cast_hash = ?", entry.CastHash).
		Updates(map[string]interface{}{
			"caster_stake":    entry.CasterStake,
			"supporter_stake": entry.SupporterStake,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to mark lockup %d unlocked: %w", lockupID, err)
	}

	return entry, nil
}

// CountEntries returns the number of persisted leaderboard rows
func (s *pgStore) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.LeaderboardEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return count, nil
}

// HasNotification reports whether a dedup record exists for the key
func (s *pgStore) HasNotification(ctx context.Context, notificationType domain.NotificationType, fid uint64, referenceID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.NotificationRecord{}).
		Where("type = ? AND fid = ? AND reference_id = ?", string(notificationType), fid, referenceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check notification record: %w", err)
	}

	return count > 0, nil
}

// RecordNotification writes a dedup record. A concurrent duplicate insert
// on the dedup key is ignored.
func (s *pgStore) RecordNotification(ctx context.Context, record schema.NotificationRecord) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "fid"}, {Name: "reference_id"}},
			DoNothing: true,
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	return nil
}

// EnabledTokens returns the identity's enabled push tokens
func (s *pgStore) EnabledTokens(ctx context.Context, fid uint64) ([]schema.NotificationToken, error) {
	var tokens []schema.NotificationToken
	err := s.db.WithContext(ctx).
		Where("fid = ? AND enabled = ?", fid, true).
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens for fid %d: %w", fid, err)
	}

	return tokens, nil
}

// UpsertToken registers or re-enables a push token
func (s *pgStore) UpsertToken(ctx context.Context, token schema.NotificationToken) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"fid", "target_url", "enabled", "updated_at"}),
		}).
		Create(&token).Error
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}

	return nil
}

// DisableTokens marks the given tokens disabled
func (s *pgStore) DisableTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.NotificationToken{}).
		Where("token IN ?", tokens).
		Update("enabled", false).Error
	if err != nil {
		return fmt.Errorf("failed to disable tokens: %w", err)
	}

	return nil
}

// DisableTokensForFID marks all of an identity's tokens disabled
func (s *pgStore) DisableTokensForFID(ctx context.Context, fid uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.NotificationToken{}).
		Where("fid = ?", fid).
		Update("enabled", false).Error
	if err != nil {
		return fmt.Errorf("failed to disable tokens for fid %d: %w", fid, err)
	}

	return nil
}
