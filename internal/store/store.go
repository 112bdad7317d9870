// Package store persists the materialized leaderboard and the notification
// bookkeeping around it.
package store

import (
	"context"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

// Store defines the persistence operations of the leaderboard service
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ReplaceLeaderboard atomically swaps the full leaderboard contents for
	// the given entries. Readers observe either the previous snapshot or the
	// new one, never a mix.
	ReplaceLeaderboard(ctx context.Context, entries []schema.LeaderboardEntry) error

	// GetLeaderboard returns ranked entries ordered by rank ascending.
	// limit <= 0 returns all entries from offset onward.
	GetLeaderboard(ctx context.Context, limit, offset int) ([]schema.LeaderboardEntry, error)

	// GetEntryByCastHash returns the entry keyed by a cast, or nil when the
	// cast is not on the leaderboard
	GetEntryByCastHash(ctx context.Context, castHash string) (*schema.LeaderboardEntry, error)

	// FindEntryByLockupID returns the entry whose caster or supporter stake
	// contains the lockup, or nil when no entry tracks it
	FindEntryByLockupID(ctx context.Context, lockupID uint64) (*schema.LeaderboardEntry, error)

	// MarkLockupUnlocked flips the lockup's unlocked flag inside the owning
	// entry's stake arrays and writes back only the stake columns. Returns
	// the updated entry, or nil when no entry tracks the lockup. Marking an
	// already-unlocked lockup is a no-op.
	MarkLockupUnlocked(ctx context.Context, lockupID uint64) (*schema.LeaderboardEntry, error)

	// CountEntries returns the number of persisted leaderboard rows
	CountEntries(ctx context.Context) (int64, error)

	// HasNotification reports whether a notification with the given dedup
	// key was already recorded
	HasNotification(ctx context.Context, notificationType domain.NotificationType, fid uint64, referenceID string) (bool, error)

	// RecordNotification writes a dedup record for a sent notification
	RecordNotification(ctx context.Context, record schema.NotificationRecord) error

	// EnabledTokens returns the identity's enabled push tokens
	EnabledTokens(ctx context.Context, fid uint64) ([]schema.NotificationToken, error)

	// UpsertToken registers or re-enables a push token
	UpsertToken(ctx context.Context, token schema.NotificationToken) error

	// DisableTokens marks the given tokens disabled
	DisableTokens(ctx context.Context, tokens []string) error

	// DisableTokensForFID marks all of an identity's tokens disabled
	DisableTokensForFID(ctx context.Context, fid uint64) error
}
