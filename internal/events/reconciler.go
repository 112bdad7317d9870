package events

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/notify"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
)

// Reconciler consumes broadcast events and applies their storage and
// notification side effects, decoupled from webhook ingestion.
type Reconciler struct {
	broadcaster *Broadcaster
	store       store.Store
	notifier    notify.Notifier
}

// NewReconciler creates an event reconciler
func NewReconciler(broadcaster *Broadcaster, st store.Store, notifier notify.Notifier) *Reconciler {
	return &Reconciler{broadcaster: broadcaster, store: st, notifier: notifier}
}

// Run subscribes to the broadcaster and processes events until the context
// is cancelled. Per-event failures are logged and skipped; the loop never
// aborts on a bad event.
func (r *Reconciler) Run(ctx context.Context) {
	events, cancel := r.broadcaster.Subscribe()
	defer cancel()

	logger.Info("Event reconciler started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event reconciler stopped")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := r.Handle(ctx, event); err != nil {
				logger.Error(err,
					zap.String("event_id", event.ID),
					zap.String("type", string(event.Type)))
			}
		}
	}
}

// Handle applies one event's side effects
func (r *Reconciler) Handle(ctx context.Context, event domain.BroadcastEvent) error {
	switch event.Type {
	case domain.EventTypeUnlock:
		return r.handleUnlock(ctx, event.Data)
	case domain.EventTypeLockupCreated:
		return r.handleLockupCreated(ctx, event.Data)
	case domain.EventTypeTransfer:
		// Ownership moves do not change stake totals or unlock state
		return nil
	default:
		return domain.ErrUnrecognizedEvent
	}
}

// handleUnlock flips the lockup's unlocked flag in the owning entry and
// notifies the creator. Replays are harmless: the flag write is idempotent
// and the notification ledger suppresses the repeat send.
func (r *Reconciler) handleUnlock(ctx context.Context, data domain.EventData) error {
	entry, err := r.store.MarkLockupUnlocked(ctx, data.LockupID)
	if err != nil {
		return err
	}
	if entry == nil {
		logger.Debug("unlock for untracked lockup", zap.Uint64("lockup_id", data.LockupID))
		return nil
	}

	return r.notifier.StakeExpired(ctx, entry.CreatorFID, data.LockupID)
}

// handleLockupCreated notifies a cast creator about a new supporter stake.
// Events without a cast reference are plain self-stakes and produce no
// notification; the next materializer run picks them up.
func (r *Reconciler) handleLockupCreated(ctx context.Context, data domain.EventData) error {
	castHash := data.CastHash
	if castHash == "" {
		var ok bool
		if castHash, ok = leaderboard.ParseSupporterTitle(data.Title); !ok {
			return nil
		}
	}

	entry, err := r.store.GetEntryByCastHash(ctx, castHash)
	if err != nil {
		return err
	}
	if entry == nil {
		logger.Debug("supporter stake for unlisted cast", zap.String("cast_hash", castHash))
		return nil
	}

	amount, ok := new(big.Int).SetString(data.Amount, 10)
	if !ok {
		amount = new(big.Int)
	}

	return r.notifier.SupporterAdded(ctx, entry.CreatorFID, data.LockupID, amount)
}
