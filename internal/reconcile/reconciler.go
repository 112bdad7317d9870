// Package reconcile pairs staked identities with their qualifying casts to
// produce the cycle's leaderboard candidate set.
package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/farcaster"
	"github.com/higher-steaks/hs-leaderboard/internal/qualify"
)

// Config holds reconciliation configuration
type Config struct {
	// CastLimit is how many recent casts are fetched per identity
	CastLimit int
	// Lookback bounds how old a qualifying cast may be
	Lookback time.Duration
	// Workers is the number of concurrent per-identity lookups
	Workers int
}

// Reconciler matches staked identities against their recent casts
type Reconciler struct {
	fc      farcaster.Client
	matcher *qualify.Matcher
	clock   adapter.Clock
	config  Config
}

// NewReconciler creates a candidate reconciler
func NewReconciler(fc farcaster.Client, matcher *qualify.Matcher, clock adapter.Clock, cfg Config) *Reconciler {
	if cfg.CastLimit <= 0 {
		cfg.CastLimit = 50
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 30 * 24 * time.Hour
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Reconciler{fc: fc, matcher: matcher, clock: clock, config: cfg}
}

// Reconcile fetches recent casts for every staked identity and keeps the
// identities whose feed contains a qualifying cast within the lookback
// window. Feeds arrive newest first, so the first match is the most recent
// qualifying cast. A failed lookup skips only that identity for this cycle.
// The result is ordered by descending stake so downstream tie-breaking is
// stable across runs.
func (r *Reconciler) Reconcile(ctx context.Context, stakes map[uint64]*domain.IdentityStake) ([]domain.Candidate, error) {
	cutoff := r.clock.Now().Add(-r.config.Lookback)

	var (
		mu         sync.Mutex
		candidates []domain.Candidate
	)

	pool := pond.NewPool(r.config.Workers)
	group := pool.NewGroup()

	for _, stake := range stakes {
		group.SubmitErr(func() error {
			casts, err := r.fc.UserCasts(ctx, stake.Identity.FID, r.config.CastLimit)
			if err != nil {
				logger.Warn("Cast lookup failed, skipping identity",
					zap.Error(err),
					zap.Uint64("fid", stake.Identity.FID))
				return nil
			}

			candidate, ok := r.qualify(stake, casts, cutoff)
			if !ok {
				return nil
			}

			mu.Lock()
			candidates = append(candidates, candidate)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("reconciliation fan-out failed: %w", err)
	}
	pool.StopAndWait()

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Total.Cmp(candidates[j].Total) > 0
	})

	logger.Info("Reconciled leaderboard candidates",
		zap.Int("staked_identities", len(stakes)),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// qualify scans a newest-first feed for the most recent qualifying cast
func (r *Reconciler) qualify(stake *domain.IdentityStake, casts []domain.Cast, cutoff time.Time) (domain.Candidate, bool) {
	for _, cast := range casts {
		if cast.Timestamp.Before(cutoff) {
			// Newest first: everything past this point is older still
			break
		}
		if !r.matcher.InChannel(cast.ChannelID) {
			continue
		}
		description, ok := r.matcher.Match(cast.Text)
		if !ok {
			continue
		}

		return domain.Candidate{
			Identity:    stake.Identity,
			Total:       stake.Total,
			Cast:        cast,
			Description: description,
			Positions:   stake.Positions,
		}, true
	}

	return domain.Candidate{}, false
}
