// Package pipeline runs the leaderboard refresh cycle: discovery,
// resolution, reconciliation and materialization, one stage at a time.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/discovery"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/identity"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
)

// Discoverer enumerates on-chain positions at a pinned block
type Discoverer interface {
	Discover(ctx context.Context, blockNumber uint64) (*discovery.Snapshot, error)
}

// Resolver maps wallet addresses to identities
type Resolver interface {
	Resolve(ctx context.Context, addresses []string) map[string]domain.Identity
}

// Reconciler pairs staked identities with qualifying casts
type Reconciler interface {
	Reconcile(ctx context.Context, stakes map[uint64]*domain.IdentityStake) ([]domain.Candidate, error)
}

// Materializer commits the ranked leaderboard
type Materializer interface {
	Materialize(ctx context.Context, candidates []domain.Candidate, supporters map[string][]domain.SupporterPosition, asOf time.Time) (int, error)
}

// Summary reports one refresh cycle
type Summary struct {
	Block               uint64 `json:"block"`
	PositionsDiscovered int    `json:"positions_discovered"`
	AddressesResolved   int    `json:"addresses_resolved"`
	CandidatesQualified int    `json:"candidates_qualified"`
	EntriesStored       int    `json:"entries_stored"`
}

// Pipeline is the stage-synchronous refresh cycle. Each stage fully joins
// before the next begins; a structural failure aborts the cycle and leaves
// the previous materialized snapshot in place.
type Pipeline struct {
	discoverer   Discoverer
	resolver     Resolver
	reconciler   Reconciler
	materializer Materializer
	clock        adapter.Clock
}

// New creates a refresh pipeline
func New(d Discoverer, r Resolver, rec Reconciler, m Materializer, clock adapter.Clock) *Pipeline {
	return &Pipeline{
		discoverer:   d,
		resolver:     r,
		reconciler:   rec,
		materializer: m,
		clock:        clock,
	}
}

// Run executes one refresh cycle
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	started := p.clock.Now()

	snapshot, err := p.discoverer.Discover(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	positions := 0
	addresses := make([]string, 0, len(snapshot.Balances))
	for addr, walletPositions := range snapshot.Positions {
		positions += len(walletPositions)
		addresses = append(addresses, strings.ToLower(addr.Hex()))
	}
	sort.Strings(addresses)

	identities := p.resolver.Resolve(ctx, addresses)
	stakes := identity.Aggregate(snapshot.Balances, snapshot.Positions, identities)
	supporters := leaderboard.SupporterIndex(snapshot.Positions, identities)

	candidates, err := p.reconciler.Reconcile(ctx, stakes)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	stored, err := p.materializer.Materialize(ctx, candidates, supporters, p.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("materialization failed: %w", err)
	}

	summary := &Summary{
		Block:               snapshot.Block,
		PositionsDiscovered: positions,
		AddressesResolved:   len(identities),
		CandidatesQualified: len(candidates),
		EntriesStored:       stored,
	}

	logger.Info("Refresh cycle complete",
		zap.Uint64("block", summary.Block),
		zap.Int("positions", summary.PositionsDiscovered),
		zap.Int("resolved", summary.AddressesResolved),
		zap.Int("candidates", summary.CandidatesQualified),
		zap.Int("stored", summary.EntriesStored),
		zap.Duration("elapsed", p.clock.Since(started)))

	return summary, nil
}
