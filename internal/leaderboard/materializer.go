// Package leaderboard ranks qualified candidates and commits the result as
// one atomic snapshot.
package leaderboard

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/price"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

// SupporterTitlePrefix marks a lockup title as a stake backing another
// identity's cast; the remainder of the title is the cast hash.
const SupporterTitlePrefix = "cast:"

// Config holds materializer configuration
type Config struct {
	// TopN is the leaderboard size cutoff
	TopN int
}

// Materializer ranks candidates and replaces the persisted leaderboard
type Materializer struct {
	store store.Store
	price price.Client
	topN  int
}

// NewMaterializer creates a leaderboard materializer
func NewMaterializer(st store.Store, priceClient price.Client, cfg Config) *Materializer {
	if cfg.TopN <= 0 {
		cfg.TopN = 100
	}
	return &Materializer{store: st, price: priceClient, topN: cfg.TopN}
}

// SupporterIndex extracts supporter stakes from discovered positions. A
// position whose title carries a cast reference backs that cast instead of
// its receiver's own entry; unattributable supporters (unresolved wallets)
// are dropped.
func SupporterIndex(
	positions map[common.Address][]domain.LockupPosition,
	identities map[string]domain.Identity,
) map[string][]domain.SupporterPosition {
	index := make(map[string][]domain.SupporterPosition)

	addrs := make([]common.Address, 0, len(positions))
	for addr := range positions {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Hex() < addrs[j].Hex()
	})

	for _, addr := range addrs {
		identity, resolved := identities[strings.ToLower(addr.Hex())]
		for _, position := range positions[addr] {
			castHash, ok := ParseSupporterTitle(position.Title)
			if !ok {
				continue
			}
			if !resolved {
				continue
			}
			index[castHash] = append(index[castHash], domain.SupporterPosition{
				Position: position,
				FID:      identity.FID,
				PfpURL:   identity.PfpURL,
			})
		}
	}

	return index
}

// ParseSupporterTitle extracts the supported cast hash from a lockup title
func ParseSupporterTitle(title string) (string, bool) {
	if !strings.HasPrefix(title, SupporterTitlePrefix) {
		return "", false
	}
	castHash := strings.TrimSpace(strings.TrimPrefix(title, SupporterTitlePrefix))
	return castHash, castHash != ""
}

// Materialize ranks candidates by aggregate stake, truncates to the top N
// and commits the result as a full-table replacement. A duplicate fid in
// the truncated list aborts with no write, since it signals an upstream
// aggregation bug that must not corrupt ranks. The post-commit count
// re-read is a sanity check only; a mismatch is logged, not fatal.
func (m *Materializer) Materialize(
	ctx context.Context,
	candidates []domain.Candidate,
	supporters map[string][]domain.SupporterPosition,
	asOf time.Time,
) (int, error) {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)
	// Stable: ties keep input order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.Cmp(ranked[j].Total) > 0
	})

	if len(ranked) > m.topN {
		ranked = ranked[:m.topN]
	}

	seen := make(map[uint64]bool, len(ranked))
	for _, candidate := range ranked {
		if seen[candidate.Identity.FID] {
			return 0, fmt.Errorf("fid %d appears twice in ranked list: %w",
				candidate.Identity.FID, domain.ErrDuplicateIdentity)
		}
		seen[candidate.Identity.FID] = true
	}

	usdPerToken := m.price.TokenUSD(ctx)

	entries := make([]schema.LeaderboardEntry, 0, len(ranked))
	for i, candidate := range ranked {
		entries = append(entries, m.buildEntry(candidate, supporters[candidate.Cast.Hash], i+1, usdPerToken, asOf))
	}

	if err := m.store.ReplaceLeaderboard(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to commit leaderboard: %w", err)
	}

	count, err := m.store.CountEntries(ctx)
	if err != nil {
		logger.Warn("Post-commit count verification failed", zap.Error(err))
	} else if count != int64(len(entries)) {
		logger.Warn("Post-commit row count mismatch",
			zap.Int64("stored", count),
			zap.Int("expected", len(entries)))
	}

	logger.Info("Leaderboard materialized",
		zap.Int("candidates", len(candidates)),
		zap.Int("entries", len(entries)))

	return len(entries), nil
}

// buildEntry assembles one persisted row from a ranked candidate
func (m *Materializer) buildEntry(
	candidate domain.Candidate,
	supporterPositions []domain.SupporterPosition,
	rank int,
	usdPerToken float64,
	asOf time.Time,
) schema.LeaderboardEntry {
	caster := schema.CasterStake{
		LockupIDs:   []uint64{},
		Amounts:     []string{},
		UnlockTimes: []int64{},
		Unlocked:    []bool{},
		LockTimes:   []int64{},
	}
	total := new(big.Int)
	for _, position := range candidate.Positions {
		caster.LockupIDs = append(caster.LockupIDs, position.LockupID)
		caster.Amounts = append(caster.Amounts, position.Amount.String())
		caster.UnlockTimes = append(caster.UnlockTimes, position.UnlockTime)
		caster.Unlocked = append(caster.Unlocked, position.Unlocked)
		caster.LockTimes = append(caster.LockTimes, position.LockTime)
		if !position.Unlocked {
			total.Add(total, position.Amount)
		}
	}

	supporter := schema.SupporterStake{
		LockupIDs:   []uint64{},
		Amounts:     []string{},
		FIDs:        []uint64{},
		PfpURLs:     []string{},
		UnlockTimes: []int64{},
		Unlocked:    []bool{},
		LockTimes:   []int64{},
	}
	for _, sp := range supporterPositions {
		supporter.LockupIDs = append(supporter.LockupIDs, sp.Position.LockupID)
		supporter.Amounts = append(supporter.Amounts, sp.Position.Amount.String())
		supporter.FIDs = append(supporter.FIDs, sp.FID)
		supporter.PfpURLs = append(supporter.PfpURLs, sp.PfpURL)
		supporter.UnlockTimes = append(supporter.UnlockTimes, sp.Position.UnlockTime)
		supporter.Unlocked = append(supporter.Unlocked, sp.Position.Unlocked)
		supporter.LockTimes = append(supporter.LockTimes, sp.Position.LockTime)
		if !sp.Position.Unlocked {
			total.Add(total, sp.Position.Amount)
		}
	}

	return schema.LeaderboardEntry{
		CastHash:           candidate.Cast.Hash,
		CreatorFID:         candidate.Identity.FID,
		CreatorUsername:    candidate.Identity.Username,
		CreatorDisplayName: candidate.Identity.DisplayName,
		CreatorPfpURL:      candidate.Identity.PfpURL,
		CastText:           candidate.Cast.Text,
		Description:        candidate.Description,
		CastTimestamp:      candidate.Cast.Timestamp,
		TotalHigherStaked:  total.String(),
		USDValue:           TokensToUSD(total, usdPerToken),
		Rank:               rank,
		CasterStake:        datatypes.NewJSONType(caster),
		SupporterStake:     datatypes.NewJSONType(supporter),
		CastState:          string(domain.CastStateHigher),
		CreatedAt:          asOf,
		UpdatedAt:          asOf,
	}
}

// TokensToUSD converts a raw token amount to a USD value at the given price
func TokensToUSD(amount *big.Int, usdPerToken float64) float64 {
	if amount == nil || usdPerToken <= 0 {
		return 0
	}

	tokens := new(big.Float).Quo(
		new(big.Float).SetInt(amount),
		big.NewFloat(1e18),
	)
	usd, _ := new(big.Float).Mul(tokens, big.NewFloat(usdPerToken)).Float64()
	return usd
}
