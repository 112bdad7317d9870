// Package identity maps wallet addresses to social identities and
// aggregates balances across wallets owned by the same identity.
package identity

import (
	"context"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/farcaster"
)

// Resolver resolves wallet addresses to identities in provider-sized batches
type Resolver struct {
	fc        farcaster.Client
	batchSize int
}

// NewResolver creates an identity resolver. batchSize is clamped to the
// provider limit.
func NewResolver(fc farcaster.Client, batchSize int) *Resolver {
	if batchSize <= 0 || batchSize > farcaster.MaxAddressBatch {
		batchSize = farcaster.MaxAddressBatch
	}
	return &Resolver{fc: fc, batchSize: batchSize}
}

// Resolve maps each address to the identity that verified it. A wallet maps
// to at most one identity: when the provider returns several, the first one
// wins. Addresses with no identity are absent from the result, and a failed
// batch only loses its own addresses for this cycle.
func (r *Resolver) Resolve(ctx context.Context, addresses []string) map[string]domain.Identity {
	resolved := make(map[string]domain.Identity)

	for start := 0; start < len(addresses); start += r.batchSize {
		end := start + r.batchSize
		if end > len(addresses) {
			end = len(addresses)
		}
		batch := addresses[start:end]

		byAddress, err := r.fc.BulkByAddress(ctx, batch)
		if err != nil {
			// Isolated: the rest of the batches still resolve
			logger.Warn("Address resolution batch failed",
				zap.Error(err),
				zap.Int("batch_size", len(batch)))
			continue
		}

		for addr, identities := range byAddress {
			if len(identities) == 0 {
				continue
			}
			key := strings.ToLower(addr)
			if _, exists := resolved[key]; !exists {
				resolved[key] = identities[0]
			}
		}
	}

	return resolved
}

// Aggregate sums balances across every wallet verified under the same
// identity and carries each wallet's positions along. Addresses that did
// not resolve are dropped: the position exists on chain but cannot be
// attributed to a leaderboard entry.
func Aggregate(
	balances map[common.Address]*big.Int,
	positions map[common.Address][]domain.LockupPosition,
	identities map[string]domain.Identity,
) map[uint64]*domain.IdentityStake {
	stakes := make(map[uint64]*domain.IdentityStake)

	// Deterministic iteration order so repeated runs attribute identically
	addrs := make([]common.Address, 0, len(balances))
	for addr := range balances {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Hex() < addrs[j].Hex()
	})

	for _, addr := range addrs {
		key := strings.ToLower(addr.Hex())
		id, ok := identities[key]
		if !ok {
			continue
		}

		stake, exists := stakes[id.FID]
		if !exists {
			stake = &domain.IdentityStake{
				Identity: id,
				Total:    new(big.Int),
			}
			stakes[id.FID] = stake
		}

		stake.Total.Add(stake.Total, balances[addr])
		stake.Addresses = append(stake.Addresses, key)
		stake.Positions = append(stake.Positions, positions[addr]...)
	}

	return stakes
}
