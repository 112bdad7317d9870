// Package discovery enumerates on-chain lockup positions for the staking
// token at a single pinned block.
package discovery

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	ethprovider "github.com/higher-steaks/hs-leaderboard/internal/providers/ethereum"
)

// Config holds discovery configuration
type Config struct {
	// Token is the staking token; positions in other tokens are ignored
	Token common.Address
	// BatchSize is the number of lockup detail reads per multicall
	BatchSize int
	// Workers is the number of concurrent multicall batches
	Workers int
}

// Snapshot is the discovered position set at one block. Two snapshots taken
// at the same block with unchanged chain state are identical.
type Snapshot struct {
	Block     uint64
	BlockTime int64
	// Balances maps each receiver to its total locked (non-unlocked) amount
	Balances map[common.Address]*big.Int
	// Positions maps each receiver to its individual locked positions
	Positions map[common.Address][]domain.LockupPosition
}

// Discoverer scans the lockup ledger
type Discoverer struct {
	ledger ethprovider.LockupClient
	config Config
}

// NewDiscoverer creates a position discoverer
func NewDiscoverer(ledger ethprovider.LockupClient, cfg Config) *Discoverer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Discoverer{ledger: ledger, config: cfg}
}

// Discover enumerates every lockup ever created and aggregates the locked
// amounts per receiver, all read at a single pinned block. A failed detail
// batch is logged and skipped; a failed count read aborts the whole cycle
// since a partial base read would produce a misleading leaderboard.
func (d *Discoverer) Discover(ctx context.Context, blockNumber uint64) (*Snapshot, error) {
	if blockNumber == 0 {
		head, err := d.ledger.BlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to pin block: %w", err)
		}
		blockNumber = head
	}

	blockTime, err := d.ledger.BlockTimestamp(ctx, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read block timestamp: %w", err)
	}

	count, err := d.ledger.LockupCount(ctx, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockup count: %w", err)
	}

	logger.Info("Discovering lockup positions",
		zap.Uint64("block", blockNumber),
		zap.Uint64("lockup_count", count))

	snapshot := &Snapshot{
		Block:     blockNumber,
		BlockTime: blockTime,
		Balances:  make(map[common.Address]*big.Int),
		Positions: make(map[common.Address][]domain.LockupPosition),
	}

	var mu sync.Mutex
	pool := pond.NewPool(d.config.Workers)
	group := pool.NewGroup()

	for start := uint64(0); start < count; start += uint64(d.config.BatchSize) {
		end := start + uint64(d.config.BatchSize)
		if end > count {
			end = count
		}

		ids := make([]uint64, 0, end-start)
		for id := start; id < end; id++ {
			ids = append(ids, id)
		}

		group.SubmitErr(func() error {
			results, err := d.ledger.GetLockups(ctx, ids, blockNumber)
			if err != nil {
				// Best effort per batch: a failed multicall loses only its
				// own lockups for this cycle
				logger.Warn("Lockup detail batch failed",
					zap.Error(err),
					zap.Uint64("from", ids[0]),
					zap.Uint64("to", ids[len(ids)-1]))
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, res := range results {
				if res.Err != nil {
					logger.Warn("Skipping unreadable lockup",
						zap.Error(res.Err),
						zap.Uint64("lockup_id", res.LockupID))
					continue
				}
				d.accumulate(snapshot, res.Position)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("discovery fan-out failed: %w", err)
	}
	pool.StopAndWait()

	// Deterministic position order regardless of batch completion order
	for _, positions := range snapshot.Positions {
		sort.Slice(positions, func(i, j int) bool {
			return positions[i].LockupID < positions[j].LockupID
		})
	}

	return snapshot, nil
}

// accumulate adds a position to the snapshot if it is an active stake of
// the configured token. Unlocked positions no longer represent a stake and
// are excluded entirely.
func (d *Discoverer) accumulate(snapshot *Snapshot, position *domain.LockupPosition) {
	if position.Token != d.config.Token {
		return
	}
	if position.Unlocked {
		return
	}
	if position.Amount == nil || position.Amount.Sign() <= 0 {
		return
	}

	receiver := position.Receiver
	if _, ok := snapshot.Balances[receiver]; !ok {
		snapshot.Balances[receiver] = new(big.Int)
	}
	snapshot.Balances[receiver].Add(snapshot.Balances[receiver], position.Amount)
	snapshot.Positions[receiver] = append(snapshot.Positions[receiver], *position)
}
