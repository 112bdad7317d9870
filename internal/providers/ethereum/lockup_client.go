package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// lockupLedgerABI covers the reads this service needs from the lockup
// ledger contract: total lockup count and per-lockup detail records.
const lockupLedgerABI = `[
	{"constant":true,"inputs":[],"name":"lockupCount","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"lockupId","type":"uint256"}],"name":"getLockup","outputs":[
		{"name":"token","type":"address"},
		{"name":"isFungible","type":"bool"},
		{"name":"lockTime","type":"uint256"},
		{"name":"unlockTime","type":"uint256"},
		{"name":"unlocked","type":"bool"},
		{"name":"amount","type":"uint256"},
		{"name":"receiver","type":"address"},
		{"name":"title","type":"string"}
	],"stateMutability":"view","type":"function"}
]`

// multicall3ABI is the aggregate3 entrypoint of the canonical Multicall3
// deployment, used to batch detail reads while keeping per-call failure
// information.
const multicall3ABI = `[
	{"inputs":[{"components":[
		{"name":"target","type":"address"},
		{"name":"allowFailure","type":"bool"},
		{"name":"callData","type":"bytes"}
	],"name":"calls","type":"tuple[]"}],
	"name":"aggregate3",
	"outputs":[{"components":[
		{"name":"success","type":"bool"},
		{"name":"returnData","type":"bytes"}
	],"name":"returnData","type":"tuple[]"}],
	"stateMutability":"payable","type":"function"}
]`

// LockupResult is the outcome of one lockup detail read within a batch.
// Failed reads carry an error instead of a position so callers can skip
// them without aborting the batch.
type LockupResult struct {
	LockupID uint64
	Position *domain.LockupPosition
	Err      error
}

// LockupClient reads the on-chain lockup ledger. All reads are pinned to a
// caller-supplied block so a multi-call scan observes one consistent state.
//
//go:generate mockgen -source=lockup_client.go -destination=../../mocks/lockup_client.go -package=mocks -mock_names=LockupClient=MockLockupClient
type LockupClient interface {
	// BlockNumber returns the current chain head
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockTimestamp returns the timestamp of a block
	BlockTimestamp(ctx context.Context, blockNumber uint64) (int64, error)

	// LockupCount returns the total number of lockups ever created, read at
	// the given block
	LockupCount(ctx context.Context, blockNumber uint64) (uint64, error)

	// GetLockups fetches detail records for a batch of lockup ids at the
	// given block via a single multicall. One failed call does not fail the
	// batch.
	GetLockups(ctx context.Context, lockupIDs []uint64, blockNumber uint64) ([]LockupResult, error)

	// Close closes the underlying connection
	Close()
}

type lockupClient struct {
	client    adapter.EthClient
	ledger    common.Address
	multicall common.Address
	ledgerABI abi.ABI
	mcABI     abi.ABI
}

// NewLockupClient creates a lockup ledger client bound to a ledger contract
// and a Multicall3 deployment.
func NewLockupClient(client adapter.EthClient, ledger, multicall common.Address) (LockupClient, error) {
	ledgerABI, err := abi.JSON(strings.NewReader(lockupLedgerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger ABI: %w", err)
	}

	mcABI, err := abi.JSON(strings.NewReader(multicall3ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse multicall ABI: %w", err)
	}

	return &lockupClient{
		client:    client,
		ledger:    ledger,
		multicall: multicall,
		ledgerABI: ledgerABI,
		mcABI:     mcABI,
	}, nil
}

// BlockNumber returns the current chain head
func (c *lockupClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

// BlockTimestamp returns the timestamp of a block
func (c *lockupClient) BlockTimestamp(ctx context.Context, blockNumber uint64) (int64, error) {
	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, fmt.Errorf("failed to get header %d: %w", blockNumber, err)
	}
	return int64(header.Time), nil //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
}

// LockupCount returns the total number of lockups ever created at a block
func (c *lockupClient) LockupCount(ctx context.Context, blockNumber uint64) (uint64, error) {
	data, err := c.ledgerABI.Pack("lockupCount")
	if err != nil {
		return 0, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, goethereum.CallMsg{
		To:   &c.ledger,
		Data: data,
	}, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, fmt.Errorf("failed to call contract: %w", err)
	}

	var count *big.Int
	if err := c.ledgerABI.UnpackIntoInterface(&count, "lockupCount", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}

	return count.Uint64(), nil
}

// multicall3Call mirrors the Call3 tuple of aggregate3
type multicall3Call struct {
	Target       common.Address `abi:"target"`
	AllowFailure bool           `abi:"allowFailure"`
	CallData     []byte         `abi:"callData"`
}

// multicall3Result mirrors the Result tuple of aggregate3
type multicall3Result struct {
	Success    bool   `abi:"success"`
	ReturnData []byte `abi:"returnData"`
}

// GetLockups fetches detail records for a batch of lockup ids in a single
// aggregate3 call pinned to the given block
func (c *lockupClient) GetLockups(ctx context.Context, lockupIDs []uint64, blockNumber uint64) ([]LockupResult, error) {
	if len(lockupIDs) == 0 {
		return nil, nil
	}

	calls := make([]multicall3Call, 0, len(lockupIDs))
	for _, id := range lockupIDs {
		callData, err := c.ledgerABI.Pack("getLockup", new(big.Int).SetUint64(id))
		if err != nil {
			return nil, fmt.Errorf("failed to pack getLockup(%d): %w", id, err)
		}
		calls = append(calls, multicall3Call{
			Target:       c.ledger,
			AllowFailure: true,
			CallData:     callData,
		})
	}

	data, err := c.mcABI.Pack("aggregate3", calls)
	if err != nil {
		return nil, fmt.Errorf("failed to pack aggregate3: %w", err)
	}

	raw, err := c.client.CallContract(ctx, goethereum.CallMsg{
		To:   &c.multicall,
		Data: data,
	}, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to call multicall: %w", err)
	}

	var results []multicall3Result
	if err := c.mcABI.UnpackIntoInterface(&results, "aggregate3", raw); err != nil {
		return nil, fmt.Errorf("failed to unpack aggregate3 result: %w", err)
	}

	if len(results) != len(lockupIDs) {
		return nil, fmt.Errorf("multicall returned %d results for %d calls", len(results), len(lockupIDs))
	}

	out := make([]LockupResult, 0, len(lockupIDs))
	for i, res := range results {
		if !res.Success {
			out = append(out, LockupResult{
				LockupID: lockupIDs[i],
				Err:      fmt.Errorf("getLockup(%d) reverted", lockupIDs[i]),
			})
			continue
		}

		position, err := c.decodeLockup(lockupIDs[i], res.ReturnData)
		if err != nil {
			out = append(out, LockupResult{LockupID: lockupIDs[i], Err: err})
			continue
		}

		out = append(out, LockupResult{LockupID: lockupIDs[i], Position: position})
	}

	return out, nil
}

// decodeLockup unpacks a getLockup return blob into a position snapshot
func (c *lockupClient) decodeLockup(lockupID uint64, returnData []byte) (*domain.LockupPosition, error) {
	values, err := c.ledgerABI.Unpack("getLockup", returnData)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getLockup(%d): %w", lockupID, err)
	}
	if len(values) != 8 {
		return nil, fmt.Errorf("getLockup(%d): expected 8 values, got %d", lockupID, len(values))
	}

	token, ok := values[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected token type", lockupID)
	}
	isFungible, ok := values[1].(bool)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected isFungible type", lockupID)
	}
	lockTime, ok := values[2].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected lockTime type", lockupID)
	}
	unlockTime, ok := values[3].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected unlockTime type", lockupID)
	}
	unlocked, ok := values[4].(bool)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected unlocked type", lockupID)
	}
	amount, ok := values[5].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected amount type", lockupID)
	}
	receiver, ok := values[6].(common.Address)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected receiver type", lockupID)
	}
	title, ok := values[7].(string)
	if !ok {
		return nil, fmt.Errorf("getLockup(%d): unexpected title type", lockupID)
	}

	return &domain.LockupPosition{
		LockupID:   lockupID,
		Token:      token,
		IsFungible: isFungible,
		LockTime:   lockTime.Int64(),
		UnlockTime: unlockTime.Int64(),
		Unlocked:   unlocked,
		Amount:     amount,
		Receiver:   receiver,
		Title:      title,
	}, nil
}

// Close closes the underlying connection
func (c *lockupClient) Close() {
	c.client.Close()
}
