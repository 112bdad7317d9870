package pipeline

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/discovery"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/identity"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
	ethprovider "github.com/higher-steaks/hs-leaderboard/internal/providers/ethereum"
	"github.com/higher-steaks/hs-leaderboard/internal/qualify"
	"github.com/higher-steaks/hs-leaderboard/internal/reconcile"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

var (
	stakingToken = common.HexToAddress("0x9999999999999999999999999999999999999999")
	wallet1      = common.HexToAddress("0x1111111111111111111111111111111111111111")
	wallet2      = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// TestRunFullCycle wires the real pipeline stages over mocked external
// clients and checks one end-to-end refresh.
func TestRunFullCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	ledger := mocks.NewMockLockupClient(ctrl)
	ledger.EXPECT().BlockNumber(gomock.Any()).Return(uint64(100), nil)
	ledger.EXPECT().BlockTimestamp(gomock.Any(), uint64(100)).Return(now.Unix(), nil)
	ledger.EXPECT().LockupCount(gomock.Any(), uint64(100)).Return(uint64(3), nil)
	ledger.EXPECT().GetLockups(gomock.Any(), []uint64{0, 1, 2}, uint64(100)).Return([]ethprovider.LockupResult{
		{LockupID: 0, Position: &domain.LockupPosition{
			LockupID: 0, Token: stakingToken, Amount: big.NewInt(100),
			LockTime: now.Unix() - 86400, UnlockTime: now.Unix() + 86400,
			Receiver: wallet1, Title: "my stake",
		}},
		{LockupID: 1, Position: &domain.LockupPosition{
			LockupID: 1, Token: stakingToken, Amount: big.NewInt(50),
			LockTime: now.Unix() - 3600, UnlockTime: now.Unix() + 86400,
			Receiver: wallet2, Title: "cast:0xcast1",
		}},
		{LockupID: 2, Position: &domain.LockupPosition{
			LockupID: 2, Token: stakingToken, Amount: big.NewInt(999),
			Unlocked: true, Receiver: wallet1,
		}},
	}, nil)

	fc := mocks.NewMockFarcasterClient(ctrl)
	fc.EXPECT().BulkByAddress(gomock.Any(), []string{
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
	}).Return(map[string][]domain.Identity{
		"0x1111111111111111111111111111111111111111": {{FID: 1, Username: "alice", PfpURL: "https://alice"}},
		"0x2222222222222222222222222222222222222222": {{FID: 2, Username: "bob", PfpURL: "https://bob"}},
	}, nil)
	fc.EXPECT().UserCasts(gomock.Any(), uint64(1), gomock.Any()).Return([]domain.Cast{
		{Hash: "0xcast1", Text: "started aiming higher and it worked out! built a boat", ChannelID: "higher", Timestamp: now.Add(-time.Hour)},
	}, nil)
	fc.EXPECT().UserCasts(gomock.Any(), uint64(2), gomock.Any()).Return(nil, nil)

	priceClient := mocks.NewMockPriceClient(ctrl)
	priceClient.EXPECT().TokenUSD(gomock.Any()).Return(1.0)

	st := mocks.NewMockStore(ctrl)
	var committed []schema.LeaderboardEntry
	st.EXPECT().ReplaceLeaderboard(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []schema.LeaderboardEntry) error {
			committed = entries
			return nil
		})
	st.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

	p := New(
		discovery.NewDiscoverer(ledger, discovery.Config{Token: stakingToken, BatchSize: 50, Workers: 1}),
		identity.NewResolver(fc, 350),
		reconcile.NewReconciler(fc, qualify.New("", ""), clock, reconcile.Config{CastLimit: 25, Lookback: 24 * time.Hour, Workers: 1}),
		leaderboard.NewMaterializer(st, priceClient, leaderboard.Config{TopN: 100}),
		clock,
	)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), summary.Block)
	assert.Equal(t, 2, summary.PositionsDiscovered)
	assert.Equal(t, 2, summary.AddressesResolved)
	assert.Equal(t, 1, summary.CandidatesQualified)
	assert.Equal(t, 1, summary.EntriesStored)

	require.Len(t, committed, 1)
	entry := committed[0]
	assert.Equal(t, "0xcast1", entry.CastHash)
	assert.Equal(t, uint64(1), entry.CreatorFID)
	assert.Equal(t, 1, entry.Rank)
	// Caster lockup 0 plus bob's supporter lockup 1
	assert.Equal(t, "150", entry.TotalHigherStaked)
	assert.Equal(t, []uint64{0}, entry.CasterStake.Data().LockupIDs)
	assert.Equal(t, []uint64{1}, entry.SupporterStake.Data().LockupIDs)
	assert.Equal(t, []uint64{2}, entry.SupporterStake.Data().FIDs)
}

// TestRunAbortsOnDiscoveryFailure checks that a broken base read commits
// nothing.
func TestRunAbortsOnDiscoveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	ledger := mocks.NewMockLockupClient(ctrl)
	ledger.EXPECT().BlockNumber(gomock.Any()).Return(uint64(0), assert.AnError)

	fc := mocks.NewMockFarcasterClient(ctrl)
	priceClient := mocks.NewMockPriceClient(ctrl)
	st := mocks.NewMockStore(ctrl)

	p := New(
		discovery.NewDiscoverer(ledger, discovery.Config{Token: stakingToken}),
		identity.NewResolver(fc, 350),
		reconcile.NewReconciler(fc, qualify.New("", ""), clock, reconcile.Config{}),
		leaderboard.NewMaterializer(st, priceClient, leaderboard.Config{}),
		clock,
	)

	_, err := p.Run(context.Background())
	assert.Error(t, err)
}
