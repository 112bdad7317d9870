package leaderboard

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

func candidate(fid uint64, total int64, castHash string) domain.Candidate {
	return domain.Candidate{
		Identity: domain.Identity{FID: fid, Username: fmt.Sprintf("user%d", fid)},
		Total:    big.NewInt(total),
		Cast:     domain.Cast{Hash: castHash, Timestamp: time.Unix(1700000000, 0)},
		Positions: []domain.LockupPosition{
			{LockupID: fid * 10, Amount: big.NewInt(total), LockTime: 1, UnlockTime: 2},
		},
	}
}

func TestMaterializeRanksTopNDense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	pc := mocks.NewMockPriceClient(ctrl)
	m := NewMaterializer(st, pc, Config{TopN: 100})

	candidates := make([]domain.Candidate, 0, 150)
	for fid := uint64(1); fid <= 150; fid++ {
		candidates = append(candidates, candidate(fid, int64(fid), fmt.Sprintf("0x%03d", fid)))
	}

	pc.EXPECT().TokenUSD(gomock.Any()).Return(0.0)

	var committed []schema.LeaderboardEntry
	st.EXPECT().ReplaceLeaderboard(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []schema.LeaderboardEntry) error {
			committed = entries
			return nil
		})
	st.EXPECT().CountEntries(gomock.Any()).Return(int64(100), nil)

	stored, err := m.Materialize(context.Background(), candidates, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 100, stored)
	require.Len(t, committed, 100)

	seenFids := make(map[uint64]bool)
	for i, entry := range committed {
		assert.Equal(t, i+1, entry.Rank)
		assert.Equal(t, string(domain.CastStateHigher), entry.CastState)
		assert.False(t, seenFids[entry.CreatorFID])
		seenFids[entry.CreatorFID] = true
	}

	// Highest stake first: fid 150 staked 150
	assert.Equal(t, uint64(150), committed[0].CreatorFID)
	assert.Equal(t, uint64(51), committed[99].CreatorFID)
}

func TestMaterializeDuplicateFidAbortsWithoutWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	pc := mocks.NewMockPriceClient(ctrl)
	m := NewMaterializer(st, pc, Config{TopN: 100})

	candidates := []domain.Candidate{
		candidate(1, 100, "0xaaa"),
		candidate(1, 50, "0xbbb"),
	}

	_, err := m.Materialize(context.Background(), candidates, nil, time.Now())
	require.ErrorIs(t, err, domain.ErrDuplicateIdentity)
}

func TestMaterializeStableTieBreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	pc := mocks.NewMockPriceClient(ctrl)
	m := NewMaterializer(st, pc, Config{TopN: 10})

	candidates := []domain.Candidate{
		candidate(1, 100, "0xfirst"),
		candidate(2, 100, "0xsecond"),
	}

	pc.EXPECT().TokenUSD(gomock.Any()).Return(0.0)

	var committed []schema.LeaderboardEntry
	st.EXPECT().ReplaceLeaderboard(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []schema.LeaderboardEntry) error {
			committed = entries
			return nil
		})
	st.EXPECT().CountEntries(gomock.Any()).Return(int64(2), nil)

	_, err := m.Materialize(context.Background(), candidates, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, committed, 2)
	assert.Equal(t, "0xfirst", committed[0].CastHash)
	assert.Equal(t, "0xsecond", committed[1].CastHash)
}

func TestMaterializeCountMismatchIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	pc := mocks.NewMockPriceClient(ctrl)
	m := NewMaterializer(st, pc, Config{TopN: 10})

	pc.EXPECT().TokenUSD(gomock.Any()).Return(0.0)
	st.EXPECT().ReplaceLeaderboard(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().CountEntries(gomock.Any()).Return(int64(999), nil)

	stored, err := m.Materialize(context.Background(), []domain.Candidate{candidate(1, 100, "0xaaa")}, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, stored)
}

func TestMaterializeEntryTotalsAndUSD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	pc := mocks.NewMockPriceClient(ctrl)
	m := NewMaterializer(st, pc, Config{TopN: 10})

	oneToken := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	c := domain.Candidate{
		Identity: domain.Identity{FID: 1},
		Total:    oneToken,
		Cast:     domain.Cast{Hash: "0xaaa"},
		Positions: []domain.LockupPosition{
			{LockupID: 1, Amount: oneToken, LockTime: 1, UnlockTime: 2},
			{LockupID: 2, Amount: oneToken, LockTime: 1, UnlockTime: 2, Unlocked: true},
		},
	}
	supporters := map[string][]domain.SupporterPosition{
		"0xaaa": {{
			Position: domain.LockupPosition{LockupID: 3, Amount: oneToken, LockTime: 1, UnlockTime: 2},
			FID:      9,
			PfpURL:   "https://pfp",
		}},
	}

	pc.EXPECT().TokenUSD(gomock.Any()).Return(2.5)

	var committed []schema.LeaderboardEntry
	st.EXPECT().ReplaceLeaderboard(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []schema.LeaderboardEntry) error {
			committed = entries
			return nil
		})
	st.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

	_, err := m.Materialize(context.Background(), []domain.Candidate{c}, supporters, time.Now())
	require.NoError(t, err)
	require.Len(t, committed, 1)

	entry := committed[0]
	// Unlocked caster position excluded from the total; supporter included
	expected := new(big.Int).Mul(oneToken, big.NewInt(2))
	assert.Equal(t, expected.String(), entry.TotalHigherStaked)
	assert.InDelta(t, 5.0, entry.USDValue, 1e-9)

	caster := entry.CasterStake.Data()
	assert.Equal(t, []uint64{1, 2}, caster.LockupIDs)
	assert.Equal(t, []bool{false, true}, caster.Unlocked)

	supporter := entry.SupporterStake.Data()
	assert.Equal(t, []uint64{3}, supporter.LockupIDs)
	assert.Equal(t, []uint64{9}, supporter.FIDs)
}

func TestSupporterIndex(t *testing.T) {
	wallet1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	wallet2 := common.HexToAddress("0x2222222222222222222222222222222222222222")

	positions := map[common.Address][]domain.LockupPosition{
		wallet1: {
			{LockupID: 1, Amount: big.NewInt(10), Title: "cast:0xabc"},
			{LockupID: 2, Amount: big.NewInt(20), Title: "my own stake"},
		},
		wallet2: {
			{LockupID: 3, Amount: big.NewInt(30), Title: "cast:0xabc"},
		},
	}
	identities := map[string]domain.Identity{
		"0x1111111111111111111111111111111111111111": {FID: 1, PfpURL: "https://one"},
		// wallet2 unresolved: its supporter position is dropped
	}

	index := SupporterIndex(positions, identities)
	require.Len(t, index, 1)
	require.Len(t, index["0xabc"], 1)
	assert.Equal(t, uint64(1), index["0xabc"][0].FID)
	assert.Equal(t, uint64(1), index["0xabc"][0].Position.LockupID)
}

func TestParseSupporterTitle(t *testing.T) {
	hash, ok := ParseSupporterTitle("cast:0xabc")
	assert.True(t, ok)
	assert.Equal(t, "0xabc", hash)

	_, ok = ParseSupporterTitle("cast:   ")
	assert.False(t, ok)

	_, ok = ParseSupporterTitle("plain title")
	assert.False(t, ok)
}

func TestTokensToUSD(t *testing.T) {
	oneToken := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	assert.InDelta(t, 3.5, TokensToUSD(oneToken, 3.5), 1e-9)
	assert.Zero(t, TokensToUSD(oneToken, 0))
	assert.Zero(t, TokensToUSD(nil, 3.5))
}
