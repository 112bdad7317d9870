package identity

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
)

func TestResolveBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fc := mocks.NewMockFarcasterClient(ctrl)
	r := NewResolver(fc, 2)

	addresses := []string{"0xaa", "0xbb", "0xcc"}

	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xaa", "0xbb"}).Return(map[string][]domain.Identity{
		"0xaa": {{FID: 1, Username: "alice"}},
		"0xbb": {{FID: 2, Username: "bob"}},
	}, nil)
	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xcc"}).Return(map[string][]domain.Identity{
		"0xcc": {{FID: 3, Username: "carol"}},
	}, nil)

	resolved := r.Resolve(context.Background(), addresses)
	require.Len(t, resolved, 3)
	assert.Equal(t, uint64(1), resolved["0xaa"].FID)
	assert.Equal(t, uint64(2), resolved["0xbb"].FID)
	assert.Equal(t, uint64(3), resolved["0xcc"].FID)
}

func TestResolveFailedBatchIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fc := mocks.NewMockFarcasterClient(ctrl)
	r := NewResolver(fc, 1)

	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xaa"}).Return(nil, errors.New("upstream 500"))
	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xbb"}).Return(map[string][]domain.Identity{
		"0xbb": {{FID: 2, Username: "bob"}},
	}, nil)

	resolved := r.Resolve(context.Background(), []string{"0xaa", "0xbb"})
	require.Len(t, resolved, 1)
	assert.Equal(t, uint64(2), resolved["0xbb"].FID)
}

func TestResolveFirstIdentityWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fc := mocks.NewMockFarcasterClient(ctrl)
	r := NewResolver(fc, 10)

	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xaa"}).Return(map[string][]domain.Identity{
		"0xaa": {{FID: 7, Username: "first"}, {FID: 8, Username: "second"}},
	}, nil)

	resolved := r.Resolve(context.Background(), []string{"0xaa"})
	require.Len(t, resolved, 1)
	assert.Equal(t, uint64(7), resolved["0xaa"].FID)
}

func TestResolveUnknownAddressAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fc := mocks.NewMockFarcasterClient(ctrl)
	r := NewResolver(fc, 10)

	fc.EXPECT().BulkByAddress(gomock.Any(), []string{"0xaa", "0xbb"}).Return(map[string][]domain.Identity{
		"0xaa": {{FID: 1}},
		"0xbb": {},
	}, nil)

	resolved := r.Resolve(context.Background(), []string{"0xaa", "0xbb"})
	require.Len(t, resolved, 1)
	_, ok := resolved["0xbb"]
	assert.False(t, ok)
}

func TestAggregateSumsAcrossWallets(t *testing.T) {
	wallet1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	wallet2 := common.HexToAddress("0x2222222222222222222222222222222222222222")
	wallet3 := common.HexToAddress("0x3333333333333333333333333333333333333333")

	balances := map[common.Address]*big.Int{
		wallet1: big.NewInt(100),
		wallet2: big.NewInt(50),
		wallet3: big.NewInt(7),
	}
	positions := map[common.Address][]domain.LockupPosition{
		wallet1: {{LockupID: 1, Amount: big.NewInt(100)}},
		wallet2: {{LockupID: 2, Amount: big.NewInt(50)}},
		wallet3: {{LockupID: 3, Amount: big.NewInt(7)}},
	}
	alice := domain.Identity{FID: 1, Username: "alice"}
	bob := domain.Identity{FID: 2, Username: "bob"}
	identities := map[string]domain.Identity{
		"0x1111111111111111111111111111111111111111": alice,
		"0x2222222222222222222222222222222222222222": alice,
		"0x3333333333333333333333333333333333333333": bob,
	}

	stakes := Aggregate(balances, positions, identities)
	require.Len(t, stakes, 2)

	assert.Equal(t, big.NewInt(150), stakes[1].Total)
	assert.Len(t, stakes[1].Addresses, 2)
	assert.Len(t, stakes[1].Positions, 2)

	assert.Equal(t, big.NewInt(7), stakes[2].Total)
	assert.Len(t, stakes[2].Positions, 1)
}

func TestAggregateDropsUnresolvedWallets(t *testing.T) {
	wallet1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	wallet2 := common.HexToAddress("0x2222222222222222222222222222222222222222")

	balances := map[common.Address]*big.Int{
		wallet1: big.NewInt(100),
		wallet2: big.NewInt(999),
	}
	identities := map[string]domain.Identity{
		"0x1111111111111111111111111111111111111111": {FID: 1},
	}

	stakes := Aggregate(balances, map[common.Address][]domain.LockupPosition{}, identities)
	require.Len(t, stakes, 1)
	assert.Equal(t, big.NewInt(100), stakes[1].Total)
}
