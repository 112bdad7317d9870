package scoring_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/higher-steaks/hs-leaderboard/internal/scoring"
)

func TestScore(t *testing.T) {
	t.Run("zero or negative inputs score zero", func(t *testing.T) {
		tests := []struct {
			name       string
			principal  *big.Int
			lockTime   int64
			unlockTime int64
			asOf       int64
		}{
			{"nil principal", nil, 1000, 2000, 1500},
			{"zero principal", big.NewInt(0), 1000, 2000, 1500},
			{"negative principal", big.NewInt(-5), 1000, 2000, 1500},
			{"zero lock time", big.NewInt(100), 0, 2000, 1500},
			{"negative lock time", big.NewInt(100), -1, 2000, 1500},
			{"zero unlock time", big.NewInt(100), 1000, 0, 1500},
			{"negative unlock time", big.NewInt(100), 1000, -1, 1500},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Zero(t, scoring.Score(tt.principal, tt.lockTime, tt.unlockTime, tt.asOf))
			})
		}
	})

	t.Run("accrues token-days up to asOf", func(t *testing.T) {
		// 100 tokens locked for exactly two days
		lock := int64(1_700_000_000)
		asOf := lock + 2*86400
		got := scoring.Score(big.NewInt(100), lock, lock+10*86400, asOf)
		assert.InDelta(t, 200.0, got, 1e-9)
	})

	t.Run("accrual stops at unlock time", func(t *testing.T) {
		lock := int64(1_700_000_000)
		unlock := lock + 3*86400
		// asOf far past the unlock time: score is capped at 3 token-days per token
		got := scoring.Score(big.NewInt(10), lock, unlock, unlock+365*86400)
		assert.InDelta(t, 30.0, got, 1e-9)
	})

	t.Run("zero before any time accrued", func(t *testing.T) {
		lock := int64(1_700_000_000)
		assert.Zero(t, scoring.Score(big.NewInt(100), lock, lock+86400, lock))
		assert.Zero(t, scoring.Score(big.NewInt(100), lock, lock+86400, lock-10))
	})

	t.Run("monotonically non-decreasing in principal", func(t *testing.T) {
		lock := int64(1_700_000_000)
		unlock := lock + 30*86400
		asOf := lock + 7*86400

		prev := 0.0
		for _, p := range []int64{1, 2, 10, 100, 1_000_000} {
			got := scoring.Score(big.NewInt(p), lock, unlock, asOf)
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		a := scoring.Score(big.NewInt(12345), 1_700_000_000, 1_710_000_000, 1_705_000_000)
		b := scoring.Score(big.NewInt(12345), 1_700_000_000, 1_710_000_000, 1_705_000_000)
		assert.Equal(t, a, b)
	})
}
