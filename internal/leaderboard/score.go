package leaderboard

import (
	"math/big"
	"time"

	"github.com/higher-steaks/hs-leaderboard/internal/scoring"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

// WeightedScore computes the time-weighted score of an entry's live stakes
// as of the given instant. Scores are derived on read, never persisted, so
// they stay current between materializer runs without any write traffic.
func WeightedScore(entry schema.LeaderboardEntry, asOf time.Time) float64 {
	caster := entry.CasterStake.Data()
	supporter := entry.SupporterStake.Data()

	total := stakeScore(caster.Amounts, caster.LockTimes, caster.UnlockTimes, caster.Unlocked, asOf.Unix())
	total += stakeScore(supporter.Amounts, supporter.LockTimes, supporter.UnlockTimes, supporter.Unlocked, asOf.Unix())

	return total
}

func stakeScore(amounts []string, lockTimes, unlockTimes []int64, unlocked []bool, asOf int64) float64 {
	total := 0.0
	for i, raw := range amounts {
		if unlocked[i] {
			continue
		}
		amount, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			continue
		}
		total += scoring.Score(amount, lockTimes[i], unlockTimes[i], asOf)
	}

	return total
}
