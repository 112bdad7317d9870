// Package scoring computes time-weighted stake scores for leaderboard
// ranking. The unit is token-days: the staked amount multiplied by the
// number of days it has been locked.
package scoring

import "math/big"

const secondsPerDay = 86400

// Score returns the time-weighted score of a single stake as of a
// caller-supplied instant. It never reads the wall clock, so identical
// inputs always produce identical scores.
//
// The score is principal multiplied by the accrued locked duration in days,
// where accrual stops at the unlock time. Degenerate inputs (nil or
// non-positive principal, zero lock or unlock time) score 0 rather than
// returning an error.
func Score(principal *big.Int, lockTime, unlockTime, asOf int64) float64 {
	if principal == nil || principal.Sign() <= 0 {
		return 0
	}
	if lockTime <= 0 || unlockTime <= 0 {
		return 0
	}

	end := asOf
	if end > unlockTime {
		end = unlockTime
	}

	accrued := end - lockTime
	if accrued <= 0 {
		return 0
	}

	p, _ := new(big.Float).SetInt(principal).Float64()
	return p * float64(accrued) / secondsPerDay
}
