package staking

import (
	"math/big"
	"time"

	"petverse/internal/domain/pet"
)

const (
	// Annual reward rate per stage, in basis points of power.
	apyBpsEgg      = 500
	apyBpsJuvenile = 800
	apyBpsAdult    = 1200
	apyBpsElder    = 1500

	// WinningTribeBonusBps scales accrual up for members of the reigning
	// tribe: 12500 bps = 1.25x.
	WinningTribeBonusBps = 12500

	// Neglect penalty grows per full day neglected and is capped; at the cap
	// a neglected pet still accrues 25% of its normal rate.
	NeglectPenaltyBpsPerDay = 1000
	NeglectPenaltyBpsCap    = 7500

	secondsPerDay  = 86400
	secondsPerYear = 365 * secondsPerDay
)

func APYBpsForStage(s pet.Stage) int64 {
	switch s {
	case pet.StageEgg:
		return apyBpsEgg
	case pet.StageJuvenile:
		return apyBpsJuvenile
	case pet.StageAdult:
		return apyBpsAdult
	case pet.StageElder:
		return apyBpsElder
	default:
		return apyBpsEgg
	}
}

// NeglectPenaltyBps maps a neglect duration to a reward penalty in basis
// points, monotone in whole neglected days and capped.
func NeglectPenaltyBps(neglectedFor time.Duration) int64 {
	if neglectedFor <= 0 {
		return 0
	}
	days := int64(neglectedFor / (24 * time.Hour))
	penalty := days * NeglectPenaltyBpsPerDay
	if penalty > NeglectPenaltyBpsCap {
		penalty = NeglectPenaltyBpsCap
	}
	return penalty
}

// AccruedReward is the raw smallest-unit reward earned by power between from
// and to. Accrual is linear in whole elapsed seconds. The winning-tribe bonus
// and the neglect penalty are folded into a single numerator/denominator pair
// and rounding happens exactly once, at the final division. No floating point
// anywhere.
func AccruedReward(power int64, stage pet.Stage, from, to time.Time, winningTribe bool, neglectedFor time.Duration) int64 {
	if power <= 0 || !to.After(from) {
		return 0
	}
	secs := int64(to.Sub(from) / time.Second)
	if secs <= 0 {
		return 0
	}

	num := new(big.Int).SetInt64(power)
	num.Mul(num, big.NewInt(APYBpsForStage(stage)))
	num.Mul(num, big.NewInt(secs))
	den := new(big.Int).SetInt64(bpsScale * secondsPerYear)

	if winningTribe {
		num.Mul(num, big.NewInt(WinningTribeBonusBps))
		den.Mul(den, big.NewInt(bpsScale))
	}
	if penalty := NeglectPenaltyBps(neglectedFor); penalty > 0 {
		num.Mul(num, big.NewInt(bpsScale-penalty))
		den.Mul(den, big.NewInt(bpsScale))
	}

	return new(big.Int).Div(num, den).Int64()
}
