package staking

import (
	"math/big"

	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"
)

const bpsScale = 10000

// PowerFor derives staking power from the raw staked amount, the pet's stage
// and its tribe. Both multipliers are applied in basis points and rounding
// happens exactly once, at the final division, so per-factor rounding error
// cannot compound. Intermediates use big.Int so large raw amounts cannot
// overflow.
func PowerFor(amountStaked int64, stage pet.Stage, tb tribe.Tribe) int64 {
	if amountStaked <= 0 {
		return 0
	}
	v := new(big.Int).SetInt64(amountStaked)
	v.Mul(v, big.NewInt(pet.StageMultiplierBps(stage)))
	v.Mul(v, big.NewInt(tb.MultiplierBps()))
	v.Div(v, big.NewInt(bpsScale*bpsScale))
	return v.Int64()
}
