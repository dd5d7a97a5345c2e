package raid

import (
	"hash/fnv"
	"strconv"
)

const (
	// PowerPerDamage converts staking power into base damage points.
	PowerPerDamage = 10

	MinDamage = 1

	// DefaultVarianceBps bounds the deterministic damage variance band:
	// 1000 bps = ±10% of base damage.
	DefaultVarianceBps = 1000
)

// DamageFor computes attack damage from the attacker's power plus a bounded
// variance. The variance is seeded from (raidID, userID, attackCount) rather
// than drawn at runtime, so replaying the same attack always yields the same
// value and the band is exactly ±varianceBps of base.
func DamageFor(power int64, varianceBps int64, raidID, userID string, attackCount int) int64 {
	base := power / PowerPerDamage
	if base < MinDamage {
		base = MinDamage
	}
	if varianceBps <= 0 {
		return base
	}

	h := fnv.New64a()
	h.Write([]byte(raidID))
	h.Write([]byte{0})
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(attackCount)))
	span := uint64(2*varianceBps + 1)
	offset := int64(h.Sum64()%span) - varianceBps

	dmg := base + base*offset/10000
	if dmg < MinDamage {
		dmg = MinDamage
	}
	return dmg
}

// Clip limits damage to the boss's remaining health so HP can never go
// negative; the clipped value is what participants are credited with.
func Clip(damage, hpCurrent int64) int64 {
	if damage > hpCurrent {
		return hpCurrent
	}
	if damage < 0 {
		return 0
	}
	return damage
}
