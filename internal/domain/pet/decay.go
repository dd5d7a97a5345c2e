package pet

import "time"

// Settle decays a pet from its stored snapshot to now. Pure and idempotent:
// settling with now equal to LastUpdatedAt returns the stored values
// unchanged, and settling twice at the same instant yields the same result.
// Decay is linear per stat in whole elapsed seconds, clamped to [0,100].
func Settle(p Pet, now time.Time) Pet {
	elapsed := now.Sub(p.LastUpdatedAt)
	if elapsed <= 0 {
		return p
	}
	secs := int64(elapsed / time.Second)

	hLoss, hCarry := decaySteps(secs, int64(p.DecayCarry.Hunger), HungerDecayPerDay)
	mLoss, mCarry := decaySteps(secs, int64(p.DecayCarry.Mood), MoodDecayPerDay)
	eLoss, eCarry := decaySteps(secs, int64(p.DecayCarry.Energy), EnergyDecayPerDay)

	next := p
	next.Stats = Stats{
		Hunger: p.Stats.Hunger - hLoss,
		Mood:   p.Stats.Mood - mLoss,
		Energy: p.Stats.Energy - eLoss,
	}.Clamped()
	next.DecayCarry = Stats{Hunger: int(hCarry), Mood: int(mCarry), Energy: int(eCarry)}
	next.LastUpdatedAt = now

	low := next.Stats.Hunger < NeglectStatFloor || next.Stats.Mood < NeglectStatFloor
	switch {
	case !low:
		next.LowStatSince = nil
	case next.LowStatSince == nil:
		crossed := lowStatCrossing(p)
		next.LowStatSince = &crossed
	}

	// Once neglected, a pet stays neglected until a qualifying care action
	// clears the condition; decay alone never un-neglects.
	if !next.IsNeglected && next.LowStatSince != nil {
		since := next.LowStatSince.Add(NeglectGracePeriod)
		if !now.Before(since) {
			next.IsNeglected = true
			next.NeglectedSince = &since
		}
	}
	return next
}

// NeglectedFor is how long the pet has been in the neglected state at now.
func (p Pet) NeglectedFor(now time.Time) time.Duration {
	if !p.IsNeglected || p.NeglectedSince == nil {
		return 0
	}
	d := now.Sub(*p.NeglectedSince)
	if d < 0 {
		return 0
	}
	return d
}

// decaySteps folds carried-over plus newly elapsed seconds into whole points
// of decay and returns the seconds left over. The remainder rides on the pet,
// so frequent settlement loses nothing to truncation.
func decaySteps(secs, carry int64, perDay int) (int, int64) {
	interval := 86400 / int64(perDay)
	total := carry + secs
	return int(total / interval), total % interval
}

// lowStatCrossing is the instant at which hunger or mood first dropped below
// the neglect floor, derived from the stored snapshot and the linear rates.
func lowStatCrossing(p Pet) time.Time {
	secs := crossingSeconds(p.Stats.Hunger, int64(p.DecayCarry.Hunger), HungerDecayPerDay)
	if m := crossingSeconds(p.Stats.Mood, int64(p.DecayCarry.Mood), MoodDecayPerDay); m < secs {
		secs = m
	}
	return p.LastUpdatedAt.Add(time.Duration(secs) * time.Second)
}

// crossingSeconds is the smallest whole-second elapsed time at which a stat
// starting at v, with carried decay seconds, drops below the neglect floor
// under its per-day rate.
func crossingSeconds(v int, carry int64, perDay int) int64 {
	if v < NeglectStatFloor {
		return 0
	}
	interval := 86400 / int64(perDay)
	secs := int64(v-NeglectStatFloor+1)*interval - carry
	if secs < 0 {
		return 0
	}
	return secs
}
