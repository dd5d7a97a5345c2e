package pet

import (
	"time"

	"petverse/internal/domain/tribe"
)

type ActionOutcome struct {
	Pet           Pet
	Evolved       bool
	PreviousStage Stage
}

// New creates an egg-stage pet. The egg seed is fixed once here and drives
// every later cosmetic form selection for this pet.
func New(id, ownerID string, tb tribe.Tribe, eggSeed int64, now time.Time) Pet {
	return Pet{
		ID:      id,
		OwnerID: ownerID,
		Tribe:   tb,
		Stage:   StageEgg,
		FormID:  FormFor(tb, StageEgg, eggSeed),
		EggSeed: eggSeed,
		Stats: Stats{
			Hunger: NewPetHunger,
			Mood:   NewPetMood,
			Energy: NewPetEnergy,
		},
		LastActionAt:  map[ActionKind]time.Time{},
		CreatedAt:     now,
		LastUpdatedAt: now,
		Version:       1,
	}
}

// CooldownEnd reports when kind becomes available again. ok is false when the
// action has never been performed.
func CooldownEnd(p Pet, kind ActionKind) (time.Time, bool) {
	last, ok := p.LastActionAt[kind]
	if !ok || last.IsZero() {
		return time.Time{}, false
	}
	return last.Add(ActionCooldowns[kind]), true
}

// ApplyAction applies one care action on top of an already settled pet.
// Cooldown admission is the caller's job; this only mutates state. The pet
// passed in must have been settled to now first so deltas land on fresh stats.
func ApplyAction(p Pet, kind ActionKind, now time.Time) ActionOutcome {
	next := p
	stats := next.Stats
	switch kind {
	case ActionFeed:
		stats.Hunger += ActionFeedDeltaHunger
		stats.Mood += ActionFeedDeltaMood
	case ActionPlay:
		stats.Mood += ActionPlayDeltaMood
		stats.Energy += ActionPlayDeltaEnergy
	case ActionSleep:
		stats.Energy += ActionSleepDeltaEnergy
		stats.Mood += ActionSleepDeltaMood
	case ActionSocialize:
		stats.Mood += ActionSocializeDeltaMood
		stats.Energy += ActionSocializeDeltaEnergy
	}
	next.Stats = stats.Clamped()

	if !p.LastCareAt.IsZero() && now.Sub(p.LastCareAt) <= CareStreakWindow {
		next.CareStreak = p.CareStreak + 1
	} else {
		next.CareStreak = 1
	}
	next.TotalActions = p.TotalActions + 1

	gain := 1 + next.CareStreak/ReputationStreakDivisor
	if gain > ReputationGainCap {
		gain = ReputationGainCap
	}
	next.Reputation = p.Reputation + gain

	stamps := make(map[ActionKind]time.Time, len(p.LastActionAt)+1)
	for k, v := range p.LastActionAt {
		stamps[k] = v
	}
	stamps[kind] = now
	next.LastActionAt = stamps
	next.LastCareAt = now
	next.LastUpdatedAt = now

	if next.Stats.Hunger >= NeglectStatFloor && next.Stats.Mood >= NeglectStatFloor {
		next.IsNeglected = false
		next.NeglectedSince = nil
		next.LowStatSince = nil
	}

	prev := next.Stage
	evolved := Evolve(&next)

	return ActionOutcome{
		Pet:           next,
		Evolved:       evolved,
		PreviousStage: prev,
	}
}
