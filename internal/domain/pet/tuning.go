package pet

import "time"

const (
	// Decay rates in stat points per day. Settlement scales them by elapsed
	// seconds with integer math so the result is identical for identical
	// inputs regardless of how often settlement runs.
	HungerDecayPerDay = 48
	MoodDecayPerDay   = 36
	EnergyDecayPerDay = 24

	NewPetHunger = 80
	NewPetMood   = 70
	NewPetEnergy = 60

	// A pet turns neglected once hunger or mood has stayed below the floor
	// continuously for the grace period.
	NeglectStatFloor = 25

	// Streak counts consecutive care actions no further apart than this.
	CareStreakWindow = 24 * time.Hour

	NeglectGracePeriod = 12 * time.Hour

	ActionFeedDeltaHunger = 30
	ActionFeedDeltaMood   = 5

	ActionPlayDeltaMood   = 25
	ActionPlayDeltaEnergy = -10

	ActionSleepDeltaEnergy = 45
	ActionSleepDeltaMood   = 5

	ActionSocializeDeltaMood   = 15
	ActionSocializeDeltaEnergy = -5

	ReputationStreakDivisor = 5
	ReputationGainCap       = 5

	// Evolution thresholds over accumulated care.
	JuvenileActionsRequired = 12
	AdultActionsRequired    = 48
	AdultStreakRequired     = 5
	ElderActionsRequired    = 150
	ElderStreakRequired     = 10
)

var ActionCooldowns = map[ActionKind]time.Duration{
	ActionFeed:      30 * time.Minute,
	ActionPlay:      45 * time.Minute,
	ActionSleep:     3 * time.Hour,
	ActionSocialize: time.Hour,
}

// StageMultiplierBps is the stage factor applied to staking power, in basis
// points.
func StageMultiplierBps(s Stage) int64 {
	switch s {
	case StageEgg:
		return 10000
	case StageJuvenile:
		return 11000
	case StageAdult:
		return 12500
	case StageElder:
		return 15000
	default:
		return 10000
	}
}

// FormCount is the size of the cosmetic form set per stage.
func FormCount(s Stage) int {
	switch s {
	case StageEgg:
		return 1
	case StageJuvenile:
		return 3
	case StageAdult:
		return 4
	case StageElder:
		return 2
	default:
		return 1
	}
}
