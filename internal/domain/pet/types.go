package pet

import (
	"time"

	"petverse/internal/domain/tribe"
)

// Stage is the one-directional evolution ladder.
type Stage string

const (
	StageEgg      Stage = "egg"
	StageJuvenile Stage = "juvenile"
	StageAdult    Stage = "adult"
	StageElder    Stage = "elder"
)

func Stages() []Stage {
	return []Stage{StageEgg, StageJuvenile, StageAdult, StageElder}
}

func (s Stage) Ordinal() int {
	switch s {
	case StageEgg:
		return 0
	case StageJuvenile:
		return 1
	case StageAdult:
		return 2
	case StageElder:
		return 3
	default:
		return 0
	}
}

func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageEgg:
		return StageJuvenile, true
	case StageJuvenile:
		return StageAdult, true
	case StageAdult:
		return StageElder, true
	default:
		return s, false
	}
}

type ActionKind string

const (
	ActionFeed      ActionKind = "feed"
	ActionPlay      ActionKind = "play"
	ActionSleep     ActionKind = "sleep"
	ActionSocialize ActionKind = "socialize"
)

func ActionKinds() []ActionKind {
	return []ActionKind{ActionFeed, ActionPlay, ActionSleep, ActionSocialize}
}

func ParseActionKind(s string) (ActionKind, bool) {
	switch ActionKind(s) {
	case ActionFeed, ActionPlay, ActionSleep, ActionSocialize:
		return ActionKind(s), true
	default:
		return "", false
	}
}

// Stats are the three decaying vitals, each clamped to [0,100].
type Stats struct {
	Hunger int `json:"hunger"`
	Mood   int `json:"mood"`
	Energy int `json:"energy"`
}

// Pet is the per-user creature aggregate. All mutation goes through the
// settle/apply functions in this package; repositories persist it with an
// optimistic version check.
type Pet struct {
	ID             string                    `json:"id"`
	OwnerID        string                    `json:"owner_id"`
	Tribe          tribe.Tribe               `json:"tribe"`
	Stage          Stage                     `json:"stage"`
	FormID         int                       `json:"form_id"`
	EggSeed        int64                     `json:"-"`
	Stats          Stats                     `json:"stats"`
	Reputation     int                       `json:"reputation"`
	IsNeglected    bool                      `json:"is_neglected"`
	NeglectedSince *time.Time                `json:"neglected_since,omitempty"`
	LowStatSince   *time.Time                `json:"-"`
	// DecayCarry holds, per stat, the elapsed seconds not yet settled into a
	// whole point of decay. Without it a pet settled more often than one
	// point's worth of seconds would never decay.
	DecayCarry     Stats                     `json:"-"`
	CareStreak     int                       `json:"care_streak"`
	TotalActions   int                       `json:"total_actions"`
	LastActionAt   map[ActionKind]time.Time  `json:"-"`
	LastCareAt     time.Time                 `json:"last_care_at"`
	CreatedAt      time.Time                 `json:"created_at"`
	LastUpdatedAt  time.Time                 `json:"last_updated_at"`
	Version        int64                     `json:"-"`
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (s Stats) Clamped() Stats {
	return Stats{
		Hunger: clampStat(s.Hunger),
		Mood:   clampStat(s.Mood),
		Energy: clampStat(s.Energy),
	}
}
