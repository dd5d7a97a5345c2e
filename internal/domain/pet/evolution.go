package pet

import (
	"hash/fnv"

	"petverse/internal/domain/tribe"
)

// NextStageReady reports whether accumulated care satisfies the next stage's
// thresholds. At the terminal stage it always reports false.
func NextStageReady(p Pet) (Stage, bool) {
	next, ok := p.Stage.Next()
	if !ok {
		return p.Stage, false
	}
	switch next {
	case StageJuvenile:
		ok = p.TotalActions >= JuvenileActionsRequired
	case StageAdult:
		ok = p.TotalActions >= AdultActionsRequired && p.CareStreak >= AdultStreakRequired
	case StageElder:
		ok = p.TotalActions >= ElderActionsRequired && p.CareStreak >= ElderStreakRequired
	default:
		ok = false
	}
	return next, ok
}

// Evolve advances at most one stage per call and reselects the cosmetic form.
// A pet at the terminal stage is left untouched.
func Evolve(p *Pet) bool {
	next, ok := NextStageReady(*p)
	if !ok {
		return false
	}
	p.Stage = next
	p.FormID = FormFor(p.Tribe, next, p.EggSeed)
	return true
}

// FormFor selects the cosmetic form for a stage. Pure function of
// (tribe, stage, egg seed), so the same pet always evolves into the same line.
func FormFor(tb tribe.Tribe, st Stage, seed int64) int {
	h := fnv.New64a()
	h.Write([]byte(tb))
	h.Write([]byte(st))
	mixed := h.Sum64() ^ uint64(seed)
	return int(mixed % uint64(FormCount(st)))
}
