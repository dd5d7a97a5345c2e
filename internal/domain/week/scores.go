package week

import (
	"sort"

	"petverse/internal/domain/tribe"
)

// Fixed sub-score weights. Totals are a weighted sum of four independently
// computed volumes over the window.
const (
	WeightActivity    = 3
	WeightSocial      = 2
	WeightConsistency = 4
	WeightEvent       = 5
)

// TribeActivity is the raw aggregate the scoring engine consumes: counts per
// tribe over a window, derived from the activity event journal.
type TribeActivity struct {
	Actions    int64
	Social     int64
	ActiveDays int64
	EventJoins int64
}

type TribeScore struct {
	Tribe            tribe.Tribe `json:"tribe"`
	ScoreActivity    int64       `json:"score_activity"`
	ScoreSocial      int64       `json:"score_social"`
	ScoreConsistency int64       `json:"score_consistency"`
	ScoreEvent       int64       `json:"score_event"`
	Total            int64       `json:"total"`
}

// ComputeScores turns per-tribe activity aggregates into score rows, one per
// tribe (tribes with no activity score zero). Deterministic: same aggregates,
// same rows, in fixed tribe order.
func ComputeScores(agg map[tribe.Tribe]TribeActivity) []TribeScore {
	out := make([]TribeScore, 0, len(tribe.All()))
	for _, tb := range tribe.All() {
		a := agg[tb]
		s := TribeScore{
			Tribe:            tb,
			ScoreActivity:    a.Actions * WeightActivity,
			ScoreSocial:      a.Social * WeightSocial,
			ScoreConsistency: a.ActiveDays * WeightConsistency,
			ScoreEvent:       a.EventJoins * WeightEvent,
		}
		s.Total = s.ScoreActivity + s.ScoreSocial + s.ScoreConsistency + s.ScoreEvent
		out = append(out, s)
	}
	return out
}

// Winner picks the tribe with the strictly highest total. A tie for the top
// leaves no winner; that is the tie policy, not a fallback.
func Winner(scores []TribeScore) (tribe.Tribe, bool) {
	if len(scores) == 0 {
		return "", false
	}
	sorted := make([]TribeScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Total > sorted[j].Total })
	if len(sorted) > 1 && sorted[0].Total == sorted[1].Total {
		return "", false
	}
	if sorted[0].Total <= 0 {
		return "", false
	}
	return sorted[0].Tribe, true
}
