package week

import (
	"testing"

	"petverse/internal/domain/tribe"
)

func TestComputeScores_WeightedTotals(t *testing.T) {
	agg := map[tribe.Tribe]TribeActivity{
		tribe.CHAD: {Actions: 10, Social: 4, ActiveDays: 3, EventJoins: 2},
	}

	scores := ComputeScores(agg)
	if len(scores) != len(tribe.All()) {
		t.Fatalf("expected one row per tribe, got %d", len(scores))
	}

	var chad TribeScore
	for _, s := range scores {
		if s.Tribe == tribe.CHAD {
			chad = s
		} else if s.Total != 0 {
			t.Fatalf("expected zero score for idle tribe %s, got %d", s.Tribe, s.Total)
		}
	}
	if chad.ScoreActivity != 30 || chad.ScoreSocial != 8 || chad.ScoreConsistency != 12 || chad.ScoreEvent != 10 {
		t.Fatalf("unexpected sub-scores %+v", chad)
	}
	if chad.Total != 60 {
		t.Fatalf("expected total 60, got %d", chad.Total)
	}
}

func TestComputeScores_Deterministic(t *testing.T) {
	agg := map[tribe.Tribe]TribeActivity{
		tribe.FOFO:  {Actions: 7, ActiveDays: 2},
		tribe.DEGEN: {Actions: 3, Social: 3, EventJoins: 1},
	}

	a := ComputeScores(agg)
	b := ComputeScores(agg)
	if len(a) != len(b) {
		t.Fatalf("expected stable row count")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestWinner_StrictMax(t *testing.T) {
	scores := []TribeScore{
		{Tribe: tribe.FOFO, Total: 10},
		{Tribe: tribe.CAOS, Total: 25},
		{Tribe: tribe.CHAD, Total: 7},
	}
	winner, ok := Winner(scores)
	if !ok || winner != tribe.CAOS {
		t.Fatalf("expected CAOS to win, got %s ok=%v", winner, ok)
	}
}

func TestWinner_TieHasNoWinner(t *testing.T) {
	scores := []TribeScore{
		{Tribe: tribe.FOFO, Total: 25},
		{Tribe: tribe.CAOS, Total: 25},
		{Tribe: tribe.CHAD, Total: 7},
	}
	if _, ok := Winner(scores); ok {
		t.Fatalf("expected no winner on a top tie")
	}
}

func TestWinner_AllZeroHasNoWinner(t *testing.T) {
	scores := ComputeScores(map[tribe.Tribe]TribeActivity{})
	if _, ok := Winner(scores); ok {
		t.Fatalf("expected no winner with no activity")
	}
}

func TestWinner_Empty(t *testing.T) {
	if _, ok := Winner(nil); ok {
		t.Fatalf("expected no winner for empty scores")
	}
}
