package week

import (
	"testing"
	"time"
)

func TestWindowFor_MondayAligned(t *testing.T) {
	// 2026-09-01 is a Tuesday; the window starts the prior Monday.
	start, end := WindowFor(time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC))
	if !start.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window start %v", start)
	}
	if !end.Equal(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window end %v", end)
	}
}

func TestWindowFor_MondayStaysPut(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	start, _ := WindowFor(monday)
	if !start.Equal(monday) {
		t.Fatalf("expected monday to anchor its own window, got %v", start)
	}
}

func TestWindowFor_SameWindowAllWeek(t *testing.T) {
	ref, _ := WindowFor(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	for d := 0; d < 7; d++ {
		start, _ := WindowFor(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC).AddDate(0, 0, d))
		if !start.Equal(ref) {
			t.Fatalf("day %d mapped to window %v, want %v", d, start, ref)
		}
	}
}

func TestSeasonFor(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "2026-Q1"},
		{time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), "2026-Q1"},
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "2026-Q2"},
		{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "2026-Q3"},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "2026-Q4"},
	}
	for _, c := range cases {
		if got := SeasonFor(c.at); got != c.want {
			t.Fatalf("SeasonFor(%v) = %s, want %s", c.at, got, c.want)
		}
	}
}

func TestContains(t *testing.T) {
	start, end := WindowFor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	w := Week{StartAt: start, EndAt: end}
	if !w.Contains(start) {
		t.Fatalf("expected start inclusive")
	}
	if w.Contains(end) {
		t.Fatalf("expected end exclusive")
	}
	if w.Contains(start.Add(-time.Second)) {
		t.Fatalf("expected instant before start excluded")
	}
}
