package raid

import (
	"testing"
	"time"
)

func TestLifecycle(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := Raid{Status: StatusPending, StartsAt: start, EndsAt: start.Add(72 * time.Hour)}

	if got := r.Lifecycle(start.Add(-time.Hour)); got != StatusPending {
		t.Fatalf("expected pending before start, got %s", got)
	}
	if got := r.Lifecycle(start); got != StatusActive {
		t.Fatalf("expected active at start, got %s", got)
	}
	if got := r.Lifecycle(start.Add(73 * time.Hour)); got != StatusExpired {
		t.Fatalf("expected expired after end, got %s", got)
	}

	r.Status = StatusActive
	if got := r.Lifecycle(start.Add(72 * time.Hour)); got != StatusExpired {
		t.Fatalf("expected active raid to expire at end, got %s", got)
	}

	r.Status = StatusDefeated
	if got := r.Lifecycle(start.Add(100 * time.Hour)); got != StatusDefeated {
		t.Fatalf("expected defeated to stay terminal, got %s", got)
	}
}

func TestLifecycle_PendingPastEndExpires(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := Raid{Status: StatusPending, StartsAt: start, EndsAt: start.Add(time.Hour)}
	if got := r.Lifecycle(start.Add(2 * time.Hour)); got != StatusExpired {
		t.Fatalf("expected pending raid past end to expire, got %s", got)
	}
}
