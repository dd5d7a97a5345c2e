package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("care", "OK")
	r.RecordSuccess("care", "ACTION_ON_COOLDOWN")
	r.RecordConflict("care")
	r.RecordFailure("stake")

	s := r.Snapshot()
	care := s.Ops["care"]
	if care.Total != 3 {
		t.Fatalf("expected care total 3, got %d", care.Total)
	}
	if care.Success != 2 {
		t.Fatalf("expected care success 2, got %d", care.Success)
	}
	if care.Conflict != 1 {
		t.Fatalf("expected care conflict 1, got %d", care.Conflict)
	}
	if care.ByResultCode["OK"] != 1 {
		t.Fatalf("expected one OK result")
	}
	if care.ByResultCode["ACTION_ON_COOLDOWN"] != 1 {
		t.Fatalf("expected one cooldown result")
	}

	stake := s.Ops["stake"]
	if stake.Failure != 1 || stake.Total != 1 {
		t.Fatalf("expected stake failure 1, got %+v", stake)
	}
}
