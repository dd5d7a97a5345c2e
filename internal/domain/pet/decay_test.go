package pet

import (
	"testing"
	"time"

	"petverse/internal/domain/tribe"
)

var t0 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestPet() Pet {
	return New("pet-1", "user-1", tribe.CHAD, 42, t0)
}

func TestSettle_NoElapsedIsIdentity(t *testing.T) {
	p := newTestPet()

	same := Settle(p, t0)
	if same.Stats != p.Stats {
		t.Fatalf("expected unchanged stats, got %+v", same.Stats)
	}
	earlier := Settle(p, t0.Add(-time.Hour))
	if earlier.Stats != p.Stats {
		t.Fatalf("expected unchanged stats for past instant, got %+v", earlier.Stats)
	}
}

func TestSettle_LinearDecay(t *testing.T) {
	p := newTestPet()

	out := Settle(p, t0.Add(12*time.Hour))
	if out.Stats.Hunger != NewPetHunger-24 {
		t.Fatalf("expected hunger %d, got %d", NewPetHunger-24, out.Stats.Hunger)
	}
	if out.Stats.Mood != NewPetMood-18 {
		t.Fatalf("expected mood %d, got %d", NewPetMood-18, out.Stats.Mood)
	}
	if out.Stats.Energy != NewPetEnergy-12 {
		t.Fatalf("expected energy %d, got %d", NewPetEnergy-12, out.Stats.Energy)
	}
	if !out.LastUpdatedAt.Equal(t0.Add(12 * time.Hour)) {
		t.Fatalf("expected last updated to advance")
	}
}

func TestSettle_StepwiseMatchesSingleSettle(t *testing.T) {
	p := newTestPet()
	end := t0.Add(8 * time.Hour)

	direct := Settle(p, end)

	stepped := p
	for i := 1; i <= 4; i++ {
		stepped = Settle(stepped, t0.Add(time.Duration(i)*2*time.Hour))
	}
	if stepped.Stats != direct.Stats {
		t.Fatalf("stepwise settle diverged: %+v vs %+v", stepped.Stats, direct.Stats)
	}
}

func TestSettle_FrequentSettleCarriesRemainder(t *testing.T) {
	p := newTestPet()
	end := t0.Add(2 * time.Hour)

	direct := Settle(p, end)

	// Mood needs 2400s per point; 30-minute settles must not truncate that
	// decay away.
	stepped := p
	for i := 1; i <= 4; i++ {
		stepped = Settle(stepped, t0.Add(time.Duration(i)*30*time.Minute))
	}
	if stepped.Stats != direct.Stats {
		t.Fatalf("frequent settle diverged: %+v vs %+v", stepped.Stats, direct.Stats)
	}
	if stepped.DecayCarry != direct.DecayCarry {
		t.Fatalf("carry diverged: %+v vs %+v", stepped.DecayCarry, direct.DecayCarry)
	}
	if stepped.Stats.Mood != NewPetMood-3 {
		t.Fatalf("expected mood %d after 2h, got %d", NewPetMood-3, stepped.Stats.Mood)
	}
}

func TestSettle_ClampsAtZero(t *testing.T) {
	p := newTestPet()

	out := Settle(p, t0.Add(30*24*time.Hour))
	if out.Stats.Hunger != 0 || out.Stats.Mood != 0 || out.Stats.Energy != 0 {
		t.Fatalf("expected all stats clamped to 0, got %+v", out.Stats)
	}
}

func TestSettle_NeglectAfterGracePeriod(t *testing.T) {
	p := newTestPet()
	p.Stats.Hunger = 30

	// Hunger crosses the floor after 3h; neglect starts 12h after that.
	early := Settle(p, t0.Add(10*time.Hour))
	if early.IsNeglected {
		t.Fatalf("expected pet not yet neglected")
	}
	if early.LowStatSince == nil || !early.LowStatSince.Equal(t0.Add(3*time.Hour)) {
		t.Fatalf("expected low stat since t0+3h, got %v", early.LowStatSince)
	}

	late := Settle(p, t0.Add(16*time.Hour))
	if !late.IsNeglected {
		t.Fatalf("expected pet neglected")
	}
	if late.NeglectedSince == nil || !late.NeglectedSince.Equal(t0.Add(15*time.Hour)) {
		t.Fatalf("expected neglected since t0+15h, got %v", late.NeglectedSince)
	}
}

func TestSettle_NeglectInstantIsDeterministic(t *testing.T) {
	p := newTestPet()
	p.Stats.Hunger = 30

	a := Settle(p, t0.Add(16*time.Hour))
	b := Settle(Settle(p, t0.Add(5*time.Hour)), t0.Add(16*time.Hour))
	if a.NeglectedSince == nil || b.NeglectedSince == nil {
		t.Fatalf("expected both paths neglected")
	}
	if !a.NeglectedSince.Equal(*b.NeglectedSince) {
		t.Fatalf("neglect instant depends on settle cadence: %v vs %v", a.NeglectedSince, b.NeglectedSince)
	}
}

func TestSettle_DecayNeverClearsNeglect(t *testing.T) {
	p := newTestPet()
	p.Stats.Hunger = 30

	out := Settle(p, t0.Add(16*time.Hour))
	if !out.IsNeglected {
		t.Fatalf("expected pet neglected")
	}
	later := Settle(out, t0.Add(48*time.Hour))
	if !later.IsNeglected {
		t.Fatalf("expected neglect to persist through further decay")
	}
	if !later.NeglectedSince.Equal(*out.NeglectedSince) {
		t.Fatalf("expected neglect instant preserved")
	}
}

func TestNeglectedFor(t *testing.T) {
	p := newTestPet()
	if p.NeglectedFor(t0.Add(time.Hour)) != 0 {
		t.Fatalf("expected zero for healthy pet")
	}

	since := t0.Add(15 * time.Hour)
	p.IsNeglected = true
	p.NeglectedSince = &since
	if got := p.NeglectedFor(t0.Add(20 * time.Hour)); got != 5*time.Hour {
		t.Fatalf("expected 5h neglected, got %v", got)
	}
}
