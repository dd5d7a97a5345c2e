package scoring

import (
	"context"
	"testing"
	"time"

	"petverse/internal/adapter/repo/memory"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"

	"github.com/google/uuid"
)

var t0 = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type scoreEnv struct {
	store *memory.Store
	uc    *UseCase
	now   time.Time
}

func newScoreEnv() *scoreEnv {
	store := memory.NewStore()
	env := &scoreEnv{store: store, now: t0}
	env.uc = &UseCase{
		TxManager: memory.NewTxManager(store),
		Weeks:     memory.NewWeekRepo(store),
		Events:    memory.NewEventRepo(store),
		Guilds:    memory.NewGuildRepo(store),
		Stakes:    memory.NewStakeRepo(store),
		Now:       func() time.Time { return env.now },
	}
	return env
}

func (e *scoreEnv) appendEvent(userID string, tb tribe.Tribe, kind string, at time.Time) {
	err := memory.NewEventRepo(e.store).Append(context.Background(), ports.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		PetID:      "pet-" + userID,
		Tribe:      tb,
		Kind:       kind,
		OccurredAt: at,
	})
	if err != nil {
		panic(err)
	}
}

func scoreFor(rows []week.TribeScore, tb tribe.Tribe) week.TribeScore {
	for _, s := range rows {
		if s.Tribe == tb {
			return s
		}
	}
	return week.TribeScore{}
}

func TestUseCase_ScoresComputesFromJournal(t *testing.T) {
	env := newScoreEnv()
	env.appendEvent("user-1", tribe.CHAD, "feed", t0)
	env.appendEvent("user-1", tribe.CHAD, "feed", t0.Add(time.Minute))
	env.appendEvent("user-1", tribe.CHAD, "socialize", t0.Add(2*time.Minute))

	resp, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("scores error: %v", err)
	}
	if !resp.Week.IsActive || !resp.Week.Contains(t0) {
		t.Fatalf("expected active week covering now, got %+v", resp.Week)
	}
	if len(resp.Scores) != len(tribe.All()) {
		t.Fatalf("expected a row per tribe, got %d", len(resp.Scores))
	}

	chad := scoreFor(resp.Scores, tribe.CHAD)
	// Three actions, one social, one distinct active day.
	if chad.ScoreActivity != 3*week.WeightActivity {
		t.Fatalf("unexpected activity score %d", chad.ScoreActivity)
	}
	if chad.ScoreSocial != 1*week.WeightSocial {
		t.Fatalf("unexpected social score %d", chad.ScoreSocial)
	}
	if chad.ScoreConsistency != 1*week.WeightConsistency {
		t.Fatalf("unexpected consistency score %d", chad.ScoreConsistency)
	}
	if chad.Total != 3*week.WeightActivity+1*week.WeightSocial+1*week.WeightConsistency {
		t.Fatalf("unexpected total %d", chad.Total)
	}
	if idle := scoreFor(resp.Scores, tribe.FOFO); idle.Total != 0 {
		t.Fatalf("expected idle tribe to score zero, got %+v", idle)
	}
}

func TestUseCase_ScoresCachedUntilStale(t *testing.T) {
	env := newScoreEnv()
	env.appendEvent("user-1", tribe.CHAD, "feed", t0)

	first, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("first scores error: %v", err)
	}

	// New journal rows within the staleness window do not trigger a recompute.
	env.appendEvent("user-1", tribe.CHAD, "feed", t0.Add(time.Minute))
	env.now = t0.Add(2 * time.Minute)
	cached, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("cached scores error: %v", err)
	}
	if !cached.ComputedAt.Equal(first.ComputedAt) {
		t.Fatalf("expected cached computation, got recompute at %v", cached.ComputedAt)
	}
	if scoreFor(cached.Scores, tribe.CHAD).Total != scoreFor(first.Scores, tribe.CHAD).Total {
		t.Fatalf("expected cached totals unchanged")
	}

	env.now = t0.Add(DefaultStaleness)
	fresh, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("fresh scores error: %v", err)
	}
	if !fresh.ComputedAt.Equal(env.now) {
		t.Fatalf("expected recompute after staleness, got %v", fresh.ComputedAt)
	}
	if got := scoreFor(fresh.Scores, tribe.CHAD).ScoreActivity; got != 2*week.WeightActivity {
		t.Fatalf("expected second action counted after recompute, got %d", got)
	}
}

func TestUseCase_RolloverFinalizesExpiredWeek(t *testing.T) {
	env := newScoreEnv()
	env.appendEvent("user-1", tribe.CHAD, "feed", t0)

	first, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("first scores error: %v", err)
	}

	// Crossing the week boundary without an explicit close must retire the
	// old window before opening the next one.
	env.now = t0.AddDate(0, 0, 7)
	second, err := env.uc.Scores(context.Background())
	if err != nil {
		t.Fatalf("second scores error: %v", err)
	}
	if second.Week.ID == first.Week.ID {
		t.Fatalf("expected a new week after the boundary")
	}
	if !second.Week.Contains(env.now) {
		t.Fatalf("expected new week to cover now, got %+v", second.Week)
	}

	weeks, err := memory.NewWeekRepo(env.store).ListBySeason(context.Background(), "2026-Q3")
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected two weeks in season, got %d", len(weeks))
	}
	active := 0
	var closed week.Week
	for _, w := range weeks {
		if w.IsActive {
			active++
		} else {
			closed = w
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active week, got %d", active)
	}
	if closed.ID != first.Week.ID {
		t.Fatalf("expected the first week retired, got %+v", closed)
	}
	if closed.WinnerTribe != tribe.CHAD {
		t.Fatalf("expected winner recorded on auto-close, got %q", closed.WinnerTribe)
	}
}

func TestUseCase_CloseWeekPicksWinner(t *testing.T) {
	env := newScoreEnv()
	env.appendEvent("user-1", tribe.CHAD, "feed", t0)
	env.appendEvent("user-2", tribe.DEGEN, "feed", t0)
	env.appendEvent("user-2", tribe.DEGEN, "feed", t0.Add(time.Minute))

	resp, err := env.uc.CloseWeek(context.Background())
	if err != nil {
		t.Fatalf("close week error: %v", err)
	}
	if resp.Tie {
		t.Fatalf("expected a decided winner")
	}
	if resp.WinnerTribe != tribe.DEGEN {
		t.Fatalf("expected DEGEN to win, got %s", resp.WinnerTribe)
	}
	if resp.Week.IsActive {
		t.Fatalf("expected week deactivated")
	}
	if resp.Week.WinnerTribe != tribe.DEGEN {
		t.Fatalf("expected winner recorded on the week, got %s", resp.Week.WinnerTribe)
	}
}

func TestUseCase_CloseWeekTieLeavesNoWinner(t *testing.T) {
	env := newScoreEnv()
	env.appendEvent("user-1", tribe.CHAD, "feed", t0)
	env.appendEvent("user-2", tribe.DEGEN, "feed", t0)

	resp, err := env.uc.CloseWeek(context.Background())
	if err != nil {
		t.Fatalf("close week error: %v", err)
	}
	if !resp.Tie {
		t.Fatalf("expected a tie")
	}
	if resp.WinnerTribe != "" {
		t.Fatalf("expected no winner on tie, got %s", resp.WinnerTribe)
	}
}

func TestUseCase_SeasonCountsWeekWins(t *testing.T) {
	env := newScoreEnv()
	weeks := memory.NewWeekRepo(env.store)
	seed := func(startOffsetDays int, winner tribe.Tribe, active bool) {
		start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, startOffsetDays)
		_, err := weeks.EnsureActive(context.Background(), week.Week{
			ID:          uuid.NewString(),
			SeasonID:    "2026-Q3",
			StartAt:     start,
			EndAt:       start.AddDate(0, 0, 7),
			IsActive:    active,
			WinnerTribe: winner,
			Version:     1,
		})
		if err != nil {
			t.Fatalf("seed week: %v", err)
		}
	}
	seed(0, tribe.CHAD, false)
	seed(7, tribe.CHAD, false)
	seed(14, tribe.DEGEN, false)
	seed(21, tribe.DEGEN, true) // still active, must not count

	resp, err := env.uc.Season(context.Background(), "2026-Q3")
	if err != nil {
		t.Fatalf("season error: %v", err)
	}
	if resp.WinnerTribe != tribe.CHAD {
		t.Fatalf("expected CHAD season winner, got %s", resp.WinnerTribe)
	}
	if resp.WinCounts[tribe.CHAD] != 2 || resp.WinCounts[tribe.DEGEN] != 1 {
		t.Fatalf("unexpected win counts %+v", resp.WinCounts)
	}
	if len(resp.Weeks) != 4 {
		t.Fatalf("expected all season weeks listed, got %d", len(resp.Weeks))
	}
}

func TestUseCase_SeasonTieLeavesNoWinner(t *testing.T) {
	env := newScoreEnv()
	weeks := memory.NewWeekRepo(env.store)
	for i, winner := range []tribe.Tribe{tribe.CHAD, tribe.DEGEN} {
		start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
		if _, err := weeks.EnsureActive(context.Background(), week.Week{
			ID:          uuid.NewString(),
			SeasonID:    "2026-Q3",
			StartAt:     start,
			EndAt:       start.AddDate(0, 0, 7),
			WinnerTribe: winner,
			Version:     1,
		}); err != nil {
			t.Fatalf("seed week: %v", err)
		}
	}

	resp, err := env.uc.Season(context.Background(), "2026-Q3")
	if err != nil {
		t.Fatalf("season error: %v", err)
	}
	if resp.WinnerTribe != "" {
		t.Fatalf("expected no season winner on tie, got %s", resp.WinnerTribe)
	}
}

func TestUseCase_ContributeGrowsTreasury(t *testing.T) {
	env := newScoreEnv()

	resp, err := env.uc.Contribute(context.Background(), ContributeRequest{
		UserID: "user-1",
		Tribe:  "cringe",
		Amount: 5_000,
		TxRef:  "0xabc",
	})
	if err != nil {
		t.Fatalf("contribute error: %v", err)
	}
	var degen tribe.Guild
	for _, g := range resp.Guilds {
		if g.Tribe == tribe.DEGEN {
			degen = g
		}
	}
	if degen.Treasury != 5_000 {
		t.Fatalf("expected treasury 5000, got %d", degen.Treasury)
	}

	again, err := env.uc.Contribute(context.Background(), ContributeRequest{UserID: "user-1", Tribe: "DEGEN", Amount: 1_000})
	if err != nil {
		t.Fatalf("second contribute error: %v", err)
	}
	for _, g := range again.Guilds {
		if g.Tribe == tribe.DEGEN && g.Treasury != 6_000 {
			t.Fatalf("expected treasury to accumulate, got %d", g.Treasury)
		}
	}
}

func TestUseCase_ContributeValidation(t *testing.T) {
	env := newScoreEnv()
	if _, err := env.uc.Contribute(context.Background(), ContributeRequest{UserID: "user-1", Tribe: "WAGMI", Amount: 100}); err != ErrUnknownTribe {
		t.Fatalf("expected unknown tribe, got %v", err)
	}
	if _, err := env.uc.Contribute(context.Background(), ContributeRequest{UserID: "user-1", Tribe: "CHAD", Amount: 0}); err != ErrInvalidRequest {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestUseCase_StandingsRecomputesFromStakes(t *testing.T) {
	env := newScoreEnv()
	seedStaked := func(userID, petID string, tb tribe.Tribe, amount int64) {
		p := pet.New(petID, userID, tb, 7, t0)
		env.store.SeedPet(p)
		env.store.SeedStake(staking.Stake{
			ID:           "stake-" + petID,
			UserID:       userID,
			PetID:        petID,
			AmountStaked: amount,
			Power:        staking.PowerFor(amount, p.Stage, p.Tribe),
			StakedAt:     t0,
			Version:      1,
		})
	}
	seedStaked("user-1", "pet-1", tribe.CHAD, 10_000)
	seedStaked("user-2", "pet-2", tribe.CHAD, 20_000)
	seedStaked("user-3", "pet-3", tribe.FOFO, 5_000)

	resp, err := env.uc.Standings(context.Background())
	if err != nil {
		t.Fatalf("standings error: %v", err)
	}
	if len(resp.Guilds) != len(tribe.All()) {
		t.Fatalf("expected a guild row per tribe, got %d", len(resp.Guilds))
	}
	for _, g := range resp.Guilds {
		switch g.Tribe {
		case tribe.CHAD:
			// Egg CHAD power: amount * 11000bps.
			if g.TotalPower != 33_000 || g.MemberCount != 2 {
				t.Fatalf("unexpected CHAD guild %+v", g)
			}
		case tribe.FOFO:
			if g.TotalPower != 5_000 || g.MemberCount != 1 {
				t.Fatalf("unexpected FOFO guild %+v", g)
			}
		default:
			if g.TotalPower != 0 || g.MemberCount != 0 {
				t.Fatalf("expected empty guild for %s, got %+v", g.Tribe, g)
			}
		}
	}
}
