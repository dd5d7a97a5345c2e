package scoring

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/txretry"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidRequest = errors.New("invalid scoring request")
	ErrUnknownTribe   = errors.New("unknown tribe")
)

const DefaultStaleness = 5 * time.Minute

// UseCase aggregates the activity journal into weekly per-tribe scores.
// Recomputation is gated by a staleness threshold and deduplicated through
// singleflight so a burst of reads triggers at most one aggregation.
type UseCase struct {
	TxManager ports.TxManager
	Weeks     ports.WeekRepository
	Events    ports.ActivityEventRepository
	Guilds    ports.GuildRepository
	Stakes    ports.StakeRepository
	Now       func() time.Time

	Staleness time.Duration

	group singleflight.Group
}

// Scores returns the active week's score rows, recomputing them only when the
// cached computation has gone stale.
func (u *UseCase) Scores(ctx context.Context) (ScoresResponse, error) {
	now := u.now()
	w, err := u.ensureActiveWeek(ctx, now)
	if err != nil {
		return ScoresResponse{}, err
	}

	scores, computedAt, err := u.Weeks.GetScores(ctx, w.ID)
	if err == nil && now.Sub(computedAt) < u.staleness() {
		return ScoresResponse{Week: w, Scores: scores, ComputedAt: computedAt}, nil
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return ScoresResponse{}, err
	}

	result, err, _ := u.group.Do(w.ID, func() (any, error) {
		fresh, err := u.recompute(ctx, w, now)
		if err != nil {
			return nil, err
		}
		return ScoresResponse{Week: w, Scores: fresh, ComputedAt: now}, nil
	})
	if err != nil {
		return ScoresResponse{}, err
	}
	return result.(ScoresResponse), nil
}

// CloseWeek finalizes the active week: recomputes scores one last time, picks
// the strictly highest total as winner (a tie leaves the winner unset), and
// deactivates the week.
func (u *UseCase) CloseWeek(ctx context.Context) (CloseWeekResponse, error) {
	var out CloseWeekResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		now := u.now()
		w, err := u.ensureActiveWeek(txCtx, now)
		if err != nil {
			return err
		}
		scores, err := u.recompute(txCtx, w, now)
		if err != nil {
			return err
		}

		next := w
		next.IsActive = false
		winner, decided := week.Winner(scores)
		if decided {
			next.WinnerTribe = winner
		}
		next.Version = w.Version + 1
		if err := u.Weeks.SaveWithVersion(txCtx, next, w.Version); err != nil {
			return err
		}
		out = CloseWeekResponse{
			Week:        next,
			Scores:      scores,
			WinnerTribe: next.WinnerTribe,
			Tie:         !decided,
		}
		return nil
	})
	if err != nil {
		return CloseWeekResponse{}, err
	}
	return out, nil
}

// Season resolves a season winner from win counts across its closed weeks;
// an undecided top leaves the winner unset.
func (u *UseCase) Season(ctx context.Context, seasonID string) (SeasonResponse, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		seasonID = week.SeasonFor(u.now())
	}
	weeks, err := u.Weeks.ListBySeason(ctx, seasonID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return SeasonResponse{}, err
	}

	wins := map[tribe.Tribe]int{}
	for _, w := range weeks {
		if w.IsActive || w.WinnerTribe == "" {
			continue
		}
		wins[w.WinnerTribe]++
	}

	out := SeasonResponse{SeasonID: seasonID, Weeks: weeks, WinCounts: wins}
	best, bestCount, tied := tribe.Tribe(""), 0, false
	for _, tb := range tribe.All() {
		switch {
		case wins[tb] > bestCount:
			best, bestCount, tied = tb, wins[tb], false
		case wins[tb] == bestCount && wins[tb] > 0:
			tied = true
		}
	}
	if bestCount > 0 && !tied {
		out.WinnerTribe = best
	}
	return out, nil
}

// Standings returns the guild rows with power and member counts recomputed
// from active stakes.
func (u *UseCase) Standings(ctx context.Context) (StandingsResponse, error) {
	guilds := make([]tribe.Guild, 0, len(tribe.All()))
	for _, tb := range tribe.All() {
		g, err := u.Guilds.Get(ctx, tb)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				return StandingsResponse{}, err
			}
			g = tribe.Guild{Tribe: tb}
		}
		power, members, err := u.Stakes.SumPowerByTribe(ctx, tb)
		if err != nil {
			return StandingsResponse{}, err
		}
		g.TotalPower = power
		g.MemberCount = members
		if err := u.Guilds.SaveTotals(ctx, g); err != nil {
			return StandingsResponse{}, err
		}
		guilds = append(guilds, g)
	}
	return StandingsResponse{Guilds: guilds}, nil
}

// Contribute records a burn/contribution into a tribe treasury. The treasury
// only ever grows; the chain-side transfer is reconciled externally via the
// txRef.
func (u *UseCase) Contribute(ctx context.Context, req ContributeRequest) (StandingsResponse, error) {
	if strings.TrimSpace(req.UserID) == "" || req.Amount <= 0 {
		return StandingsResponse{}, ErrInvalidRequest
	}
	tb, ok := tribe.Parse(req.Tribe)
	if !ok {
		return StandingsResponse{}, ErrUnknownTribe
	}
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.Guilds.AddTreasury(txCtx, tb, req.Amount, req.TxRef)
	})
	if err != nil {
		return StandingsResponse{}, err
	}
	return u.Standings(ctx)
}

// ensureActiveWeek returns the active week covering now. Crossing a window
// boundary without an explicit close finalizes the expired week first, so at
// most one week is ever active.
func (u *UseCase) ensureActiveWeek(ctx context.Context, now time.Time) (week.Week, error) {
	for {
		w, err := u.Weeks.GetActive(ctx)
		if errors.Is(err, ports.ErrNotFound) {
			break
		}
		if err != nil {
			return week.Week{}, err
		}
		if w.Contains(now) {
			return w, nil
		}
		if now.Before(w.EndAt) {
			break
		}
		if err := u.finalizeWeek(ctx, w, now); err != nil {
			return week.Week{}, err
		}
	}

	start, end := week.WindowFor(now)
	return u.Weeks.EnsureActive(ctx, week.Week{
		ID:       uuid.NewString(),
		SeasonID: week.SeasonFor(start),
		StartAt:  start,
		EndAt:    end,
		IsActive: true,
		Version:  1,
	})
}

// finalizeWeek settles an expired window that never got an explicit close:
// one last recompute over its own range, winner pick, deactivate.
func (u *UseCase) finalizeWeek(ctx context.Context, w week.Week, now time.Time) error {
	scores, err := u.recompute(ctx, w, now)
	if err != nil {
		return err
	}
	next := w
	next.IsActive = false
	if winner, decided := week.Winner(scores); decided {
		next.WinnerTribe = winner
	}
	next.Version = w.Version + 1
	return u.Weeks.SaveWithVersion(ctx, next, w.Version)
}

// recompute aggregates the journal over the week's window and persists the
// rows idempotently: the same window always yields the same totals.
func (u *UseCase) recompute(ctx context.Context, w week.Week, now time.Time) ([]week.TribeScore, error) {
	agg, err := u.Events.AggregateByTribe(ctx, w.StartAt, w.EndAt)
	if err != nil {
		return nil, err
	}
	scores := week.ComputeScores(agg)
	if err := u.Weeks.SaveScores(ctx, w.ID, scores, now); err != nil {
		return nil, err
	}
	return scores, nil
}

func (u *UseCase) staleness() time.Duration {
	if u.Staleness > 0 {
		return u.Staleness
	}
	return DefaultStaleness
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
