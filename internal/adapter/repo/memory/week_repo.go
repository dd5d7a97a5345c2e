package memory

import (
	"context"
	"sort"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/week"
)

type WeekRepo struct {
	store *Store
}

func NewWeekRepo(store *Store) WeekRepo {
	return WeekRepo{store: store}
}

func (r WeekRepo) EnsureActive(_ context.Context, w week.Week) (week.Week, error) {
	for _, existing := range r.store.weeks {
		if existing.StartAt.Equal(w.StartAt) && existing.EndAt.Equal(w.EndAt) {
			return existing, nil
		}
	}
	r.store.weeks[w.ID] = w
	return w, nil
}

func (r WeekRepo) GetActive(_ context.Context) (week.Week, error) {
	var out week.Week
	found := false
	for _, w := range r.store.weeks {
		if !w.IsActive {
			continue
		}
		if !found || w.StartAt.Before(out.StartAt) {
			out = w
			found = true
		}
	}
	if !found {
		return week.Week{}, ports.ErrNotFound
	}
	return out, nil
}

func (r WeekRepo) GetByID(_ context.Context, weekID string) (week.Week, error) {
	w, ok := r.store.weeks[weekID]
	if !ok {
		return week.Week{}, ports.ErrNotFound
	}
	return w, nil
}

func (r WeekRepo) SaveWithVersion(_ context.Context, w week.Week, expectedVersion int64) error {
	current, ok := r.store.weeks[w.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.weeks[w.ID] = w
	return nil
}

func (r WeekRepo) SaveScores(_ context.Context, weekID string, scores []week.TribeScore, computedAt time.Time) error {
	rows := make([]week.TribeScore, len(scores))
	copy(rows, scores)
	r.store.weekScores[weekID] = rows
	r.store.scoredAt[weekID] = computedAt
	return nil
}

func (r WeekRepo) GetScores(_ context.Context, weekID string) ([]week.TribeScore, time.Time, error) {
	rows, ok := r.store.weekScores[weekID]
	if !ok {
		return nil, time.Time{}, ports.ErrNotFound
	}
	out := make([]week.TribeScore, len(rows))
	copy(out, rows)
	return out, r.store.scoredAt[weekID], nil
}

func (r WeekRepo) ListBySeason(_ context.Context, seasonID string) ([]week.Week, error) {
	out := make([]week.Week, 0)
	for _, w := range r.store.weeks {
		if w.SeasonID == seasonID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}
