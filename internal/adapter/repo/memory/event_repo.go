package memory

import (
	"context"
	"sort"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, evt ports.ActivityEvent) error {
	r.store.events = append(r.store.events, evt)
	return nil
}

func (r EventRepo) AggregateByTribe(_ context.Context, from, to time.Time) (map[tribe.Tribe]week.TribeActivity, error) {
	out := map[tribe.Tribe]week.TribeActivity{}
	activeDays := map[tribe.Tribe]map[string]struct{}{}
	for _, evt := range r.store.events {
		if evt.OccurredAt.Before(from) || !evt.OccurredAt.Before(to) {
			continue
		}
		agg := out[evt.Tribe]
		switch evt.Kind {
		case "raid_join", "raid_attack":
			agg.EventJoins++
		case string(pet.ActionSocialize):
			agg.Actions++
			agg.Social++
		default:
			agg.Actions++
		}
		if days := activeDays[evt.Tribe]; days == nil {
			activeDays[evt.Tribe] = map[string]struct{}{}
		}
		dayKey := evt.UserID + "|" + evt.OccurredAt.UTC().Format("2006-01-02")
		activeDays[evt.Tribe][dayKey] = struct{}{}
		out[evt.Tribe] = agg
	}
	for tb, days := range activeDays {
		agg := out[tb]
		agg.ActiveDays = int64(len(days))
		out[tb] = agg
	}
	return out, nil
}

func (r EventRepo) ListByPet(_ context.Context, petID string, limit int) ([]ports.ActivityEvent, error) {
	out := make([]ports.ActivityEvent, 0)
	for _, evt := range r.store.events {
		if evt.PetID == petID {
			out = append(out, evt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
