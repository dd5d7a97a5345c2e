package memory

import (
	"context"
	"sort"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/raid"
)

type RaidRepo struct {
	store *Store
}

func NewRaidRepo(store *Store) RaidRepo {
	return RaidRepo{store: store}
}

func (r RaidRepo) GetCurrent(_ context.Context, now time.Time) (raid.Raid, error) {
	for _, rd := range r.store.raids {
		if !now.Before(rd.StartsAt) && now.Before(rd.EndsAt) {
			return rd, nil
		}
	}
	return raid.Raid{}, ports.ErrNotFound
}

func (r RaidRepo) GetByID(_ context.Context, raidID string) (raid.Raid, error) {
	rd, ok := r.store.raids[raidID]
	if !ok {
		return raid.Raid{}, ports.ErrNotFound
	}
	return rd, nil
}

func (r RaidRepo) Create(_ context.Context, rd raid.Raid) error {
	for _, existing := range r.store.raids {
		if rd.StartsAt.Before(existing.EndsAt) && existing.StartsAt.Before(rd.EndsAt) {
			return ports.ErrConflict
		}
	}
	r.store.raids[rd.ID] = rd
	return nil
}

func (r RaidRepo) SaveWithVersion(_ context.Context, rd raid.Raid, expectedVersion int64) error {
	current, ok := r.store.raids[rd.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.raids[rd.ID] = rd
	return nil
}

func (r RaidRepo) GetParticipant(_ context.Context, raidID, userID string) (raid.Participant, error) {
	p, ok := r.store.participants[participantKey(raidID, userID)]
	if !ok {
		return raid.Participant{}, ports.ErrNotFound
	}
	return p, nil
}

func (r RaidRepo) SaveParticipant(_ context.Context, p raid.Participant) error {
	r.store.participants[participantKey(p.RaidID, p.UserID)] = p
	return nil
}

func (r RaidRepo) ListParticipants(_ context.Context, raidID string) ([]raid.Participant, error) {
	out := make([]raid.Participant, 0)
	for _, p := range r.store.participants {
		if p.RaidID == raidID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalDamage > out[j].TotalDamage })
	return out, nil
}
