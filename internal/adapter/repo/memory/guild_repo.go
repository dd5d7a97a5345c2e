package memory

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/tribe"
)

type GuildRepo struct {
	store *Store
}

func NewGuildRepo(store *Store) GuildRepo {
	return GuildRepo{store: store}
}

func (r GuildRepo) Get(_ context.Context, tb tribe.Tribe) (tribe.Guild, error) {
	g, ok := r.store.guilds[tb]
	if !ok {
		return tribe.Guild{}, ports.ErrNotFound
	}
	return g, nil
}

func (r GuildRepo) AddTreasury(_ context.Context, tb tribe.Tribe, amount int64, _ string) error {
	g, ok := r.store.guilds[tb]
	if !ok {
		g = tribe.Guild{Tribe: tb}
	}
	g.Treasury += amount
	g.Version++
	r.store.guilds[tb] = g
	return nil
}

func (r GuildRepo) SaveTotals(_ context.Context, g tribe.Guild) error {
	current, ok := r.store.guilds[g.Tribe]
	if ok {
		g.Treasury = current.Treasury
	}
	r.store.guilds[g.Tribe] = g
	return nil
}
