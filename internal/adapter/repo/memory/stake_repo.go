package memory

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"
)

type StakeRepo struct {
	store *Store
}

func NewStakeRepo(store *Store) StakeRepo {
	return StakeRepo{store: store}
}

func (r StakeRepo) GetByPet(_ context.Context, petID string) (staking.Stake, error) {
	s, ok := r.store.stakes[petID]
	if !ok {
		return staking.Stake{}, ports.ErrNotFound
	}
	return s, nil
}

func (r StakeRepo) SaveWithVersion(_ context.Context, s staking.Stake, expectedVersion int64) error {
	current, ok := r.store.stakes[s.PetID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.stakes[s.PetID] = s
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.stakes[s.PetID] = s
	return nil
}

func (r StakeRepo) AppendHistory(_ context.Context, entry ports.StakeHistoryEntry) error {
	r.store.stakeHistory = append(r.store.stakeHistory, entry)
	return nil
}

func (r StakeRepo) AppendClaim(_ context.Context, claim ports.RewardClaimRecord) error {
	r.store.claims = append(r.store.claims, claim)
	return nil
}

func (r StakeRepo) SumPowerByTribe(_ context.Context, tb tribe.Tribe) (int64, int, error) {
	var total int64
	members := 0
	for petID, s := range r.store.stakes {
		if s.AmountStaked <= 0 {
			continue
		}
		p, ok := r.store.pets[petID]
		if !ok || p.Tribe != tb {
			continue
		}
		total += s.Power
		members++
	}
	return total, members, nil
}
