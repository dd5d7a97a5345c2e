package memory

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

type PetRepo struct {
	store *Store
}

func NewPetRepo(store *Store) PetRepo {
	return PetRepo{store: store}
}

func (r PetRepo) GetByID(_ context.Context, petID string) (pet.Pet, error) {
	p, ok := r.store.pets[petID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PetRepo) GetByOwner(_ context.Context, userID string) (pet.Pet, error) {
	petID, ok := r.store.petsByOwner[userID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return r.store.pets[petID], nil
}

func (r PetRepo) SaveWithVersion(_ context.Context, p pet.Pet, expectedVersion int64) error {
	current, ok := r.store.pets[p.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.pets[p.ID] = p
		r.store.petsByOwner[p.OwnerID] = p.ID
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.pets[p.ID] = p
	r.store.petsByOwner[p.OwnerID] = p.ID
	return nil
}
