package memory

import (
	"context"

	"petverse/internal/app/ports"
)

type MatchPoolRepo struct {
	store *Store
}

func NewMatchPoolRepo(store *Store) MatchPoolRepo {
	return MatchPoolRepo{store: store}
}

// ListCandidates joins active stakes with their pets into the matchmaking
// read model. Neglect reflects the stored flag; matchmaking filters on it
// without forcing a settlement write.
func (r MatchPoolRepo) ListCandidates(_ context.Context) ([]ports.MatchCandidate, error) {
	out := make([]ports.MatchCandidate, 0, len(r.store.stakes))
	for petID, s := range r.store.stakes {
		if s.AmountStaked <= 0 {
			continue
		}
		p, ok := r.store.pets[petID]
		if !ok {
			continue
		}
		out = append(out, ports.MatchCandidate{
			UserID:      p.OwnerID,
			PetID:       p.ID,
			Stage:       p.Stage,
			Tribe:       p.Tribe,
			Power:       s.Power,
			IsNeglected: p.IsNeglected,
		})
	}
	return out, nil
}
