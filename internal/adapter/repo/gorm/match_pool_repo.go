package gormrepo

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"

	"gorm.io/gorm"
)

// MatchPoolRepo serves the matchmaking read model: one row per pet with an
// active stake, joined to its current power.
type MatchPoolRepo struct {
	db *gorm.DB
}

func NewMatchPoolRepo(db *gorm.DB) MatchPoolRepo {
	return MatchPoolRepo{db: db}
}

func (r MatchPoolRepo) ListCandidates(ctx context.Context) ([]ports.MatchCandidate, error) {
	rows := []struct {
		UserID      string
		PetID       string
		Stage       string
		Tribe       string
		Power       int64
		IsNeglected bool
	}{}
	err := getDBFromCtx(ctx, r.db).
		Table("pets").
		Select("pets.owner_id AS user_id, pets.pet_id, pets.stage, pets.tribe, stakes.power, pets.is_neglected").
		Joins("JOIN stakes ON stakes.pet_id = pets.pet_id").
		Where("stakes.amount_staked > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.MatchCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MatchCandidate{
			UserID:      row.UserID,
			PetID:       row.PetID,
			Stage:       pet.Stage(row.Stage),
			Tribe:       tribe.Tribe(row.Tribe),
			Power:       row.Power,
			IsNeglected: row.IsNeglected,
		})
	}
	return out, nil
}
