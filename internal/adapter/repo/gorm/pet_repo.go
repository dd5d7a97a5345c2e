package gormrepo

import (
	"context"
	"errors"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"

	"gorm.io/gorm"
)

type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) GetByID(ctx context.Context, petID string) (pet.Pet, error) {
	var m model.Pet
	if err := getDBFromCtx(ctx, r.db).Where("pet_id = ?", petID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Pet{}, ports.ErrNotFound
		}
		return pet.Pet{}, err
	}
	return petFromModel(m), nil
}

func (r PetRepo) GetByOwner(ctx context.Context, userID string) (pet.Pet, error) {
	var m model.Pet
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Pet{}, ports.ErrNotFound
		}
		return pet.Pet{}, err
	}
	return petFromModel(m), nil
}

func (r PetRepo) SaveWithVersion(ctx context.Context, p pet.Pet, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m := petToModel(p)
	if expectedVersion == 0 {
		return db.Create(&m).Error
	}

	res := db.Model(&model.Pet{}).
		Where("pet_id = ? AND version = ?", p.ID, expectedVersion).
		Updates(petUpdateMap(m))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func petFromModel(m model.Pet) pet.Pet {
	stamps := map[pet.ActionKind]time.Time{}
	setStamp := func(kind pet.ActionKind, t *time.Time) {
		if t != nil && !t.IsZero() {
			stamps[kind] = *t
		}
	}
	setStamp(pet.ActionFeed, m.LastFeedAt)
	setStamp(pet.ActionPlay, m.LastPlayAt)
	setStamp(pet.ActionSleep, m.LastSleepAt)
	setStamp(pet.ActionSocialize, m.LastSocializeAt)

	lastCare := time.Time{}
	if m.LastCareAt != nil {
		lastCare = *m.LastCareAt
	}
	return pet.Pet{
		ID:             m.PetID,
		OwnerID:        m.OwnerID,
		Tribe:          tribe.Tribe(m.Tribe),
		Stage:          pet.Stage(m.Stage),
		FormID:         int(m.FormID),
		EggSeed:        m.EggSeed,
		Stats:          pet.Stats{Hunger: int(m.Hunger), Mood: int(m.Mood), Energy: int(m.Energy)},
		DecayCarry:     pet.Stats{Hunger: int(m.DecayCarryHunger), Mood: int(m.DecayCarryMood), Energy: int(m.DecayCarryEnergy)},
		Reputation:     int(m.Reputation),
		IsNeglected:    m.IsNeglected,
		NeglectedSince: m.NeglectedSince,
		LowStatSince:   m.LowStatSince,
		CareStreak:     int(m.CareStreak),
		TotalActions:   int(m.TotalActions),
		LastActionAt:   stamps,
		LastCareAt:     lastCare,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
		Version:        m.Version,
	}
}

func petToModel(p pet.Pet) model.Pet {
	stamp := func(kind pet.ActionKind) *time.Time {
		if t, ok := p.LastActionAt[kind]; ok && !t.IsZero() {
			return &t
		}
		return nil
	}
	var lastCare *time.Time
	if !p.LastCareAt.IsZero() {
		lastCare = &p.LastCareAt
	}
	return model.Pet{
		PetID:            p.ID,
		OwnerID:          p.OwnerID,
		Tribe:            string(p.Tribe),
		Stage:            string(p.Stage),
		FormID:           int32(p.FormID),
		EggSeed:          p.EggSeed,
		Hunger:           int32(p.Stats.Hunger),
		Mood:             int32(p.Stats.Mood),
		Energy:           int32(p.Stats.Energy),
		DecayCarryHunger: int32(p.DecayCarry.Hunger),
		DecayCarryMood:   int32(p.DecayCarry.Mood),
		DecayCarryEnergy: int32(p.DecayCarry.Energy),
		Reputation:       int32(p.Reputation),
		IsNeglected:      p.IsNeglected,
		NeglectedSince:   p.NeglectedSince,
		LowStatSince:     p.LowStatSince,
		CareStreak:       int32(p.CareStreak),
		TotalActions:     int32(p.TotalActions),
		LastFeedAt:       stamp(pet.ActionFeed),
		LastPlayAt:       stamp(pet.ActionPlay),
		LastSleepAt:      stamp(pet.ActionSleep),
		LastSocializeAt:  stamp(pet.ActionSocialize),
		LastCareAt:       lastCare,
		CreatedAt:        p.CreatedAt,
		LastUpdatedAt:    p.LastUpdatedAt,
		Version:          p.Version,
	}
}

func petUpdateMap(m model.Pet) map[string]any {
	return map[string]any{
		"stage":              m.Stage,
		"form_id":            m.FormID,
		"hunger":             m.Hunger,
		"mood":               m.Mood,
		"energy":             m.Energy,
		"decay_carry_hunger": m.DecayCarryHunger,
		"decay_carry_mood":   m.DecayCarryMood,
		"decay_carry_energy": m.DecayCarryEnergy,
		"reputation":         m.Reputation,
		"is_neglected":       m.IsNeglected,
		"neglected_since":    m.NeglectedSince,
		"low_stat_since":     m.LowStatSince,
		"care_streak":        m.CareStreak,
		"total_actions":      m.TotalActions,
		"last_feed_at":       m.LastFeedAt,
		"last_play_at":       m.LastPlayAt,
		"last_sleep_at":      m.LastSleepAt,
		"last_socialize_at":  m.LastSocializeAt,
		"last_care_at":       m.LastCareAt,
		"last_updated_at":    m.LastUpdatedAt,
		"version":            m.Version,
	}
}
