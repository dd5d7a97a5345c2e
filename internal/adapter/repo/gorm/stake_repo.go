package gormrepo

import (
	"context"
	"errors"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"

	"gorm.io/gorm"
)

type StakeRepo struct {
	db *gorm.DB
}

func NewStakeRepo(db *gorm.DB) StakeRepo {
	return StakeRepo{db: db}
}

func (r StakeRepo) GetByPet(ctx context.Context, petID string) (staking.Stake, error) {
	var m model.Stake
	if err := getDBFromCtx(ctx, r.db).Where("pet_id = ?", petID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return staking.Stake{}, ports.ErrNotFound
		}
		return staking.Stake{}, err
	}
	return stakeFromModel(m), nil
}

func (r StakeRepo) SaveWithVersion(ctx context.Context, s staking.Stake, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m := stakeToModel(s)
	if expectedVersion == 0 {
		return db.Create(&m).Error
	}

	res := db.Model(&model.Stake{}).
		Where("stake_id = ? AND version = ?", s.ID, expectedVersion).
		Updates(map[string]any{
			"amount_staked": m.AmountStaked,
			"power":         m.Power,
			"last_claim_at": m.LastClaimAt,
			"version":       m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r StakeRepo) AppendHistory(ctx context.Context, entry ports.StakeHistoryEntry) error {
	return getDBFromCtx(ctx, r.db).Create(&model.StakeHistory{
		ID:         entry.ID,
		UserID:     entry.UserID,
		PetID:      entry.PetID,
		Kind:       entry.Kind,
		Amount:     entry.Amount,
		TxRef:      entry.TxRef,
		OccurredAt: entry.OccurredAt,
	}).Error
}

func (r StakeRepo) AppendClaim(ctx context.Context, claim ports.RewardClaimRecord) error {
	return getDBFromCtx(ctx, r.db).Create(&model.RewardClaim{
		ID:          claim.ID,
		UserID:      claim.UserID,
		PetID:       claim.PetID,
		Amount:      claim.Amount,
		AccruedFrom: claim.AccruedFrom,
		AccruedTo:   claim.AccruedTo,
		TxRef:       claim.TxRef,
		ClaimedAt:   claim.ClaimedAt,
	}).Error
}

func (r StakeRepo) SumPowerByTribe(ctx context.Context, tb tribe.Tribe) (int64, int, error) {
	var row struct {
		Total   int64
		Members int64
	}
	err := getDBFromCtx(ctx, r.db).
		Table("stakes").
		Select("COALESCE(SUM(stakes.power), 0) AS total, COUNT(*) AS members").
		Joins("JOIN pets ON pets.pet_id = stakes.pet_id").
		Where("pets.tribe = ? AND stakes.amount_staked > 0", string(tb)).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, int(row.Members), nil
}

func stakeFromModel(m model.Stake) staking.Stake {
	lastClaim := time.Time{}
	if m.LastClaimAt != nil {
		lastClaim = *m.LastClaimAt
	}
	return staking.Stake{
		ID:           m.StakeID,
		UserID:       m.UserID,
		PetID:        m.PetID,
		AmountStaked: m.AmountStaked,
		Power:        m.Power,
		StakedAt:     m.StakedAt,
		LastClaimAt:  lastClaim,
		Version:      m.Version,
	}
}

func stakeToModel(s staking.Stake) model.Stake {
	var lastClaim *time.Time
	if !s.LastClaimAt.IsZero() {
		lastClaim = &s.LastClaimAt
	}
	return model.Stake{
		StakeID:      s.ID,
		UserID:       s.UserID,
		PetID:        s.PetID,
		AmountStaked: s.AmountStaked,
		Power:        s.Power,
		StakedAt:     s.StakedAt,
		LastClaimAt:  lastClaim,
		Version:      s.Version,
	}
}
