package gormrepo

import (
	"context"
	"errors"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/tribe"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildRepo struct {
	db *gorm.DB
}

func NewGuildRepo(db *gorm.DB) GuildRepo {
	return GuildRepo{db: db}
}

func (r GuildRepo) Get(ctx context.Context, tb tribe.Tribe) (tribe.Guild, error) {
	var m model.Guild
	if err := getDBFromCtx(ctx, r.db).Where("tribe = ?", string(tb)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tribe.Guild{}, ports.ErrNotFound
		}
		return tribe.Guild{}, err
	}
	return guildFromModel(m), nil
}

// AddTreasury increments the treasury in place; the row is created on first
// contribution.
func (r GuildRepo) AddTreasury(ctx context.Context, tb tribe.Tribe, amount int64, _ string) error {
	db := getDBFromCtx(ctx, r.db)
	m := model.Guild{Tribe: string(tb), Version: 1}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tribe"}},
		DoNothing: true,
	}).Create(&m).Error; err != nil {
		return err
	}
	return db.Model(&model.Guild{}).
		Where("tribe = ?", string(tb)).
		Update("treasury", gorm.Expr("treasury + ?", amount)).Error
}

// SaveTotals refreshes power and member counts without touching the treasury.
func (r GuildRepo) SaveTotals(ctx context.Context, g tribe.Guild) error {
	db := getDBFromCtx(ctx, r.db)
	m := model.Guild{Tribe: string(g.Tribe), Version: 1}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tribe"}},
		DoNothing: true,
	}).Create(&m).Error; err != nil {
		return err
	}
	return db.Model(&model.Guild{}).
		Where("tribe = ?", string(g.Tribe)).
		Updates(map[string]any{
			"total_power":  g.TotalPower,
			"member_count": int32(g.MemberCount),
		}).Error
}

func guildFromModel(m model.Guild) tribe.Guild {
	return tribe.Guild{
		Tribe:       tribe.Tribe(m.Tribe),
		Treasury:    m.Treasury,
		TotalPower:  m.TotalPower,
		MemberCount: int(m.MemberCount),
		Version:     m.Version,
	}
}
