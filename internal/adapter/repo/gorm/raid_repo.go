package gormrepo

import (
	"context"
	"errors"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/raid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RaidRepo struct {
	db *gorm.DB
}

func NewRaidRepo(db *gorm.DB) RaidRepo {
	return RaidRepo{db: db}
}

func (r RaidRepo) GetCurrent(ctx context.Context, now time.Time) (raid.Raid, error) {
	var m model.BossRaid
	err := getDBFromCtx(ctx, r.db).
		Where("starts_at <= ? AND ends_at > ?", now, now).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return raid.Raid{}, ports.ErrNotFound
		}
		return raid.Raid{}, err
	}
	return raidFromModel(m), nil
}

func (r RaidRepo) GetByID(ctx context.Context, raidID string) (raid.Raid, error) {
	var m model.BossRaid
	if err := getDBFromCtx(ctx, r.db).Where("raid_id = ?", raidID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return raid.Raid{}, ports.ErrNotFound
		}
		return raid.Raid{}, err
	}
	return raidFromModel(m), nil
}

// Create inserts the raid for its window. The window start is unique, so two
// concurrent first-callers cannot both persist a boss for the same window: the
// loser's insert is skipped and reported as a conflict for the caller to
// reread.
func (r RaidRepo) Create(ctx context.Context, rd raid.Raid) error {
	m := raidToModel(rd)
	res := getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "starts_at"}},
			DoNothing: true,
		}).
		Create(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

// SaveWithVersion commits the conditional HP decrement: the version predicate
// makes concurrent attackers lose cleanly instead of applying damage against
// a stale health value.
func (r RaidRepo) SaveWithVersion(ctx context.Context, rd raid.Raid, expectedVersion int64) error {
	m := raidToModel(rd)
	res := getDBFromCtx(ctx, r.db).Model(&model.BossRaid{}).
		Where("raid_id = ? AND version = ?", rd.ID, expectedVersion).
		Updates(map[string]any{
			"hp_current":           m.HpCurrent,
			"status":               m.Status,
			"killing_blow_user_id": m.KillingBlowUserID,
			"defeated_at":          m.DefeatedAt,
			"version":              m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r RaidRepo) GetParticipant(ctx context.Context, raidID, userID string) (raid.Participant, error) {
	var m model.BossRaidParticipant
	err := getDBFromCtx(ctx, r.db).
		Where("raid_id = ? AND user_id = ?", raidID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return raid.Participant{}, ports.ErrNotFound
		}
		return raid.Participant{}, err
	}
	return participantFromModel(m), nil
}

func (r RaidRepo) SaveParticipant(ctx context.Context, p raid.Participant) error {
	m := participantToModel(p)
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "raid_id"}, {Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&m).Error
}

func (r RaidRepo) ListParticipants(ctx context.Context, raidID string) ([]raid.Participant, error) {
	rows := []model.BossRaidParticipant{}
	err := getDBFromCtx(ctx, r.db).
		Where("raid_id = ?", raidID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "total_damage"}, Desc: true}},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]raid.Participant, 0, len(rows))
	for _, m := range rows {
		out = append(out, participantFromModel(m))
	}
	return out, nil
}

func raidFromModel(m model.BossRaid) raid.Raid {
	return raid.Raid{
		ID:                m.RaidID,
		BossName:          m.BossName,
		HpMax:             m.HpMax,
		HpCurrent:         m.HpCurrent,
		Status:            raid.Status(m.Status),
		StartsAt:          m.StartsAt,
		EndsAt:            m.EndsAt,
		KillingBlowUserID: m.KillingBlowUserID,
		DefeatedAt:        m.DefeatedAt,
		Version:           m.Version,
	}
}

func raidToModel(rd raid.Raid) model.BossRaid {
	return model.BossRaid{
		RaidID:            rd.ID,
		BossName:          rd.BossName,
		HpMax:             rd.HpMax,
		HpCurrent:         rd.HpCurrent,
		Status:            string(rd.Status),
		StartsAt:          rd.StartsAt,
		EndsAt:            rd.EndsAt,
		KillingBlowUserID: rd.KillingBlowUserID,
		DefeatedAt:        rd.DefeatedAt,
		Version:           rd.Version,
	}
}

func participantFromModel(m model.BossRaidParticipant) raid.Participant {
	lastAttack := time.Time{}
	if m.LastAttackAt != nil {
		lastAttack = *m.LastAttackAt
	}
	return raid.Participant{
		RaidID:       m.RaidID,
		UserID:       m.UserID,
		TotalDamage:  m.TotalDamage,
		AttackCount:  int(m.AttackCount),
		LastAttackAt: lastAttack,
		JoinedAt:     m.JoinedAt,
	}
}

func participantToModel(p raid.Participant) model.BossRaidParticipant {
	var lastAttack *time.Time
	if !p.LastAttackAt.IsZero() {
		lastAttack = &p.LastAttackAt
	}
	return model.BossRaidParticipant{
		RaidID:       p.RaidID,
		UserID:       p.UserID,
		TotalDamage:  p.TotalDamage,
		AttackCount:  int32(p.AttackCount),
		LastAttackAt: lastAttack,
		JoinedAt:     p.JoinedAt,
	}
}
