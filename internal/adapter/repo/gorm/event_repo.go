package gormrepo

import (
	"context"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"

	"gorm.io/gorm"
)

type ActivityEventRepo struct {
	db *gorm.DB
}

func NewActivityEventRepo(db *gorm.DB) ActivityEventRepo {
	return ActivityEventRepo{db: db}
}

func (r ActivityEventRepo) Append(ctx context.Context, evt ports.ActivityEvent) error {
	return getDBFromCtx(ctx, r.db).Create(&model.ActivityEvent{
		ID:         evt.ID,
		UserID:     evt.UserID,
		PetID:      evt.PetID,
		Tribe:      string(evt.Tribe),
		Kind:       evt.Kind,
		OccurredAt: evt.OccurredAt,
	}).Error
}

// AggregateByTribe folds the journal rows in [from, to) into per-tribe
// volumes. Rows are streamed and counted in Go so the bucketing rules stay in
// one place instead of being duplicated in SQL.
func (r ActivityEventRepo) AggregateByTribe(ctx context.Context, from, to time.Time) (map[tribe.Tribe]week.TribeActivity, error) {
	rows := []model.ActivityEvent{}
	err := getDBFromCtx(ctx, r.db).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	agg := map[tribe.Tribe]week.TribeActivity{}
	activeDays := map[tribe.Tribe]map[string]struct{}{}
	for _, m := range rows {
		tb := tribe.Tribe(m.Tribe)
		a := agg[tb]
		switch m.Kind {
		case "raid_join", "raid_attack":
			a.EventJoins++
		case string(pet.ActionSocialize):
			a.Actions++
			a.Social++
		default:
			a.Actions++
		}
		if activeDays[tb] == nil {
			activeDays[tb] = map[string]struct{}{}
		}
		activeDays[tb][m.UserID+"|"+m.OccurredAt.UTC().Format("2006-01-02")] = struct{}{}
		agg[tb] = a
	}
	for tb, days := range activeDays {
		a := agg[tb]
		a.ActiveDays = int64(len(days))
		agg[tb] = a
	}
	return agg, nil
}

func (r ActivityEventRepo) ListByPet(ctx context.Context, petID string, limit int) ([]ports.ActivityEvent, error) {
	rows := []model.ActivityEvent{}
	err := getDBFromCtx(ctx, r.db).
		Where("pet_id = ?", petID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.ActivityEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.ActivityEvent{
			ID:         m.ID,
			UserID:     m.UserID,
			PetID:      m.PetID,
			Tribe:      tribe.Tribe(m.Tribe),
			Kind:       m.Kind,
			OccurredAt: m.OccurredAt,
		})
	}
	return out, nil
}
