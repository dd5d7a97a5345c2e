package gormrepo

import (
	"context"
	"errors"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeekRepo struct {
	db *gorm.DB
}

func NewWeekRepo(db *gorm.DB) WeekRepo {
	return WeekRepo{db: db}
}

// EnsureActive inserts the window's row or returns the one a concurrent
// caller already inserted; the unique index on start_at is the arbiter.
func (r WeekRepo) EnsureActive(ctx context.Context, w week.Week) (week.Week, error) {
	db := getDBFromCtx(ctx, r.db)
	m := weekToModel(w)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "start_at"}},
		DoNothing: true,
	}).Create(&m).Error
	if err != nil {
		return week.Week{}, err
	}

	var stored model.Week
	if err := db.Where("start_at = ?", w.StartAt).First(&stored).Error; err != nil {
		return week.Week{}, err
	}
	return weekFromModel(stored), nil
}

func (r WeekRepo) GetActive(ctx context.Context) (week.Week, error) {
	var m model.Week
	err := getDBFromCtx(ctx, r.db).
		Where("is_active = ?", true).
		Order("start_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return week.Week{}, ports.ErrNotFound
		}
		return week.Week{}, err
	}
	return weekFromModel(m), nil
}

func (r WeekRepo) GetByID(ctx context.Context, weekID string) (week.Week, error) {
	var m model.Week
	if err := getDBFromCtx(ctx, r.db).Where("week_id = ?", weekID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return week.Week{}, ports.ErrNotFound
		}
		return week.Week{}, err
	}
	return weekFromModel(m), nil
}

func (r WeekRepo) SaveWithVersion(ctx context.Context, w week.Week, expectedVersion int64) error {
	m := weekToModel(w)
	res := getDBFromCtx(ctx, r.db).Model(&model.Week{}).
		Where("week_id = ? AND version = ?", w.ID, expectedVersion).
		Updates(map[string]any{
			"is_active":    m.IsActive,
			"winner_tribe": m.WinnerTribe,
			"version":      m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r WeekRepo) SaveScores(ctx context.Context, weekID string, scores []week.TribeScore, computedAt time.Time) error {
	db := getDBFromCtx(ctx, r.db)
	for _, s := range scores {
		m := model.WeekScore{
			WeekID:           weekID,
			Tribe:            string(s.Tribe),
			ScoreActivity:    s.ScoreActivity,
			ScoreSocial:      s.ScoreSocial,
			ScoreConsistency: s.ScoreConsistency,
			ScoreEvent:       s.ScoreEvent,
			Total:            s.Total,
			ComputedAt:       computedAt,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_id"}, {Name: "tribe"}},
			UpdateAll: true,
		}).Create(&m).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r WeekRepo) GetScores(ctx context.Context, weekID string) ([]week.TribeScore, time.Time, error) {
	rows := []model.WeekScore{}
	err := getDBFromCtx(ctx, r.db).
		Where("week_id = ?", weekID).
		Order("tribe ASC").
		Find(&rows).Error
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(rows) == 0 {
		return nil, time.Time{}, ports.ErrNotFound
	}
	out := make([]week.TribeScore, 0, len(rows))
	computedAt := time.Time{}
	for _, m := range rows {
		out = append(out, week.TribeScore{
			Tribe:            tribe.Tribe(m.Tribe),
			ScoreActivity:    m.ScoreActivity,
			ScoreSocial:      m.ScoreSocial,
			ScoreConsistency: m.ScoreConsistency,
			ScoreEvent:       m.ScoreEvent,
			Total:            m.Total,
		})
		if m.ComputedAt.After(computedAt) {
			computedAt = m.ComputedAt
		}
	}
	return out, computedAt, nil
}

func (r WeekRepo) ListBySeason(ctx context.Context, seasonID string) ([]week.Week, error) {
	rows := []model.Week{}
	err := getDBFromCtx(ctx, r.db).
		Where("season_id = ?", seasonID).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]week.Week, 0, len(rows))
	for _, m := range rows {
		out = append(out, weekFromModel(m))
	}
	return out, nil
}

func weekFromModel(m model.Week) week.Week {
	return week.Week{
		ID:          m.WeekID,
		SeasonID:    m.SeasonID,
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		IsActive:    m.IsActive,
		WinnerTribe: tribe.Tribe(m.WinnerTribe),
		Version:     m.Version,
	}
}

func weekToModel(w week.Week) model.Week {
	return model.Week{
		WeekID:      w.ID,
		SeasonID:    w.SeasonID,
		StartAt:     w.StartAt,
		EndAt:       w.EndAt,
		IsActive:    w.IsActive,
		WinnerTribe: string(w.WinnerTribe),
		Version:     w.Version,
	}
}
