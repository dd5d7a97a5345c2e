package gormrepo

import (
	"fmt"

	"petverse/internal/adapter/repo/gorm/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// OpenSQLite is the local/dev path; production runs postgres.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Pet{},
		&model.Stake{},
		&model.StakeHistory{},
		&model.RewardClaim{},
		&model.BossRaid{},
		&model.BossRaidParticipant{},
		&model.ActivityEvent{},
		&model.Week{},
		&model.WeekScore{},
		&model.Guild{},
	)
}
