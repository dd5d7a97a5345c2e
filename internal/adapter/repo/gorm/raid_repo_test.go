package gormrepo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/raid"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRaid(id string, start time.Time) raid.Raid {
	return raid.Raid{
		ID:        id,
		BossName:  "MEGAWHALE",
		HpMax:     1_000_000,
		HpCurrent: 1_000_000,
		Status:    raid.StatusActive,
		StartsAt:  start,
		EndsAt:    start.Add(72 * time.Hour),
		Version:   1,
	}
}

// Two creators racing on the same window must end up with a single boss row;
// the loser gets a conflict and rereads.
func TestRaidRepo_CreateSameWindowConflicts(t *testing.T) {
	repo := NewRaidRepo(openTestDB(t))
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(context.Background(), testRaid("raid-a", start)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(context.Background(), testRaid("raid-b", start))
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict for duplicate window, got %v", err)
	}

	got, err := repo.GetCurrent(context.Background(), start.Add(time.Hour))
	if err != nil {
		t.Fatalf("get current: %v", err)
	}
	if got.ID != "raid-a" {
		t.Fatalf("expected the first creator's raid to win, got %s", got.ID)
	}
}

func TestRaidRepo_CreateDistinctWindows(t *testing.T) {
	repo := NewRaidRepo(openTestDB(t))
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(context.Background(), testRaid("raid-a", start)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(context.Background(), testRaid("raid-b", start.Add(72*time.Hour))); err != nil {
		t.Fatalf("second window create: %v", err)
	}
}
