package week

import (
	"fmt"
	"time"

	"petverse/internal/domain/tribe"
)

// Week is a [StartAt, EndAt) competition window. At most one week is active
// at a time; WinnerTribe is set once on close, and only when one tribe holds
// the strictly highest total (a tie leaves no winner).
type Week struct {
	ID          string      `json:"id"`
	SeasonID    string      `json:"season_id"`
	StartAt     time.Time   `json:"start_at"`
	EndAt       time.Time   `json:"end_at"`
	IsActive    bool        `json:"is_active"`
	WinnerTribe tribe.Tribe `json:"winner_tribe,omitempty"`
	Version     int64       `json:"-"`
}

// WindowFor is the ISO-style week window containing t: Monday 00:00 UTC to
// the next Monday.
func WindowFor(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// SeasonFor groups weeks into calendar quarters.
func SeasonFor(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.StartAt) && t.Before(w.EndAt)
}
