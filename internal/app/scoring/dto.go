package scoring

import (
	"time"

	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"
)

type ScoresResponse struct {
	Week       week.Week         `json:"week"`
	Scores     []week.TribeScore `json:"scores"`
	ComputedAt time.Time         `json:"computed_at"`
}

type CloseWeekResponse struct {
	Week        week.Week         `json:"week"`
	Scores      []week.TribeScore `json:"scores"`
	WinnerTribe tribe.Tribe       `json:"winner_tribe,omitempty"`
	Tie         bool              `json:"tie"`
}

type SeasonResponse struct {
	SeasonID    string                `json:"season_id"`
	Weeks       []week.Week           `json:"weeks"`
	WinCounts   map[tribe.Tribe]int   `json:"win_counts"`
	WinnerTribe tribe.Tribe           `json:"winner_tribe,omitempty"`
}

type StandingsResponse struct {
	Guilds []tribe.Guild `json:"guilds"`
}

type ContributeRequest struct {
	UserID string
	Tribe  string
	Amount int64
	TxRef  string
}
