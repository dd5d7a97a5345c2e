package status

import (
	"time"

	"petverse/internal/app/shared/petview"
)

type Request struct {
	UserID string
}

type Response struct {
	Pet petview.View `json:"pet"`
}

type HistoryRequest struct {
	UserID string
	Limit  int
}

type HistoryItem struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}
