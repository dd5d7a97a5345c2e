package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/petview"
	"petverse/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase is the read half of the engine: the stored pet settled to now,
// without persisting the settlement.
type UseCase struct {
	Pets   ports.PetRepository
	Events ports.ActivityEventRepository
	Now    func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return Response{}, ErrInvalidRequest
	}
	p, err := u.Pets.GetByOwner(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	now := u.now()
	return Response{Pet: petview.FromPet(pet.Settle(p, now), now)}, nil
}

func (u UseCase) History(ctx context.Context, req HistoryRequest) (HistoryResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return HistoryResponse{}, ErrInvalidRequest
	}
	p, err := u.Pets.GetByOwner(ctx, req.UserID)
	if err != nil {
		return HistoryResponse{}, err
	}
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	events, err := u.Events.ListByPet(ctx, p.ID, limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return HistoryResponse{}, err
	}
	items := make([]HistoryItem, 0, len(events))
	for _, evt := range events {
		items = append(items, HistoryItem{Kind: evt.Kind, OccurredAt: evt.OccurredAt})
	}
	return HistoryResponse{Items: items}, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
