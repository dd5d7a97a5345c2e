package care

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/petview"
	"petverse/internal/app/shared/txretry"
	"petverse/internal/domain/pet"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid care request")
	ErrUnknownAction  = errors.New("unknown action kind")
)

// UseCase applies one care action to one pet: settle decay to now, enforce
// the per-kind cooldown, apply stat deltas and streaks, run the evolution
// check, and emit one activity event. Concurrent calls for the same pet
// serialize on the pet row's version; a lost conditional update is retried
// once before surfacing.
type UseCase struct {
	TxManager ports.TxManager
	Pets      ports.PetRepository
	Events    ports.ActivityEventRepository
	Metrics   ports.OpMetrics
	Now       func() time.Time
}

const opCare = "care"

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.PetID = strings.TrimSpace(req.PetID)
	if req.UserID == "" || req.PetID == "" {
		return Response{}, ErrInvalidRequest
	}
	kind, ok := pet.ParseActionKind(strings.TrimSpace(req.Action))
	if !ok {
		return Response{}, ErrUnknownAction
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		stored, err := u.Pets.GetByID(txCtx, req.PetID)
		if err != nil {
			return err
		}
		if stored.OwnerID != req.UserID {
			return ports.ErrNotFound
		}

		now := nowFn()
		settled := pet.Settle(stored, now)

		if end, performed := pet.CooldownEnd(settled, kind); performed && end.After(now) {
			out = Response{
				ResultCode:     ResultOnCooldown,
				Pet:            petview.FromPet(settled, now),
				CooldownEndsAt: &end,
			}
			return nil
		}

		outcome := pet.ApplyAction(settled, kind, now)
		next := outcome.Pet
		next.Version = stored.Version + 1

		if err := u.Pets.SaveWithVersion(txCtx, next, stored.Version); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, ports.ActivityEvent{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			PetID:      next.ID,
			Tribe:      next.Tribe,
			Kind:       string(kind),
			OccurredAt: now,
		}); err != nil {
			return err
		}

		out = Response{
			ResultCode: ResultOK,
			Pet:        petview.FromPet(next, now),
			Evolved:    outcome.Evolved,
		}
		if outcome.Evolved {
			out.PreviousStage = string(outcome.PreviousStage)
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict(opCare)
			} else {
				u.Metrics.RecordFailure(opCare)
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(opCare, out.ResultCode)
	}
	return out, nil
}
