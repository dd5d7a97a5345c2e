package care

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/petview"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/tribe"

	"github.com/google/uuid"
)

var (
	ErrUnknownTribe   = errors.New("unknown tribe")
	ErrAlreadyAdopted = errors.New("user already owns a pet")
)

// AdoptUseCase creates the single pet a user owns. The egg seed is rolled
// here once and stored; everything downstream of it is deterministic.
type AdoptUseCase struct {
	TxManager ports.TxManager
	Pets      ports.PetRepository
	Now       func() time.Time
	// NewSeed supplies the pet's fixed egg seed; tests inject a constant.
	NewSeed func() int64
}

func (u AdoptUseCase) Execute(ctx context.Context, req AdoptRequest) (AdoptResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return AdoptResponse{}, ErrInvalidRequest
	}
	tb, ok := tribe.Parse(req.Tribe)
	if !ok {
		return AdoptResponse{}, ErrUnknownTribe
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	seedFn := u.NewSeed
	if seedFn == nil {
		seedFn = defaultSeed
	}

	var out AdoptResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.Pets.GetByOwner(txCtx, req.UserID); err == nil {
			return ErrAlreadyAdopted
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		now := nowFn()
		p := pet.New(uuid.NewString(), req.UserID, tb, seedFn(), now)
		if err := u.Pets.SaveWithVersion(txCtx, p, 0); err != nil {
			return err
		}
		out = AdoptResponse{Pet: petview.FromPet(p, now)}
		return nil
	})
	if err != nil {
		return AdoptResponse{}, err
	}
	return out, nil
}

func defaultSeed() int64 {
	id := uuid.New()
	var seed int64
	for _, b := range id[:8] {
		seed = seed<<8 | int64(b)
	}
	return seed
}
