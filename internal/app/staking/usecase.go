package staking

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/txretry"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/staking"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid staking request")

const (
	DefaultMinStake = 1_000_000
	DefaultMaxStake = 1_000_000_000_000
)

// UseCase owns the stake/unstake/claim transitions. Power is recomputed from
// (amount, stage, tribe) on every mutation; reward accrual is settled and the
// accrual clock reset atomically with the payout row, so a duplicated claim
// after a timeout can never pay twice.
type UseCase struct {
	TxManager ports.TxManager
	Stakes    ports.StakeRepository
	Pets      ports.PetRepository
	Metrics   ports.OpMetrics
	Now       func() time.Time

	// Raw smallest-unit bounds per stake mutation; zero means defaults.
	MinStake int64
	MaxStake int64
}

const (
	opStake   = "stake"
	opUnstake = "unstake"
	opClaim   = "claim"
)

func (u UseCase) Stake(ctx context.Context, req StakeRequest) (StakeResponse, error) {
	if err := validateStakeReq(req.UserID, req.PetID); err != nil {
		return StakeResponse{}, err
	}
	minStake, maxStake := u.bounds()
	if req.Amount < minStake || req.Amount > maxStake {
		return StakeResponse{
			ResultCode: ResultAmountOutOfBounds,
			MinStake:   minStake,
			MaxStake:   maxStake,
		}, nil
	}

	var out StakeResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		p, now, err := u.loadOwnedPet(txCtx, req.UserID, req.PetID)
		if err != nil {
			return err
		}

		stored, err := u.Stakes.GetByPet(txCtx, req.PetID)
		expected := int64(0)
		switch {
		case err == nil:
			expected = stored.Version
		case errors.Is(err, ports.ErrNotFound):
			stored = staking.Stake{
				ID:       uuid.NewString(),
				UserID:   req.UserID,
				PetID:    req.PetID,
				StakedAt: now,
			}
		default:
			return err
		}
		if stored.UserID != req.UserID {
			return ports.ErrNotFound
		}

		next := stored
		next.AmountStaked = stored.AmountStaked + req.Amount
		next.Power = staking.PowerFor(next.AmountStaked, p.Stage, p.Tribe)
		next.Version = stored.Version + 1
		if err := u.Stakes.SaveWithVersion(txCtx, next, expected); err != nil {
			return err
		}
		if err := u.Stakes.AppendHistory(txCtx, ports.StakeHistoryEntry{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			PetID:      req.PetID,
			Kind:       "stake",
			Amount:     req.Amount,
			TxRef:      req.TxRef,
			OccurredAt: now,
		}); err != nil {
			return err
		}
		out = StakeResponse{ResultCode: ResultOK, Stake: next}
		return nil
	})
	return u.finish(opStake, out, err)
}

func (u UseCase) Unstake(ctx context.Context, req UnstakeRequest) (StakeResponse, error) {
	if err := validateStakeReq(req.UserID, req.PetID); err != nil {
		return StakeResponse{}, err
	}
	if req.Amount <= 0 {
		return StakeResponse{}, ErrInvalidRequest
	}

	var out StakeResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		p, now, err := u.loadOwnedPet(txCtx, req.UserID, req.PetID)
		if err != nil {
			return err
		}
		stored, err := u.Stakes.GetByPet(txCtx, req.PetID)
		if err != nil {
			return err
		}
		if stored.UserID != req.UserID {
			return ports.ErrNotFound
		}
		if req.Amount > stored.AmountStaked {
			out = StakeResponse{ResultCode: ResultInsufficientStake, Stake: stored}
			return nil
		}

		next := stored
		next.AmountStaked = stored.AmountStaked - req.Amount
		next.Power = staking.PowerFor(next.AmountStaked, p.Stage, p.Tribe)
		next.Version = stored.Version + 1
		if err := u.Stakes.SaveWithVersion(txCtx, next, stored.Version); err != nil {
			return err
		}
		if err := u.Stakes.AppendHistory(txCtx, ports.StakeHistoryEntry{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			PetID:      req.PetID,
			Kind:       "unstake",
			Amount:     req.Amount,
			TxRef:      req.TxRef,
			OccurredAt: now,
		}); err != nil {
			return err
		}
		out = StakeResponse{ResultCode: ResultOK, Stake: next}
		return nil
	})
	return u.finish(opUnstake, out, err)
}

// Claim settles accrued rewards up to now. The window end is captured inside
// the transaction and committed together with the payout record; an
// immediately repeated claim accrues over an empty window and pays zero.
func (u UseCase) Claim(ctx context.Context, req ClaimRequest) (ClaimResponse, error) {
	if err := validateStakeReq(req.UserID, req.PetID); err != nil {
		return ClaimResponse{}, err
	}

	var out ClaimResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		p, now, err := u.loadOwnedPet(txCtx, req.UserID, req.PetID)
		if err != nil {
			return err
		}
		stored, err := u.Stakes.GetByPet(txCtx, req.PetID)
		if err != nil {
			return err
		}
		if stored.UserID != req.UserID {
			return ports.ErrNotFound
		}

		// The pet may have evolved since the last stake mutation; recompute
		// power so accrual never pays on a stale factor.
		power := staking.PowerFor(stored.AmountStaked, p.Stage, p.Tribe)
		from := stored.AccrualStart()
		amount := staking.AccruedReward(
			power,
			p.Stage,
			from,
			now,
			req.IsWinningTribe,
			p.NeglectedFor(now),
		)

		next := stored
		next.Power = power
		next.LastClaimAt = now
		next.Version = stored.Version + 1
		if err := u.Stakes.SaveWithVersion(txCtx, next, stored.Version); err != nil {
			return err
		}
		if amount > 0 {
			if err := u.Stakes.AppendClaim(txCtx, ports.RewardClaimRecord{
				ID:          uuid.NewString(),
				UserID:      req.UserID,
				PetID:       req.PetID,
				Amount:      amount,
				AccruedFrom: from,
				AccruedTo:   now,
				TxRef:       req.TxRef,
				ClaimedAt:   now,
			}); err != nil {
				return err
			}
		}
		out = ClaimResponse{
			ResultCode:  ResultOK,
			Claimed:     amount,
			AccruedFrom: from,
			AccruedTo:   now,
		}
		return nil
	})
	if err != nil {
		u.record(opClaim, "", err)
		return ClaimResponse{}, err
	}
	u.record(opClaim, out.ResultCode, nil)
	return out, nil
}

// loadOwnedPet loads and settles the pet so stage and neglect state reflect
// now, the instant all staking math is evaluated against.
func (u UseCase) loadOwnedPet(ctx context.Context, userID, petID string) (pet.Pet, time.Time, error) {
	stored, err := u.Pets.GetByID(ctx, petID)
	if err != nil {
		return pet.Pet{}, time.Time{}, err
	}
	if stored.OwnerID != userID {
		return pet.Pet{}, time.Time{}, ports.ErrNotFound
	}
	now := u.now()
	return pet.Settle(stored, now), now, nil
}

func (u UseCase) bounds() (int64, int64) {
	minStake, maxStake := u.MinStake, u.MaxStake
	if minStake <= 0 {
		minStake = DefaultMinStake
	}
	if maxStake <= 0 {
		maxStake = DefaultMaxStake
	}
	return minStake, maxStake
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) finish(op string, out StakeResponse, err error) (StakeResponse, error) {
	if err != nil {
		u.record(op, "", err)
		return StakeResponse{}, err
	}
	u.record(op, out.ResultCode, nil)
	return out, nil
}

func (u UseCase) record(op, resultCode string, err error) {
	if u.Metrics == nil {
		return
	}
	switch {
	case err == nil:
		u.Metrics.RecordSuccess(op, resultCode)
	case errors.Is(err, ports.ErrConflict):
		u.Metrics.RecordConflict(op)
	default:
		u.Metrics.RecordFailure(op)
	}
}

func validateStakeReq(userID, petID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(petID) == "" {
		return ErrInvalidRequest
	}
	return nil
}
