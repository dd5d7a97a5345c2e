package raid

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/txretry"
	"petverse/internal/domain/pet"
	raiddom "petverse/internal/domain/raid"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid raid request")

const (
	DefaultBossName       = "MEGAWHALE"
	DefaultBossHpMax      = 1_000_000
	DefaultRaidDuration   = 72 * time.Hour
	DefaultAttackCooldown = 5 * time.Minute
)

// UseCase drives the shared boss fight. The HP decrement is the one
// cross-participant atomic operation in the engine: it is applied as a
// clamped conditional update against the raid row version, so concurrent
// attackers can never consume stale health, and the DEFEATED transition with
// its killing-blow attribution commits exactly once.
type UseCase struct {
	TxManager ports.TxManager
	Raids     ports.RaidRepository
	Pets      ports.PetRepository
	Stakes    ports.StakeRepository
	Events    ports.ActivityEventRepository
	Metrics   ports.OpMetrics
	Now       func() time.Time

	BossName       string
	BossHpMax      int64
	RaidDuration   time.Duration
	AttackCooldown time.Duration
	VarianceBps    int64
}

const (
	opJoin   = "raid_join"
	opAttack = "raid_attack"
)

// Current returns the raid covering now (creating one if none exists) along
// with its participant standings.
func (u UseCase) Current(ctx context.Context) (CurrentResponse, error) {
	var out CurrentResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		r, err := u.ensureCurrent(txCtx, u.now())
		if err != nil {
			return err
		}
		participants, err := u.Raids.ListParticipants(txCtx, r.ID)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		out = CurrentResponse{Raid: r, Participants: participants}
		return nil
	})
	if err != nil {
		return CurrentResponse{}, err
	}
	return out, nil
}

func (u UseCase) Join(ctx context.Context, req JoinRequest) (JoinResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.PetID = strings.TrimSpace(req.PetID)
	if req.UserID == "" || req.PetID == "" {
		return JoinResponse{}, ErrInvalidRequest
	}

	var out JoinResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		stored, err := u.Pets.GetByID(txCtx, req.PetID)
		if err != nil {
			return err
		}
		if stored.OwnerID != req.UserID {
			return ports.ErrNotFound
		}
		now := u.now()
		settled := pet.Settle(stored, now)
		if settled.IsNeglected {
			out = JoinResponse{ResultCode: ResultPetNeglected}
			return nil
		}

		r, err := u.ensureCurrent(txCtx, now)
		if err != nil {
			return err
		}
		if r.Status != raiddom.StatusActive {
			out = JoinResponse{ResultCode: ResultRaidNotActive, Raid: r}
			return nil
		}

		participant, err := u.Raids.GetParticipant(txCtx, r.ID, req.UserID)
		if err == nil {
			out = JoinResponse{ResultCode: ResultOK, Raid: r, Participant: participant}
			return nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		participant = raiddom.Participant{
			RaidID:   r.ID,
			UserID:   req.UserID,
			JoinedAt: now,
		}
		if err := u.Raids.SaveParticipant(txCtx, participant); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, ports.ActivityEvent{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			PetID:      settled.ID,
			Tribe:      settled.Tribe,
			Kind:       "raid_join",
			OccurredAt: now,
		}); err != nil {
			return err
		}
		out = JoinResponse{ResultCode: ResultOK, Raid: r, Participant: participant}
		return nil
	})
	if err != nil {
		u.record(opJoin, "", err)
		return JoinResponse{}, err
	}
	u.record(opJoin, out.ResultCode, nil)
	return out, nil
}

func (u UseCase) Attack(ctx context.Context, req AttackRequest) (AttackResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return AttackResponse{}, ErrInvalidRequest
	}

	var out AttackResponse
	err := txretry.Run(ctx, u.TxManager, func(txCtx context.Context) error {
		now := u.now()
		r, err := u.ensureCurrent(txCtx, now)
		if err != nil {
			return err
		}
		switch r.Status {
		case raiddom.StatusDefeated:
			// Damage arriving after HP hit zero is a no-op outcome, not an
			// error for the caller.
			out = AttackResponse{ResultCode: ResultAlreadyDefeated, Damage: 0, BossHpCurrent: 0}
			return nil
		case raiddom.StatusActive:
		default:
			out = AttackResponse{ResultCode: ResultRaidNotActive, BossHpCurrent: r.HpCurrent}
			return nil
		}

		participant, err := u.Raids.GetParticipant(txCtx, r.ID, req.UserID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				out = AttackResponse{ResultCode: ResultNotJoined, BossHpCurrent: r.HpCurrent}
				return nil
			}
			return err
		}

		cooldown := u.attackCooldown()
		if !participant.LastAttackAt.IsZero() {
			if end := participant.LastAttackAt.Add(cooldown); end.After(now) {
				out = AttackResponse{
					ResultCode:     ResultAttackOnCooldown,
					BossHpCurrent:  r.HpCurrent,
					CooldownEndsAt: &end,
				}
				return nil
			}
		}

		power, petID, tb, err := u.attackerPower(txCtx, req.UserID, now)
		if err != nil {
			return err
		}

		damage := raiddom.DamageFor(power, u.varianceBps(), r.ID, req.UserID, participant.AttackCount+1)
		applied := raiddom.Clip(damage, r.HpCurrent)

		next := r
		next.HpCurrent -= applied
		killingBlow := false
		if next.HpCurrent == 0 && applied > 0 {
			next.Status = raiddom.StatusDefeated
			next.KillingBlowUserID = req.UserID
			next.DefeatedAt = &now
			killingBlow = true
		}
		next.Version = r.Version + 1
		if err := u.Raids.SaveWithVersion(txCtx, next, r.Version); err != nil {
			return err
		}

		participant.TotalDamage += applied
		participant.AttackCount++
		participant.LastAttackAt = now
		if err := u.Raids.SaveParticipant(txCtx, participant); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, ports.ActivityEvent{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			PetID:      petID,
			Tribe:      tb,
			Kind:       "raid_attack",
			OccurredAt: now,
		}); err != nil {
			return err
		}

		out = AttackResponse{
			ResultCode:    ResultOK,
			Damage:        applied,
			IsKillingBlow: killingBlow,
			BossHpCurrent: next.HpCurrent,
		}
		return nil
	})
	if err != nil {
		u.record(opAttack, "", err)
		return AttackResponse{}, err
	}
	u.record(opAttack, out.ResultCode, nil)
	return out, nil
}

// ensureCurrent is the idempotent get-or-create for the raid window covering
// now, advancing due PENDING/ACTIVE transitions along the way.
func (u UseCase) ensureCurrent(ctx context.Context, now time.Time) (raiddom.Raid, error) {
	r, err := u.Raids.GetCurrent(ctx, now)
	if errors.Is(err, ports.ErrNotFound) {
		duration := u.raidDuration()
		start := now.UTC().Truncate(duration)
		r = raiddom.Raid{
			ID:        uuid.NewString(),
			BossName:  u.bossName(),
			HpMax:     u.bossHpMax(),
			HpCurrent: u.bossHpMax(),
			Status:    raiddom.StatusActive,
			StartsAt:  start,
			EndsAt:    start.Add(duration),
			Version:   1,
		}
		if createErr := u.Raids.Create(ctx, r); createErr != nil {
			// A concurrent creator winning the race is fine; reread.
			if !errors.Is(createErr, ports.ErrConflict) {
				return raiddom.Raid{}, createErr
			}
			return u.Raids.GetCurrent(ctx, now)
		}
		return r, nil
	}
	if err != nil {
		return raiddom.Raid{}, err
	}

	if due := r.Lifecycle(now); due != r.Status {
		next := r
		next.Status = due
		next.Version = r.Version + 1
		if err := u.Raids.SaveWithVersion(ctx, next, r.Version); err != nil {
			return raiddom.Raid{}, err
		}
		return next, nil
	}
	return r, nil
}

// attackerPower derives current power from the attacker's stake and settled
// pet; an unstaked attacker fights at floor damage.
func (u UseCase) attackerPower(ctx context.Context, userID string, now time.Time) (int64, string, tribe.Tribe, error) {
	stored, err := u.Pets.GetByOwner(ctx, userID)
	if err != nil {
		return 0, "", "", err
	}
	settled := pet.Settle(stored, now)
	stake, err := u.Stakes.GetByPet(ctx, settled.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return 0, settled.ID, settled.Tribe, nil
		}
		return 0, "", "", err
	}
	return staking.PowerFor(stake.AmountStaked, settled.Stage, settled.Tribe), settled.ID, settled.Tribe, nil
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

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) bossName() string {
	if u.BossName != "" {
		return u.BossName
	}
	return DefaultBossName
}

func (u UseCase) bossHpMax() int64 {
	if u.BossHpMax > 0 {
		return u.BossHpMax
	}
	return DefaultBossHpMax
}

func (u UseCase) raidDuration() time.Duration {
	if u.RaidDuration > 0 {
		return u.RaidDuration
	}
	return DefaultRaidDuration
}

func (u UseCase) attackCooldown() time.Duration {
	if u.AttackCooldown > 0 {
		return u.AttackCooldown
	}
	return DefaultAttackCooldown
}

func (u UseCase) varianceBps() int64 {
	if u.VarianceBps > 0 {
		return u.VarianceBps
	}
	return raiddom.DefaultVarianceBps
}
