package matchmaking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/staking"
)

var ErrInvalidRequest = errors.New("invalid matchmaking request")

const (
	DefaultBandBps = 3000 // ±30% of the caller's power
	DefaultLimit   = 10
	maxLimit       = 50
)

const (
	ResultOK           = "OK"
	ResultPetNeglected = "PET_NEGLECTED"
)

type Request struct {
	UserID string
	PetID  string
	Limit  int
}

type Opponent struct {
	UserID     string `json:"user_id"`
	PetID      string `json:"pet_id"`
	Stage      string `json:"stage"`
	Tribe      string `json:"tribe"`
	Power      int64  `json:"power"`
	PowerDelta int64  `json:"power_delta"`
}

type Response struct {
	ResultCode  string     `json:"result_code"`
	CallerPower int64      `json:"caller_power"`
	Opponents   []Opponent `json:"opponents"`
}

// UseCase selects battle opponents comparable to the caller's power. An empty
// result is a valid outcome; only lookup failures surface as errors.
type UseCase struct {
	Pets   ports.PetRepository
	Stakes ports.StakeRepository
	Pool   ports.MatchPoolRepository
	Now    func() time.Time

	BandBps int64
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.PetID = strings.TrimSpace(req.PetID)
	if req.UserID == "" || req.PetID == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	stored, err := u.Pets.GetByID(ctx, req.PetID)
	if err != nil {
		return Response{}, err
	}
	if stored.OwnerID != req.UserID {
		return Response{}, ports.ErrNotFound
	}
	now := u.now()
	settled := pet.Settle(stored, now)
	// Neglect gates battle participation on both sides of the match.
	if settled.IsNeglected {
		return Response{ResultCode: ResultPetNeglected}, nil
	}

	callerPower := int64(0)
	if stake, err := u.Stakes.GetByPet(ctx, settled.ID); err == nil {
		callerPower = staking.PowerFor(stake.AmountStaked, settled.Stage, settled.Tribe)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}

	candidates, err := u.Pool.ListCandidates(ctx)
	if err != nil {
		return Response{}, err
	}

	band := u.BandBps
	if band <= 0 {
		band = DefaultBandBps
	}
	low := callerPower - callerPower*band/10000
	high := callerPower + callerPower*band/10000

	opponents := make([]Opponent, 0, limit)
	for _, c := range candidates {
		if c.UserID == req.UserID || c.PetID == req.PetID {
			continue
		}
		if c.IsNeglected {
			continue
		}
		if c.Power < low || c.Power > high {
			continue
		}
		delta := c.Power - callerPower
		if delta < 0 {
			delta = -delta
		}
		opponents = append(opponents, Opponent{
			UserID:     c.UserID,
			PetID:      c.PetID,
			Stage:      string(c.Stage),
			Tribe:      string(c.Tribe),
			Power:      c.Power,
			PowerDelta: delta,
		})
	}
	sort.Slice(opponents, func(i, j int) bool {
		if opponents[i].PowerDelta != opponents[j].PowerDelta {
			return opponents[i].PowerDelta < opponents[j].PowerDelta
		}
		return opponents[i].PetID < opponents[j].PetID
	})
	if len(opponents) > limit {
		opponents = opponents[:limit]
	}

	return Response{ResultCode: ResultOK, CallerPower: callerPower, Opponents: opponents}, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
