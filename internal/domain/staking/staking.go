package staking

import "time"

// Stake is the single active stake for a (user, pet) pair. AmountStaked is in
// raw smallest token units; Power is always recomputed from its inputs and
// never mutated independently.
type Stake struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PetID        string    `json:"pet_id"`
	AmountStaked int64     `json:"amount_staked"`
	Power        int64     `json:"power"`
	StakedAt     time.Time `json:"staked_at"`
	LastClaimAt  time.Time `json:"last_claim_at"`
	Version      int64     `json:"-"`
}

// AccrualStart is the instant reward accrual currently runs from: the later
// of the stake time and the last claim.
func (s Stake) AccrualStart() time.Time {
	if s.LastClaimAt.After(s.StakedAt) {
		return s.LastClaimAt
	}
	return s.StakedAt
}
