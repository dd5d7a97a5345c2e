package staking

import (
	"time"

	"petverse/internal/domain/staking"
)

const (
	ResultOK                = "OK"
	ResultInsufficientStake = "INSUFFICIENT_STAKE"
	ResultAmountOutOfBounds = "AMOUNT_OUT_OF_BOUNDS"
)

type StakeRequest struct {
	UserID string
	PetID  string
	Amount int64
	TxRef  string
}

type UnstakeRequest struct {
	UserID string
	PetID  string
	Amount int64
	TxRef  string
}

type ClaimRequest struct {
	UserID         string
	PetID          string
	IsWinningTribe bool
	TxRef          string
}

type StakeResponse struct {
	ResultCode string        `json:"result_code"`
	Stake      staking.Stake `json:"stake"`
	MinStake   int64         `json:"min_stake,omitempty"`
	MaxStake   int64         `json:"max_stake,omitempty"`
}

type ClaimResponse struct {
	ResultCode  string    `json:"result_code"`
	Claimed     int64     `json:"claimed"`
	AccruedFrom time.Time `json:"accrued_from,omitempty"`
	AccruedTo   time.Time `json:"accrued_to,omitempty"`
}
