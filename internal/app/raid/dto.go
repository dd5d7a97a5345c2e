package raid

import (
	"time"

	raiddom "petverse/internal/domain/raid"
)

const (
	ResultOK               = "OK"
	ResultRaidNotActive    = "RAID_NOT_ACTIVE"
	ResultAlreadyDefeated  = "RAID_ALREADY_DEFEATED"
	ResultNotJoined        = "NOT_JOINED"
	ResultAttackOnCooldown = "ATTACK_ON_COOLDOWN"
	ResultPetNeglected     = "PET_NEGLECTED"
)

type JoinRequest struct {
	UserID string
	PetID  string
}

type JoinResponse struct {
	ResultCode  string              `json:"result_code"`
	Raid        raiddom.Raid        `json:"raid"`
	Participant raiddom.Participant `json:"participant,omitempty"`
}

type AttackRequest struct {
	UserID string
}

type AttackResponse struct {
	ResultCode     string     `json:"result_code"`
	Damage         int64      `json:"damage"`
	IsKillingBlow  bool       `json:"is_killing_blow"`
	BossHpCurrent  int64      `json:"boss_hp_current"`
	CooldownEndsAt *time.Time `json:"cooldown_ends_at,omitempty"`
}

type CurrentResponse struct {
	Raid         raiddom.Raid          `json:"raid"`
	Participants []raiddom.Participant `json:"participants"`
}
