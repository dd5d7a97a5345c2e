package care

import (
	"time"

	"petverse/internal/app/shared/petview"
)

const (
	ResultOK         = "OK"
	ResultOnCooldown = "ACTION_ON_COOLDOWN"
)

type Request struct {
	UserID string
	PetID  string
	Action string
}

type Response struct {
	ResultCode     string        `json:"result_code"`
	Pet            petview.View  `json:"pet"`
	Evolved        bool          `json:"evolved,omitempty"`
	PreviousStage  string        `json:"previous_stage,omitempty"`
	CooldownEndsAt *time.Time    `json:"cooldown_ends_at,omitempty"`
}

type AdoptRequest struct {
	UserID string
	Tribe  string
}

type AdoptResponse struct {
	Pet petview.View `json:"pet"`
}
