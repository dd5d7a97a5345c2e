package raid

import "time"

// Status is the raid state machine. PENDING and ACTIVE can advance; DEFEATED
// and EXPIRED are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusDefeated Status = "DEFEATED"
	StatusExpired  Status = "EXPIRED"
)

// Raid is the shared boss-fight aggregate. HpCurrent only ever decreases
// while ACTIVE and is persisted with an optimistic version check so
// concurrent attackers can never apply damage against a stale health value.
type Raid struct {
	ID                string     `json:"id"`
	BossName          string     `json:"boss_name"`
	HpMax             int64      `json:"boss_hp_max"`
	HpCurrent         int64      `json:"boss_hp_current"`
	Status            Status     `json:"status"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            time.Time  `json:"ends_at"`
	KillingBlowUserID string     `json:"killing_blow_user_id,omitempty"`
	DefeatedAt        *time.Time `json:"defeated_at,omitempty"`
	Version           int64      `json:"-"`
}

// Participant tracks one user's accepted contribution to one raid.
// TotalDamage is only ever incremented by the damage the engine accepted,
// never recomputed from elsewhere.
type Participant struct {
	RaidID      string    `json:"raid_id"`
	UserID      string    `json:"user_id"`
	TotalDamage int64     `json:"total_damage"`
	AttackCount int       `json:"attack_count"`
	LastAttackAt time.Time `json:"last_attack_at"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Lifecycle advances PENDING and ACTIVE raids along the clock. It returns the
// raid's due status at now; DEFEATED is only ever set by the damage path.
func (r Raid) Lifecycle(now time.Time) Status {
	switch r.Status {
	case StatusPending:
		if !now.Before(r.EndsAt) {
			return StatusExpired
		}
		if !now.Before(r.StartsAt) {
			return StatusActive
		}
		return StatusPending
	case StatusActive:
		if !now.Before(r.EndsAt) {
			return StatusExpired
		}
		return StatusActive
	default:
		return r.Status
	}
}
