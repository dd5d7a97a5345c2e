package petview

import (
	"time"

	"petverse/internal/domain/pet"
)

// View is the serialized pet read model: stats settled to now plus a
// per-action cooldown readout in remaining whole seconds.
type View struct {
	ID            string           `json:"id"`
	OwnerID       string           `json:"owner_id"`
	Tribe         string           `json:"tribe"`
	Stage         string           `json:"stage"`
	FormID        int              `json:"form_id"`
	Stats         pet.Stats        `json:"stats"`
	Reputation    int              `json:"reputation"`
	IsNeglected   bool             `json:"is_neglected"`
	CareStreak    int              `json:"care_streak"`
	TotalActions  int              `json:"total_actions"`
	Cooldowns     map[string]int64 `json:"action_cooldowns,omitempty"`
	LastUpdatedAt time.Time        `json:"last_updated_at"`
}

// FromPet builds the view from an already settled pet.
func FromPet(p pet.Pet, now time.Time) View {
	cooldowns := map[string]int64{}
	for _, kind := range pet.ActionKinds() {
		end, ok := pet.CooldownEnd(p, kind)
		if !ok || !end.After(now) {
			continue
		}
		remaining := int64((end.Sub(now) + time.Second - 1) / time.Second)
		if remaining < 1 {
			remaining = 1
		}
		cooldowns[string(kind)] = remaining
	}
	if len(cooldowns) == 0 {
		cooldowns = nil
	}
	return View{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Tribe:         string(p.Tribe),
		Stage:         string(p.Stage),
		FormID:        p.FormID,
		Stats:         p.Stats,
		Reputation:    p.Reputation,
		IsNeglected:   p.IsNeglected,
		CareStreak:    p.CareStreak,
		TotalActions:  p.TotalActions,
		Cooldowns:     cooldowns,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}
