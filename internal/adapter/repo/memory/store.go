package memory

import (
	"sync"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/raid"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"
)

// Store backs the memory repositories. The tx manager holds the mutex for
// the duration of a transaction, which serializes mutating operations the
// same way the database's row conditions do.
type Store struct {
	mu           sync.RWMutex
	pets         map[string]pet.Pet
	petsByOwner  map[string]string
	stakes       map[string]staking.Stake
	stakeHistory []ports.StakeHistoryEntry
	claims       []ports.RewardClaimRecord
	raids        map[string]raid.Raid
	participants map[string]raid.Participant
	events       []ports.ActivityEvent
	weeks        map[string]week.Week
	weekScores   map[string][]week.TribeScore
	scoredAt     map[string]time.Time
	guilds       map[tribe.Tribe]tribe.Guild
}

func NewStore() *Store {
	return &Store{
		pets:         map[string]pet.Pet{},
		petsByOwner:  map[string]string{},
		stakes:       map[string]staking.Stake{},
		raids:        map[string]raid.Raid{},
		participants: map[string]raid.Participant{},
		weeks:        map[string]week.Week{},
		weekScores:   map[string][]week.TribeScore{},
		scoredAt:     map[string]time.Time{},
		guilds:       map[tribe.Tribe]tribe.Guild{},
	}
}

func participantKey(raidID, userID string) string {
	return raidID + "::" + userID
}

func (s *Store) SeedPet(p pet.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = p
	s.petsByOwner[p.OwnerID] = p.ID
}

func (s *Store) SeedStake(st staking.Stake) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[st.PetID] = st
}

func (s *Store) SeedRaid(r raid.Raid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raids[r.ID] = r
}

func (s *Store) Claims() []ports.RewardClaimRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.RewardClaimRecord, len(s.claims))
	copy(out, s.claims)
	return out
}

func (s *Store) Events() []ports.ActivityEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.ActivityEvent, len(s.events))
	copy(out, s.events)
	return out
}
