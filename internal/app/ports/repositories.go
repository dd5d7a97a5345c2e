package ports

import (
	"context"
	"time"

	"petverse/internal/domain/pet"
	"petverse/internal/domain/raid"
	"petverse/internal/domain/staking"
	"petverse/internal/domain/tribe"
	"petverse/internal/domain/week"
)

type PetRepository interface {
	GetByID(ctx context.Context, petID string) (pet.Pet, error)
	GetByOwner(ctx context.Context, userID string) (pet.Pet, error)
	// SaveWithVersion persists p with a conditional update against
	// expectedVersion; expectedVersion 0 means insert. Returns ErrConflict
	// when another writer got there first.
	SaveWithVersion(ctx context.Context, p pet.Pet, expectedVersion int64) error
}

type StakeHistoryEntry struct {
	ID         string
	UserID     string
	PetID      string
	Kind       string // "stake" | "unstake"
	Amount     int64
	TxRef      string
	OccurredAt time.Time
}

type RewardClaimRecord struct {
	ID          string
	UserID      string
	PetID       string
	Amount      int64
	AccruedFrom time.Time
	AccruedTo   time.Time
	TxRef       string
	ClaimedAt   time.Time
}

type StakeRepository interface {
	GetByPet(ctx context.Context, petID string) (staking.Stake, error)
	SaveWithVersion(ctx context.Context, s staking.Stake, expectedVersion int64) error
	AppendHistory(ctx context.Context, entry StakeHistoryEntry) error
	AppendClaim(ctx context.Context, claim RewardClaimRecord) error
	// SumPowerByTribe aggregates active stake power and staker count for one
	// tribe's guild standings.
	SumPowerByTribe(ctx context.Context, tb tribe.Tribe) (totalPower int64, members int, err error)
}

// MatchCandidate is the read-model row matchmaking filters over.
type MatchCandidate struct {
	UserID      string
	PetID       string
	Stage       pet.Stage
	Tribe       tribe.Tribe
	Power       int64
	IsNeglected bool
}

type MatchPoolRepository interface {
	ListCandidates(ctx context.Context) ([]MatchCandidate, error)
}

type RaidRepository interface {
	// GetCurrent returns the raid whose window contains now, regardless of
	// status; ErrNotFound when no raid covers now.
	GetCurrent(ctx context.Context, now time.Time) (raid.Raid, error)
	GetByID(ctx context.Context, raidID string) (raid.Raid, error)
	Create(ctx context.Context, r raid.Raid) error
	SaveWithVersion(ctx context.Context, r raid.Raid, expectedVersion int64) error
	GetParticipant(ctx context.Context, raidID, userID string) (raid.Participant, error)
	SaveParticipant(ctx context.Context, p raid.Participant) error
	ListParticipants(ctx context.Context, raidID string) ([]raid.Participant, error)
}

// ActivityEvent is the journal record every applied care action and raid
// engagement emits; the scoring aggregator's only input.
type ActivityEvent struct {
	ID         string
	UserID     string
	PetID      string
	Tribe      tribe.Tribe
	Kind       string // care action kind, "raid_join", "raid_attack"
	OccurredAt time.Time
}

type ActivityEventRepository interface {
	Append(ctx context.Context, evt ActivityEvent) error
	// AggregateByTribe folds journal rows in [from, to) into per-tribe
	// activity volumes.
	AggregateByTribe(ctx context.Context, from, to time.Time) (map[tribe.Tribe]week.TribeActivity, error)
	ListByPet(ctx context.Context, petID string, limit int) ([]ActivityEvent, error)
}

type WeekRepository interface {
	// EnsureActive is the idempotent get-or-create for the week covering the
	// given window; concurrent callers all land on the same row.
	EnsureActive(ctx context.Context, w week.Week) (week.Week, error)
	// GetActive returns the earliest week still flagged active, ErrNotFound
	// when none is. At most one week may stay active; callers finalize any
	// expired one before opening the next window.
	GetActive(ctx context.Context) (week.Week, error)
	GetByID(ctx context.Context, weekID string) (week.Week, error)
	SaveWithVersion(ctx context.Context, w week.Week, expectedVersion int64) error
	// SaveScores upserts the week's score rows; recomputing and resaving the
	// same window must yield the same stored totals.
	SaveScores(ctx context.Context, weekID string, scores []week.TribeScore, computedAt time.Time) error
	GetScores(ctx context.Context, weekID string) ([]week.TribeScore, time.Time, error)
	ListBySeason(ctx context.Context, seasonID string) ([]week.Week, error)
}

type GuildRepository interface {
	Get(ctx context.Context, tb tribe.Tribe) (tribe.Guild, error)
	// AddTreasury increments the tribe treasury monotonically.
	AddTreasury(ctx context.Context, tb tribe.Tribe, amount int64, txRef string) error
	SaveTotals(ctx context.Context, g tribe.Guild) error
}
