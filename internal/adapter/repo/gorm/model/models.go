package model

import "time"

type Pet struct {
	PetID            string `gorm:"primaryKey;column:pet_id"`
	OwnerID          string `gorm:"uniqueIndex;column:owner_id"`
	Tribe            string
	Stage            string
	FormID           int32
	EggSeed          int64
	Hunger           int32
	Mood             int32
	Energy           int32
	DecayCarryHunger int32
	DecayCarryMood   int32
	DecayCarryEnergy int32
	Reputation       int32
	IsNeglected      bool
	NeglectedSince   *time.Time
	LowStatSince     *time.Time
	CareStreak       int32
	TotalActions     int32
	LastFeedAt       *time.Time
	LastPlayAt       *time.Time
	LastSleepAt      *time.Time
	LastSocializeAt  *time.Time
	LastCareAt       *time.Time
	CreatedAt        time.Time
	LastUpdatedAt    time.Time
	Version          int64
}

func (Pet) TableName() string { return "pets" }

type Stake struct {
	StakeID      string `gorm:"primaryKey;column:stake_id"`
	UserID       string `gorm:"index"`
	PetID        string `gorm:"uniqueIndex"`
	AmountStaked int64
	Power        int64
	StakedAt     time.Time
	LastClaimAt  *time.Time
	Version      int64
}

func (Stake) TableName() string { return "stakes" }

type StakeHistory struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index"`
	PetID      string `gorm:"index"`
	Kind       string
	Amount     int64
	TxRef      string
	OccurredAt time.Time
}

func (StakeHistory) TableName() string { return "stake_history" }

type RewardClaim struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	PetID       string `gorm:"index"`
	Amount      int64
	AccruedFrom time.Time
	AccruedTo   time.Time
	TxRef       string
	ClaimedAt   time.Time
}

func (RewardClaim) TableName() string { return "reward_claims" }

type BossRaid struct {
	RaidID            string `gorm:"primaryKey;column:raid_id"`
	BossName          string
	HpMax             int64
	HpCurrent         int64
	Status            string    `gorm:"index"`
	StartsAt          time.Time `gorm:"uniqueIndex"`
	EndsAt            time.Time
	KillingBlowUserID string
	DefeatedAt        *time.Time
	Version           int64
}

func (BossRaid) TableName() string { return "boss_raids" }

type BossRaidParticipant struct {
	RaidID       string `gorm:"primaryKey;column:raid_id"`
	UserID       string `gorm:"primaryKey;column:user_id"`
	TotalDamage  int64
	AttackCount  int32
	LastAttackAt *time.Time
	JoinedAt     time.Time
}

func (BossRaidParticipant) TableName() string { return "boss_raid_participants" }

type ActivityEvent struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index"`
	PetID      string `gorm:"index"`
	Tribe      string `gorm:"index"`
	Kind       string
	OccurredAt time.Time `gorm:"index"`
}

func (ActivityEvent) TableName() string { return "activity_events" }

type Week struct {
	WeekID      string    `gorm:"primaryKey;column:week_id"`
	SeasonID    string    `gorm:"index"`
	StartAt     time.Time `gorm:"uniqueIndex"`
	EndAt       time.Time
	IsActive    bool
	WinnerTribe string
	Version     int64
}

func (Week) TableName() string { return "weeks" }

type WeekScore struct {
	WeekID           string `gorm:"primaryKey;column:week_id"`
	Tribe            string `gorm:"primaryKey"`
	ScoreActivity    int64
	ScoreSocial      int64
	ScoreConsistency int64
	ScoreEvent       int64
	Total            int64
	ComputedAt       time.Time
}

func (WeekScore) TableName() string { return "week_scores" }

type Guild struct {
	Tribe       string `gorm:"primaryKey"`
	Treasury    int64
	TotalPower  int64
	MemberCount int32
	Version     int64
}

func (Guild) TableName() string { return "guilds" }
