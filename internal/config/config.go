package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	DB          DBConfig          `yaml:"db"`
	Staking     StakingConfig     `yaml:"staking"`
	Raid        RaidConfig        `yaml:"raid"`
	Matchmaking MatchmakingConfig `yaml:"matchmaking"`
	Scoring     ScoringConfig     `yaml:"scoring"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type StakingConfig struct {
	MinStake int64 `yaml:"min_stake"`
	MaxStake int64 `yaml:"max_stake"`
}

type RaidConfig struct {
	BossName              string `yaml:"boss_name"`
	BossHpMax             int64  `yaml:"boss_hp_max"`
	DurationHours         int    `yaml:"duration_hours"`
	AttackCooldownSeconds int    `yaml:"attack_cooldown_seconds"`
	VarianceBps           int64  `yaml:"variance_bps"`
}

type MatchmakingConfig struct {
	BandBps int64 `yaml:"band_bps"`
}

type ScoringConfig struct {
	StalenessSeconds int `yaml:"staleness_seconds"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		DB:     DBConfig{Driver: "sqlite", DSN: "petverse.db"},
	}
}

// Load reads the optional YAML file at path, then applies environment
// overrides. A missing file is not an error; env vars alone can configure
// everything.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func (c RaidConfig) Duration() time.Duration {
	return time.Duration(c.DurationHours) * time.Hour
}

func (c RaidConfig) AttackCooldown() time.Duration {
	return time.Duration(c.AttackCooldownSeconds) * time.Second
}

func (c ScoringConfig) Staleness() time.Duration {
	return time.Duration(c.StalenessSeconds) * time.Second
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PETVERSE_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("PETVERSE_DB_DRIVER")); v != "" {
		cfg.DB.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("PETVERSE_DB_DSN")); v != "" {
		cfg.DB.DSN = v
	}
	if v := int64Env("PETVERSE_MIN_STAKE"); v > 0 {
		cfg.Staking.MinStake = v
	}
	if v := int64Env("PETVERSE_MAX_STAKE"); v > 0 {
		cfg.Staking.MaxStake = v
	}
	if v := strings.TrimSpace(os.Getenv("PETVERSE_BOSS_NAME")); v != "" {
		cfg.Raid.BossName = v
	}
	if v := int64Env("PETVERSE_BOSS_HP_MAX"); v > 0 {
		cfg.Raid.BossHpMax = v
	}
	if v := intEnv("PETVERSE_RAID_DURATION_HOURS"); v > 0 {
		cfg.Raid.DurationHours = v
	}
	if v := intEnv("PETVERSE_ATTACK_COOLDOWN_SECONDS"); v > 0 {
		cfg.Raid.AttackCooldownSeconds = v
	}
	if v := int64Env("PETVERSE_RAID_VARIANCE_BPS"); v > 0 {
		cfg.Raid.VarianceBps = v
	}
	if v := int64Env("PETVERSE_MATCH_BAND_BPS"); v > 0 {
		cfg.Matchmaking.BandBps = v
	}
	if v := intEnv("PETVERSE_SCORE_STALENESS_SECONDS"); v > 0 {
		cfg.Scoring.StalenessSeconds = v
	}
}

func intEnv(key string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func int64Env(key string) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
