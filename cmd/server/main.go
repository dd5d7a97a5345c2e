package main

import (
	"log"
	"os"
	"time"

	httpadapter "petverse/internal/adapter/http"
	metricsinmem "petverse/internal/adapter/metrics/inmemory"
	gormrepo "petverse/internal/adapter/repo/gorm"
	"petverse/internal/app/care"
	"petverse/internal/app/matchmaking"
	"petverse/internal/app/raid"
	"petverse/internal/app/scoring"
	"petverse/internal/app/staking"
	"petverse/internal/app/status"
	"petverse/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("PETVERSE_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db := mustOpenDB(cfg.DB)
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pets := gormrepo.NewPetRepo(db)
	stakes := gormrepo.NewStakeRepo(db)
	raids := gormrepo.NewRaidRepo(db)
	events := gormrepo.NewActivityEventRepo(db)
	weeks := gormrepo.NewWeekRepo(db)
	guilds := gormrepo.NewGuildRepo(db)
	pool := gormrepo.NewMatchPoolRepo(db)
	txManager := gormrepo.NewTxManager(db)
	recorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		AdoptUC: care.AdoptUseCase{
			TxManager: txManager,
			Pets:      pets,
			Now:       time.Now,
		},
		CareUC: care.UseCase{
			TxManager: txManager,
			Pets:      pets,
			Events:    events,
			Metrics:   recorder,
			Now:       time.Now,
		},
		StatusUC: status.UseCase{Pets: pets, Events: events, Now: time.Now},
		StakingUC: staking.UseCase{
			TxManager: txManager,
			Stakes:    stakes,
			Pets:      pets,
			Metrics:   recorder,
			Now:       time.Now,
			MinStake:  cfg.Staking.MinStake,
			MaxStake:  cfg.Staking.MaxStake,
		},
		RaidUC: raid.UseCase{
			TxManager:      txManager,
			Raids:          raids,
			Pets:           pets,
			Stakes:         stakes,
			Events:         events,
			Metrics:        recorder,
			Now:            time.Now,
			BossName:       cfg.Raid.BossName,
			BossHpMax:      cfg.Raid.BossHpMax,
			RaidDuration:   cfg.Raid.Duration(),
			AttackCooldown: cfg.Raid.AttackCooldown(),
			VarianceBps:    cfg.Raid.VarianceBps,
		},
		MatchUC: matchmaking.UseCase{
			Pets:    pets,
			Stakes:  stakes,
			Pool:    pool,
			Now:     time.Now,
			BandBps: cfg.Matchmaking.BandBps,
		},
		ScoringUC: &scoring.UseCase{
			TxManager: txManager,
			Weeks:     weeks,
			Events:    events,
			Guilds:    guilds,
			Stakes:    stakes,
			Now:       time.Now,
			Staleness: cfg.Scoring.Staleness(),
		},
		KPI: recorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	log.Printf("petverse server listening on %s", cfg.Server.Addr)
	s.Spin()
}

func mustOpenDB(cfg config.DBConfig) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gormrepo.OpenPostgres(cfg.DSN)
	case "sqlite", "":
		db, err = gormrepo.OpenSQLite(cfg.DSN)
	default:
		log.Fatalf("unknown db driver %q", cfg.Driver)
	}
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return db
}
