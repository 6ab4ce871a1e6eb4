package main

import (
	"context"
	"fmt"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	"github.com/archive-alert/internal/infrastructure/mail"
	"github.com/archive-alert/internal/infrastructure/up42"
	"github.com/archive-alert/internal/infrastructure/vector"
	"github.com/archive-alert/internal/repository/cache"
	"github.com/archive-alert/internal/repository/file"
	"github.com/archive-alert/internal/repository/memory"
	"github.com/archive-alert/internal/repository/postgres"
	redisRepo "github.com/archive-alert/internal/repository/redis"
	"github.com/archive-alert/internal/usecase"
	"go.uber.org/zap"
)

// app holds the wired components and the connections to close on exit.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	counters repository.CounterRepository
	alertUC  *usecase.AlertUseCase
	closers  []func() error
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	var redisClient *cache.Redis
	connectRedis := func() (*cache.Redis, error) {
		if redisClient != nil {
			return redisClient, nil
		}
		r, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, r.Close)
		redisClient = r
		return r, nil
	}

	// 1. Counter store
	switch cfg.Store.Backend {
	case "memory":
		a.counters = memory.NewCounterRepository(nil)
	case "redis":
		r, err := connectRedis()
		if err != nil {
			a.Close()
			return nil, err
		}
		a.counters = cache.NewCounterRepository(r.Client(), cfg.Store.Key, log)
	case "postgres":
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := db.Migrate(context.Background()); err != nil {
			a.Close()
			return nil, err
		}
		a.counters = postgres.NewCounterRepository(db)
	default:
		a.counters = file.NewCounterRepository(cfg.Store.File, log)
	}

	// 2. Notifier
	var notifier repository.Notifier = mail.NewNop(log)
	if cfg.Mail.Enabled {
		n, err := mail.NewNotifier(&cfg.Mail, mail.NewSMTPTransport(&cfg.Mail), log)
		if err != nil {
			a.Close()
			return nil, err
		}
		notifier = n
	}

	// 3. Alert stream
	var opts []usecase.AlertOption
	if cfg.Stream.Enabled {
		r, err := connectRedis()
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, usecase.WithPublisher(
			redisRepo.NewStreamRepository(r.Client(), cfg.Stream.MaxLen, log),
			cfg.Stream.Name,
		))
	}

	a.alertUC = usecase.NewAlertUseCase(
		up42.NewClient(&cfg.Catalog, log),
		vector.NewReader(cfg.AOIPath(), log),
		file.NewReportRepository(cfg.Output.ReportDir, log),
		file.NewActivityLog(cfg.Output.LogFile),
		a.counters,
		notifier,
		domain.SearchDefaults{
			Host:          cfg.Catalog.Host,
			Collections:   cfg.Catalog.Collections,
			UsageType:     cfg.Catalog.UsageTypes,
			Limit:         cfg.Catalog.Limit,
			MaxCloudCover: cfg.Catalog.MaxCloudCover,
			SortBy:        cfg.Catalog.SortBy,
			Ascending:     cfg.Catalog.Ascending,
		},
		log,
		opts...,
	)

	log.Info("Components initialized",
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("mail_enabled", cfg.Mail.Enabled),
		zap.Bool("stream_enabled", cfg.Stream.Enabled))

	return a, nil
}

// register ensures the configured AOI has a counter entry.
func (a *app) register(ctx context.Context) error {
	aoi, err := a.alertUC.RegisterAOI(ctx)
	if err != nil {
		return err
	}
	a.log.Info("AOI registered", zap.String("aoi", aoi.FileName))
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error("Failed to close connection", zap.Error(err))
		}
	}
	a.closers = nil
}

func describe(err error) string {
	if usecase.IsPrecondition(err) {
		return fmt.Sprintf("%v (run `archive-alert register` first)", err)
	}
	return err.Error()
}
