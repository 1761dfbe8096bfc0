package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dock-allocation-service/internal/adapters/matrix"
	"dock-allocation-service/internal/adapters/publisher"
	"dock-allocation-service/internal/adapters/repositories"
	"dock-allocation-service/internal/adapters/solver"
	"dock-allocation-service/internal/config"
	"dock-allocation-service/internal/platform/db"
	"dock-allocation-service/internal/platform/obs"
	"dock-allocation-service/internal/ports"
	"dock-allocation-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds the allocator and the adapters chosen by configuration:
// Postgres or in-memory reports, Redis or log-only events, static or ORS
// travel times.
type App struct {
	Allocator *services.Allocator
	Reports   ports.ReportRepository
	Defaults  services.RunAllocationRequest
	Metrics   *obs.Metrics

	db  *sql.DB
	rdb *redis.Client
}

func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (_ *App, err error) {
	log := zerolog.Ctx(ctx)
	a := &App{Defaults: Request(cfg)}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	if a.Metrics, err = obs.NewMetrics(reg); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	if cfg.Database.URL != "" {
		if a.db, err = db.Open(cfg.Database.URL); err != nil {
			return nil, err
		}
		if err = repositories.InitSchema(ctx, a.db); err != nil {
			return nil, err
		}
		a.Reports = repositories.NewPostgresReportRepository(a.db)
		log.Info().Msg("reports stored in postgres")
	} else {
		a.Reports = repositories.NewMemoryReportRepository()
		log.Info().Msg("reports kept in memory")
	}

	var pub ports.AllocationPublisher = publisher.LogPublisher{}
	var cache matrix.Cache
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		a.rdb = redis.NewClient(opt)
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		pub = publisher.NewRedisPublisher(a.rdb, cfg.Redis.Channel)
		cache = matrix.NewRedisCache(a.rdb, cfg.Matrix.CacheTTL)
		log.Info().Str("channel", cfg.Redis.Channel).Msg("publishing allocation events to redis")
	}

	var provider ports.TravelTimeProvider
	switch cfg.Matrix.Source {
	case config.SourceORS:
		provider, err = matrix.NewORSProvider(cfg.Matrix.ORSProviderConfig(), cache)
	default:
		provider, err = matrix.NewStaticProvider(cfg.Network.Matrix)
	}
	if err != nil {
		return nil, fmt.Errorf("travel times: %w", err)
	}

	a.Allocator = services.NewAllocator(solver.NewInsertionSolver(cfg.Solver), provider)
	a.Allocator.Reports = a.Reports
	a.Allocator.Publisher = pub
	a.Allocator.Metrics = a.Metrics
	return a, nil
}

// Request is the allocation run described by the configuration.
func Request(cfg *config.Config) services.RunAllocationRequest {
	order, _ := services.ParsePoolOrder(cfg.Pool.Order)
	return services.RunAllocationRequest{
		Companies:   cfg.Companies,
		Locations:   cfg.Network.Locations,
		Windows:     cfg.Network.Windows,
		Dock:        cfg.Dock.Location,
		Bounds:      cfg.Dock.Bounds(),
		MaxVehicles: cfg.Dock.MaxVehicles,
		PoolOrder:   order,
	}
}

func (a *App) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
