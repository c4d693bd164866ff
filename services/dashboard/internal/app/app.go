// Package app wires the dashboard commands with fx.
package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"aijobs/common/cache"
	"aijobs/common/cache/redis"
	"aijobs/common/database"
	"aijobs/common/telemetry"
	"aijobs/services/dashboard/internal/config"
	"aijobs/services/dashboard/internal/events"
	"aijobs/services/dashboard/internal/processor"
	"aijobs/services/dashboard/internal/snapshot"
	"aijobs/services/dashboard/internal/warehouse"
)

const (
	ServiceName    = "aijobs-dashboard"
	ServiceVersion = "1.0.0"
)

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newWarehouse(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (warehouse.Sink, error) {
	if cfg.ClickHouseDSN == "" {
		logger.Info("ClickHouse not configured, warehouse load disabled")
		return warehouse.NopSink{}, nil
	}

	db, err := database.New(context.Background(), database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})
	return warehouse.NewClickHouseSink(db.Conn(), logger), nil
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	publisher, err := events.NewPublisher(logger, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher, nil
}

func newSnapshots(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (snapshot.Store, error) {
	if cfg.RedisAddr == "" {
		logger.Info("Redis not configured, run snapshots disabled")
		return snapshot.NopStore{}, nil
	}

	c, err := redis.New(context.Background(), cache.Options{
		DefaultTTL: cfg.CacheTTL,
		Addr:       cfg.RedisAddr,
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return c.Close() },
	})
	return snapshot.NewCacheStore(c, cfg.CacheTTL, logger), nil
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	shutdown, err := telemetry.InitTracer(context.Background(), ServiceName, ServiceVersion, cfg.OTELCollectorURL)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			shutdown()
			return nil
		},
	})
	return nil
}

// Module provides the configuration, the optional sinks and the processor.
// configure, when set, adjusts the loaded configuration.
func Module(configure func(*config.Config)) fx.Option {
	return fx.Options(
		fx.Provide(
			func() (*config.Config, error) {
				cfg, err := config.LoadConfig()
				if err != nil {
					return nil, err
				}
				if configure != nil {
					configure(cfg)
				}
				return cfg, nil
			},
			newLogger,
			newWarehouse,
			newPublisher,
			newSnapshots,
			processor.NewProcessor,
		),
		fx.Invoke(initTracing),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	)
}

// Run starts the application, runs fn with the processor until it returns or
// the process is interrupted, then stops the application.
func Run(configure func(*config.Config), fn func(ctx context.Context, p *processor.Processor, logger *zap.Logger) error) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	var (
		p      *processor.Processor
		logger *zap.Logger
	)
	app := fx.New(Module(configure), fx.Populate(&p, &logger))

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := fn(ctx, p, logger)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
