package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"aijobs/common/database"
	"aijobs/common/database/schema"
	"aijobs/common/database/schema/migrations"
	"aijobs/services/dashboard/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.ClickHouseDSN == "" {
		logger.Fatal("CLICKHOUSE_DSN is required")
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)

	if len(os.Args) > 1 && os.Args[1] == "down" {
		all := migrations.All()
		last := all[len(all)-1]
		if err := migrator.RollbackMigration(ctx, last); err != nil {
			logger.Fatal("Failed to roll back migration", zap.Int("version", last.Version), zap.Error(err))
		}
		logger.Info("Rolled back migration", zap.Int("version", last.Version))
		return
	}

	applied, err := migrator.Migrate(ctx, migrations.All())
	if err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("All migrations completed successfully", zap.Int("applied", applied))
}
