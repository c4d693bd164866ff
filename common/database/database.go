package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
}

type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

// clientOptions builds the driver options from a DSN of the form
// clickhouse://host:9000/db?dial_timeout=10s. Explicit credentials and pool
// sizes override the DSN.
func clientOptions(opts Options) (*clickhouse.Options, error) {
	parsed, err := clickhouse.ParseDSN(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clickhouse dsn: %w", err)
	}

	if opts.Database != "" {
		parsed.Auth.Database = opts.Database
	}
	if opts.Username != "" {
		parsed.Auth.Username = opts.Username
	}
	if opts.Password != "" {
		parsed.Auth.Password = opts.Password
	}
	if opts.MaxOpenConns > 0 {
		parsed.MaxOpenConns = opts.MaxOpenConns
	}
	if opts.MaxIdleConns > 0 {
		parsed.MaxIdleConns = opts.MaxIdleConns
	}
	if opts.ConnMaxLifetime > 0 {
		parsed.ConnMaxLifetime = opts.ConnMaxLifetime
	}
	if parsed.Settings == nil {
		parsed.Settings = clickhouse.Settings{}
	}
	parsed.Settings["max_execution_time"] = 60

	return parsed, nil
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	clientOpts, err := clientOptions(opts)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("Connected to ClickHouse",
		zap.Strings("addr", clientOpts.Addr),
		zap.String("database", clientOpts.Auth.Database),
	)

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}
