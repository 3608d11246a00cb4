package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/douyin-parser/internal/migrations"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"github.com/orgball2608/douyin-parser/pkg/retry"
	"github.com/pressly/goose/v3"
)

// Open connects to Postgres through lib/pq, retrying until it answers.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ping := func() error { return conn.PingContext(ctx) }
	if err := retry.Do(ctx, log, "PostgresPing", ping, retry.DefaultConfig()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	conn, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := Prepare(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Database migrations applied")
	return nil
}

// Prepare points goose at the embedded migrations.
func Prepare() error {
	goose.SetBaseFS(migrations.FS)
	return goose.SetDialect("postgres")
}
