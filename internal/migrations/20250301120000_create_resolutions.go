package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateResolutions, downCreateResolutions)
}

func upCreateResolutions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS resolutions (
			id          SERIAL PRIMARY KEY,
			share_url   TEXT NOT NULL,
			content_id  VARCHAR(64) NOT NULL DEFAULT '',
			kind        VARCHAR(16) NOT NULL DEFAULT '',
			media_count INTEGER NOT NULL DEFAULT 0,
			error_code  VARCHAR(32) NOT NULL DEFAULT '',
			created_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func downCreateResolutions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS resolutions;`)
	return err
}
