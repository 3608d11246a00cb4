package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upIndexResolutions, downIndexResolutions)
}

func upIndexResolutions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_resolutions_content_id ON resolutions (content_id);
		CREATE INDEX IF NOT EXISTS idx_resolutions_created_at ON resolutions (created_at);
	`)
	return err
}

func downIndexResolutions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS idx_resolutions_content_id;
		DROP INDEX IF EXISTS idx_resolutions_created_at;
	`)
	return err
}
