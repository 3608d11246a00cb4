package resolution

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/orgball2608/douyin-parser/internal/repositories"
	"github.com/orgball2608/douyin-parser/pkg/logger"
)

const table = "resolutions"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ResolutionRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create adds a new history entry
func (p *Pgx) Create(ctx context.Context, entry domain.Resolution) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("share_url", "content_id", "kind", "media_count", "error_code", "created_at").
		Values(entry.ShareURL, entry.ContentID, string(entry.Kind), entry.MediaCount, entry.ErrorCode, time.Now()).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

// CountByContentID returns the number of entries for a content id
func (p *Pgx) CountByContentID(ctx context.Context, contentID string) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"content_id": contentID}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CleanupOldRecords deletes entries older than the specified duration
func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("Deleted old resolution entries", "rows", result.RowsAffected(), "cutoff", cutoff)
	return result.RowsAffected(), nil
}
