package resolution

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("resolution_repository",
	fx.Provide(
		func(pg *pgxpool.Pool, log logger.Logger) Repository {
			if pg == nil {
				log.Info("Postgres not configured, resolution history disabled")
				return NewNop()
			}
			return NewPgx(pg, log)
		},
	),
)
