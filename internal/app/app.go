package app

import (
	"context"

	"github.com/orgball2608/douyin-parser/internal/cleanup"
	"github.com/orgball2608/douyin-parser/internal/db"
	"github.com/orgball2608/douyin-parser/internal/fetcher"
	"github.com/orgball2608/douyin-parser/internal/fetcher/fetcherimpl"
	"github.com/orgball2608/douyin-parser/internal/metrics"
	"github.com/orgball2608/douyin-parser/internal/ratelimit"
	repositories "github.com/orgball2608/douyin-parser/internal/repositories/fx"
	"github.com/orgball2608/douyin-parser/internal/resolver"
	"github.com/orgball2608/douyin-parser/internal/resolver/resolverimpl"
	"github.com/orgball2608/douyin-parser/internal/server"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"github.com/orgball2608/douyin-parser/pkg/pgx"
	"go.uber.org/fx"
)

// Core wires everything needed to resolve a share link.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		metrics.NewRegistry,
		metrics.New,
		pgx.New,
	),
	repositories.Module,
	fx.Provide(
		fx.Annotate(
			fetcherimpl.New,
			fx.As(new(fetcher.Client)),
		),
		fx.Annotate(
			resolverimpl.New,
			fx.As(new(resolver.Client)),
		),
	),
)

// App is the long-running HTTP service.
var App = fx.Options(
	Core,
	fx.Provide(
		func(cfg *config.Config) ratelimit.Limiter {
			return ratelimit.NewInMemoryLimiter(cfg.HTTP.RateRequests, cfg.HTTP.RatePer, cfg.HTTP.RateBurst)
		},
		server.New,
		cleanup.New,
	),
	fx.Invoke(migrate),
	fx.Invoke(
		func(*server.Server, *cleanup.Scheduler) {},
	),
)

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	if !cfg.HistoryEnabled() {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Migrate(ctx, cfg, log)
		},
	})
}
