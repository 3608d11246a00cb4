package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/douyin-parser/internal/repositories/resolution"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"go.uber.org/fx"
)

const jobTimeout = 5 * time.Minute

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
	Repo   resolution.Repository
}

// Scheduler periodically trims the resolution history.
type Scheduler struct {
	scheduler gocron.Scheduler
	repo      resolution.Repository
	retention time.Duration
	logger    logger.Logger
}

func New(opts Opts) (*Scheduler, error) {
	s := &Scheduler{
		repo:      opts.Repo,
		retention: opts.Config.History.Retention,
		logger:    opts.Logger.WithComponent("HistoryCleanup"),
	}

	if !opts.Config.HistoryEnabled() {
		s.logger.Info("History disabled, cleanup job not scheduled")
		return s, nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(opts.Config.Location()))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(opts.Config.History.CleanupCron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			if _, err := s.Run(ctx); err != nil {
				s.logger.Error("Failed to clean up resolution history", "error", err)
			}
		}),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule history cleanup: %w", err)
	}
	s.scheduler = scheduler

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.logger.Info("Starting history cleanup scheduler", "cron", opts.Config.History.CleanupCron, "retention", s.retention.String())
			scheduler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			s.logger.Info("Stopping history cleanup scheduler")
			return scheduler.Shutdown()
		},
	})

	return s, nil
}

// Run deletes entries older than the retention window.
func (s *Scheduler) Run(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	s.logger.Info("Starting history cleanup")

	rows, err := s.repo.CleanupOldRecords(ctx, s.retention)
	if err != nil {
		return 0, err
	}

	s.logger.Info("History cleanup completed", "rows_deleted", rows)
	return rows, nil
}
