package resolution_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/orgball2608/douyin-parser/internal/repositories/resolution"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModule_NilPoolUsesNop(t *testing.T) {
	var repo resolution.Repository

	app := fxtest.New(t,
		fx.Provide(
			func() logger.Logger { return logger.Nop() },
			func() *pgxpool.Pool { return nil },
		),
		resolution.Module,
		fx.Populate(&repo),
	)
	app.RequireStart()
	defer app.RequireStop()

	if _, ok := repo.(resolution.Nop); !ok {
		t.Fatalf("repo = %T, want resolution.Nop", repo)
	}

	ctx := context.Background()
	if err := repo.Create(ctx, domain.Resolution{ShareURL: "https://v.douyin.com/x/"}); err != nil {
		t.Errorf("Create() error = %v", err)
	}
	if n, err := repo.CountByContentID(ctx, "1"); err != nil || n != 0 {
		t.Errorf("CountByContentID() = %d, %v", n, err)
	}
	if n, err := repo.CleanupOldRecords(ctx, time.Hour); err != nil || n != 0 {
		t.Errorf("CleanupOldRecords() = %d, %v", n, err)
	}
}
