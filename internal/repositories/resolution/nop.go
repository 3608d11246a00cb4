package resolution

import (
	"context"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

// Nop is used when no Postgres is configured.
type Nop struct{}

func NewNop() Nop { return Nop{} }

var _ Repository = Nop{}

func (Nop) Create(context.Context, domain.Resolution) error { return nil }

func (Nop) CountByContentID(context.Context, string) (int64, error) { return 0, nil }

func (Nop) CleanupOldRecords(context.Context, time.Duration) (int64, error) { return 0, nil }
