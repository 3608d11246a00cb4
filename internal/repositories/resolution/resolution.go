package resolution

import (
	"context"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=resolution.go -destination=mocks/mock.go

// Repository stores the resolution audit trail.
type Repository interface {
	// Create appends a history entry
	Create(ctx context.Context, entry domain.Resolution) error

	// CountByContentID returns how many times a content id has been resolved
	CountByContentID(ctx context.Context, contentID string) (int64, error)

	// CleanupOldRecords deletes entries older than the given duration
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
