package usage

import (
	"context"
	"time"

	"visioneer-server/internal/domain/query"
)

// Repository defines storage operations for usage records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*Record, int64, error)
	SummarizeByUserID(ctx context.Context, userID uint) ([]*Summary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
