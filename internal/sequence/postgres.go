package sequence

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	SourcePostgres = "postgres"

	orderNumberSequence = "order_number_seq"
)

// NewPostgresAllocator draws numbers from the order_number_seq database sequence.
func NewPostgresAllocator(db *gorm.DB, prefix string, timeout time.Duration, metrics allocationRecorder) Allocator {
	return &allocator{
		source:  SourcePostgres,
		prefix:  prefix,
		timeout: timeout,
		metrics: metrics,
		next: func(ctx context.Context) (int64, error) {
			var n int64
			err := db.WithContext(ctx).Raw("SELECT nextval(?)", orderNumberSequence).Scan(&n).Error
			return n, err
		},
	}
}
