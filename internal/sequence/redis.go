package sequence

import (
	"context"
	"time"
)

const (
	SourceRedis = "redis"

	orderNumberCounter = "order_number"
)

type counterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	CounterKey(name string) string
}

// NewRedisAllocator draws numbers from an atomic Redis counter.
func NewRedisAllocator(store counterStore, prefix string, timeout time.Duration, metrics allocationRecorder) Allocator {
	key := store.CounterKey(orderNumberCounter)
	return &allocator{
		source:  SourceRedis,
		prefix:  prefix,
		timeout: timeout,
		metrics: metrics,
		next: func(ctx context.Context) (int64, error) {
			return store.Incr(ctx, key)
		},
	}
}
