// Package sequence allocates human-readable order numbers.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Allocator hands out order numbers. Each call returns a number never
// returned before; gaps are allowed.
type Allocator interface {
	Next(ctx context.Context) (string, error)
	Source() string
}

type allocationRecorder interface {
	IncOrderNumberAllocation(source string, ok bool)
}

// numberWidth keeps order numbers sorting as strings up to ten billion orders.
const numberWidth = 10

// Format renders a counter value as an order number.
func Format(prefix string, n int64) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return fmt.Sprintf("%0*d", numberWidth, n)
	}
	return fmt.Sprintf("%s-%0*d", prefix, numberWidth, n)
}

type counterFunc func(ctx context.Context) (int64, error)

type allocator struct {
	source  string
	prefix  string
	next    counterFunc
	timeout time.Duration
	metrics allocationRecorder
}

func (a *allocator) Source() string {
	return a.source
}

func (a *allocator) Next(ctx context.Context) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	n, err := a.next(ctx)
	if err == nil && n <= 0 {
		err = fmt.Errorf("%s counter returned non-positive value %d", a.source, n)
	}
	if a.metrics != nil {
		a.metrics.IncOrderNumberAllocation(a.source, err == nil)
	}
	if err != nil {
		return "", fmt.Errorf("allocate order number from %s: %w", a.source, err)
	}
	return Format(a.prefix, n), nil
}
