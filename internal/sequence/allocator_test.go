package sequence

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	mu  sync.Mutex
	n   int64
	err error
	key string
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = key
	if f.err != nil {
		return 0, f.err
	}
	f.n++
	return f.n, nil
}

func (f *fakeCounter) CounterKey(name string) string {
	return "portal:counter:" + name
}

type allocations struct {
	ok, failed int
}

func (a *allocations) IncOrderNumberAllocation(_ string, ok bool) {
	if ok {
		a.ok++
		return
	}
	a.failed++
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "EON-0000000042", Format("EON", 42))
	assert.Equal(t, "EON-0001234567", Format(" EON ", 1234567))
	assert.Equal(t, "0000000007", Format("", 7))
}

func TestFormatSortsAsStrings(t *testing.T) {
	counters := []int64{999999, 1000000, 7, 12345678}
	numbers := make([]string, 0, len(counters))
	for _, n := range counters {
		numbers = append(numbers, Format("EON", n))
	}
	sort.Strings(numbers)
	assert.Equal(t, []string{
		"EON-0000000007",
		"EON-0000999999",
		"EON-0001000000",
		"EON-0012345678",
	}, numbers)
}

func TestRedisAllocatorIsUniqueUnderConcurrency(t *testing.T) {
	counter := &fakeCounter{}
	rec := &allocations{}
	alloc := NewRedisAllocator(counter, "EON", time.Second, nil)

	const workers = 50
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := alloc.Next(context.Background())
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]struct{}{}
	for n := range results {
		_, dup := seen[n]
		assert.False(t, dup, "duplicate order number %s", n)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, "portal:counter:order_number", counter.key)
	assert.Equal(t, SourceRedis, alloc.Source())
	assert.Zero(t, rec.ok)
}

func TestRedisAllocatorFailure(t *testing.T) {
	counter := &fakeCounter{err: errors.New("connection refused")}
	rec := &allocations{}
	alloc := NewRedisAllocator(counter, "EON", 0, rec)

	_, err := alloc.Next(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, rec.failed)
}

func TestAllocatorRejectsNonPositiveCounter(t *testing.T) {
	rec := &allocations{}
	alloc := &allocator{source: "test", prefix: "EON", metrics: rec, next: func(context.Context) (int64, error) { return 0, nil }}

	_, err := alloc.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, rec.failed)
}
