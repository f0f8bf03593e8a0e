package dataflow_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_management_sample/employeeapi/pkg/dataflow"
)

type row struct {
	ID   string
	Name string
}

func TestPipelineWithRetry(t *testing.T) {
	ctx := context.Background()

	source := dataflow.From(ctx, "1,Alice", "2,Bob", "retry,Charlie", "broken")

	var dropped int32
	parsed := dataflow.Map(ctx, source, func(s string) (row, error) {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return row{}, fmt.Errorf("invalid format %q", s)
		}
		return row{ID: parts[0], Name: parts[1]}, nil
	}, dataflow.WithWorkers(2), dataflow.WithErrorHandler(func(error) bool {
		atomic.AddInt32(&dropped, 1)
		return true
	}))

	var attempts int32
	saved := dataflow.Map(ctx, parsed, func(r row) (row, error) {
		if r.ID == "retry" && atomic.AddInt32(&attempts, 1) < 3 {
			return row{}, errors.New("transient error")
		}
		return r, nil
	}, dataflow.WithRetry(3, func(int) time.Duration { return time.Millisecond }))

	results, err := dataflow.Collect(ctx, saved)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, int32(1), atomic.LoadInt32(&dropped))
}

func TestFilter(t *testing.T) {
	ctx := context.Background()

	even := dataflow.Filter(ctx, dataflow.From(ctx, 1, 2, 3, 4, 5, 6), func(n int) bool { return n%2 == 0 })
	got, err := dataflow.Collect(ctx, even)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, got)
}

func TestForEachReturnsFirstUnhandledError(t *testing.T) {
	ctx := context.Background()

	var calls int32
	err := dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3), func(n int) error {
		atomic.AddInt32(&calls, 1)
		if n == 2 {
			return errors.New("bad item")
		}
		return nil
	}, dataflow.WithRetry(1, nil))

	assert.EqualError(t, err, "bad item")
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestForEachHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dataflow.ForEach(ctx, make(dataflow.Stream[int]), func(int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExponentialBackoff(t *testing.T) {
	b := dataflow.ExponentialBackoff(100*time.Millisecond, time.Second)

	assert.Equal(t, 100*time.Millisecond, b(1))
	assert.Equal(t, 200*time.Millisecond, b(2))
	assert.Equal(t, 800*time.Millisecond, b(4))
	assert.Equal(t, time.Second, b(5))
	assert.Equal(t, time.Second, b(30))
}
