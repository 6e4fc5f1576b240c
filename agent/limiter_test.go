package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchLimiter_SpacesCalls(t *testing.T) {
	const interval = 50 * time.Millisecond
	l := newSearchLimiter(interval)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	first := time.Since(start)
	require.NoError(t, l.Wait(ctx))
	second := time.Since(start)

	assert.Less(t, first, interval, "first call should not wait")
	assert.GreaterOrEqual(t, second, interval, "second call waits out the interval")
}

func TestSearchLimiter_ZeroIntervalNeverBlocks(t *testing.T) {
	l := newSearchLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestSearchLimiter_CanceledContext(t *testing.T) {
	l := newSearchLimiter(time.Minute)
	ctx := context.Background()
	require.NoError(t, l.Wait(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, l.Wait(canceled))
}
