package marketfs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/models"
)

type countingLoader struct {
	calls int
	bars  []models.EODBar
	err   error
}

func (c *countingLoader) Fetch(_ context.Context, _ string, _, _ time.Time) ([]models.EODBar, error) {
	c.calls++
	return c.bars, c.err
}

func newTestLoader(t *testing.T, upstream *countingLoader, ttl time.Duration, now *time.Time) *CachingLoader {
	t.Helper()
	l := NewCachingLoader(upstream, newTestStore(t), ttl, common.NewSilentLogger())
	l.now = func() time.Time { return *now }
	return l
}

func TestCachingLoader_HitWithinTTL(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	upstream := &countingLoader{bars: testBars(20)}
	l := newTestLoader(t, upstream, time.Hour, &now)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	first, err := l.Fetch(ctx, "BHP.AU", start, end)
	require.NoError(t, err)
	assert.Len(t, first, 20)

	now = now.Add(30 * time.Minute)
	second, err := l.Fetch(ctx, "BHP.AU", start, end)
	require.NoError(t, err)
	assert.Len(t, second, 20)
	assert.Equal(t, 1, upstream.calls)

	// Narrower range is served from the same snapshot
	narrow, err := l.Fetch(ctx, "BHP.AU", start.AddDate(0, 0, 10), end)
	require.NoError(t, err)
	assert.Len(t, narrow, 10)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachingLoader_ExpiredRefetches(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	upstream := &countingLoader{bars: testBars(5)}
	l := newTestLoader(t, upstream, time.Hour, &now)
	ctx := context.Background()

	start, end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	_, err := l.Fetch(ctx, "X", start, end)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = l.Fetch(ctx, "X", start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachingLoader_WiderRangeRefetches(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	upstream := &countingLoader{bars: testBars(5)}
	l := newTestLoader(t, upstream, time.Hour, &now)
	ctx := context.Background()

	start, end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	_, err := l.Fetch(ctx, "X", start, end)
	require.NoError(t, err)

	_, err = l.Fetch(ctx, "X", start.AddDate(0, 0, -30), end)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachingLoader_ZeroTTLDisablesReads(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	upstream := &countingLoader{bars: testBars(5)}
	l := newTestLoader(t, upstream, 0, &now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Fetch(ctx, "X", time.Time{}, now)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, upstream.calls)
}

func TestCachingLoader_UpstreamError(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	boom := errors.New("upstream down")
	l := newTestLoader(t, &countingLoader{err: boom}, time.Hour, &now)

	_, err := l.Fetch(context.Background(), "X", time.Time{}, now)
	assert.ErrorIs(t, err, boom)

	_, err = l.store.GetSeries(context.Background(), "X")
	assert.ErrorIs(t, err, ErrNotFound, "failures are not cached")
}
