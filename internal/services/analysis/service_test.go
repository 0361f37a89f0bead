package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/trendscore/internal/analytics"
	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/models"
)

type fetchCall struct {
	symbol     string
	start, end time.Time
}

type fakeLoader struct {
	mu     sync.Mutex
	series map[string][]models.EODBar
	errs   map[string]error
	calls  []fetchCall
	delay  time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeLoader) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.EODBar, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{symbol, start, end})
	bars, err := f.series[symbol], f.errs[symbol]
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return append([]models.EODBar(nil), bars...), nil
}

var fixedNow = time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC)

func trendBars(n int, start, step float64) []models.EODBar {
	first := fixedNow.Truncate(24*time.Hour).AddDate(0, 0, -(n - 1))
	bars := make([]models.EODBar, n)
	for i := range bars {
		c := start + step*float64(i)
		bars[i] = models.EODBar{
			Date:   first.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000 + int64(i),
		}
	}
	return bars
}

func newTestService(loader *fakeLoader, concurrency int) *Service {
	cfg := common.NewDefaultConfig().Analysis
	cfg.Concurrency = concurrency
	svc := NewService(loader, cfg, common.NewSilentLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAnalyzeAsset_RequestsLookbackRange(t *testing.T) {
	loader := &fakeLoader{series: map[string][]models.EODBar{"BHP.AU": trendBars(300, 40, 0.1)}}
	svc := newTestService(loader, 2)

	result, err := svc.AnalyzeAsset(context.Background(), "BHP.AU", 30)
	require.NoError(t, err)
	assert.Equal(t, "BHP.AU", result.Symbol)
	assert.Equal(t, 30, result.WindowDays)

	require.Len(t, loader.calls, 1)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.True(t, loader.calls[0].end.Equal(end))
	assert.True(t, loader.calls[0].start.Equal(end.AddDate(0, 0, -analytics.LookbackDays(30))))
}

func TestAnalyzeAsset_DefaultWindow(t *testing.T) {
	loader := &fakeLoader{series: map[string][]models.EODBar{"X": trendBars(100, 10, 0.2)}}
	svc := newTestService(loader, 1)

	result, err := svc.AnalyzeAsset(context.Background(), "X", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, result.WindowDays)
}

func TestAnalyzeAsset_InvalidWindow(t *testing.T) {
	loader := &fakeLoader{}
	svc := newTestService(loader, 1)

	_, err := svc.AnalyzeAsset(context.Background(), "X", 400)
	assert.ErrorIs(t, err, analytics.ErrInvalidWindow)
	assert.Empty(t, loader.calls, "invalid window never reaches the loader")
}

func TestAnalyzeAsset_CleansSeries(t *testing.T) {
	bars := trendBars(60, 10, 0.5)
	// Reverse order, plus an invalid bar the engine must never see
	reversed := make([]models.EODBar, 0, len(bars)+1)
	for i := len(bars) - 1; i >= 0; i-- {
		reversed = append(reversed, bars[i])
	}
	bad := bars[10]
	bad.Volume = 0
	bad.Date = bad.Date.AddDate(-1, 0, 0)
	reversed = append(reversed, bad)

	loader := &fakeLoader{series: map[string][]models.EODBar{"X": reversed}}
	result, err := newTestService(loader, 1).AnalyzeAsset(context.Background(), "X", 7)
	require.NoError(t, err)

	assert.Equal(t, 60, result.DataPoints)
	assert.True(t, result.DateRange.Start.Equal(bars[0].Date))
	assert.Equal(t, bars[59].Close, result.CurrentPrice)
}

func TestAnalyzeAsset_NoData(t *testing.T) {
	loader := &fakeLoader{series: map[string][]models.EODBar{"EMPTY": nil}}
	_, err := newTestService(loader, 1).AnalyzeAsset(context.Background(), "EMPTY", 30)
	assert.True(t, analytics.IsNoData(err))
}

func TestAnalyzeAsset_LoaderError(t *testing.T) {
	boom := errors.New("provider unavailable")
	loader := &fakeLoader{errs: map[string]error{"X": boom}}
	_, err := newTestService(loader, 1).AnalyzeAsset(context.Background(), "X", 30)
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeAssets_PreservesOrderAndIsolatesFailures(t *testing.T) {
	loader := &fakeLoader{
		series: map[string][]models.EODBar{
			"UP":   trendBars(200, 50, 0.5),
			"DOWN": trendBars(200, 150, -0.5),
		},
		errs: map[string]error{"BAD": errors.New("unknown symbol")},
	}
	svc := newTestService(loader, 3)

	out, err := svc.AnalyzeAssets(context.Background(), []string{"UP", "BAD", "MISSING", "DOWN"}, 30)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "UP", out[0].Symbol)
	require.NotNil(t, out[0].Result)
	assert.Empty(t, out[0].Error)

	assert.Equal(t, "BAD", out[1].Symbol)
	assert.Nil(t, out[1].Result)
	assert.Contains(t, out[1].Error, "unknown symbol")

	assert.Equal(t, "MISSING", out[2].Symbol)
	assert.Nil(t, out[2].Result)
	assert.NotEmpty(t, out[2].Error)

	assert.Equal(t, "DOWN", out[3].Symbol)
	require.NotNil(t, out[3].Result)
	assert.Greater(t, out[0].Result.TrendScore, out[3].Result.TrendScore)
}

func TestAnalyzeAssets_MatchesSingleAssetResults(t *testing.T) {
	series := map[string][]models.EODBar{}
	symbols := make([]string, 8)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("S%d", i)
		series[symbols[i]] = trendBars(150+i*10, 50+float64(i), 0.05*float64(i-4))
	}
	loader := &fakeLoader{series: series}
	svc := newTestService(loader, 4)

	batch, err := svc.AnalyzeAssets(context.Background(), symbols, 14)
	require.NoError(t, err)

	for i, symbol := range symbols {
		single, err := svc.AnalyzeAsset(context.Background(), symbol, 14)
		require.NoError(t, err)
		assert.Equal(t, single, batch[i].Result, symbol)
	}
}

func TestAnalyzeAssets_RespectsConcurrencyLimit(t *testing.T) {
	series := map[string][]models.EODBar{}
	symbols := make([]string, 12)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("S%d", i)
		series[symbols[i]] = trendBars(40, 10, 0.1)
	}
	loader := &fakeLoader{series: series, delay: 20 * time.Millisecond}

	out, err := newTestService(loader, 3).AnalyzeAssets(context.Background(), symbols, 7)
	require.NoError(t, err)
	assert.Len(t, out, 12)
	assert.LessOrEqual(t, loader.maxInFlight.Load(), int32(3))
}

func TestAnalyzeAssets_Cancelled(t *testing.T) {
	loader := &fakeLoader{
		series: map[string][]models.EODBar{"A": trendBars(40, 10, 0.1), "B": trendBars(40, 10, 0.1)},
		delay:  time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := newTestService(loader, 2).AnalyzeAssets(ctx, []string{"A", "B"}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 2)
	for _, a := range out {
		assert.Nil(t, a.Result)
		assert.NotEmpty(t, a.Error)
	}
}

func TestAnalyzeAssets_InvalidWindow(t *testing.T) {
	_, err := newTestService(&fakeLoader{}, 1).AnalyzeAssets(context.Background(), []string{"A"}, -1)
	assert.ErrorIs(t, err, analytics.ErrInvalidWindow)
}
