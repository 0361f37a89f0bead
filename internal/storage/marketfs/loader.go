package marketfs

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/interfaces"
	"github.com/bobmcallan/trendscore/internal/models"
)

// CachingLoader serves series from a SeriesStore while the stored snapshot is
// fresh and covers the requested range, and falls through to the upstream
// loader otherwise. Cache failures never fail a fetch.
type CachingLoader struct {
	upstream interfaces.SeriesLoader
	store    interfaces.SeriesStore
	ttl      time.Duration
	now      func() time.Time
	logger   *common.Logger
}

var _ interfaces.SeriesLoader = (*CachingLoader)(nil)

// NewCachingLoader wraps upstream with store. A ttl of zero disables reads.
func NewCachingLoader(upstream interfaces.SeriesLoader, store interfaces.SeriesStore, ttl time.Duration, logger *common.Logger) *CachingLoader {
	return &CachingLoader{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Fetch returns bars in [start, end] from cache or upstream
func (l *CachingLoader) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.EODBar, error) {
	snap, err := l.store.GetSeries(ctx, symbol)
	switch {
	case err == nil:
		if common.IsFresh(snap.FetchedAt, l.now(), l.ttl) && snap.Covers(start, end) {
			l.logger.Debug().Str("symbol", symbol).Msg("Series cache hit")
			return snap.Between(start, end), nil
		}
	case !errors.Is(err, ErrNotFound):
		l.logger.Warn().Err(err).Str("symbol", symbol).Msg("Series cache read failed")
	}

	bars, err := l.upstream.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	fresh := &models.SeriesSnapshot{
		Symbol:    symbol,
		From:      start,
		To:        end,
		Bars:      bars,
		FetchedAt: l.now(),
	}
	if err := l.store.SaveSeries(ctx, fresh); err != nil {
		l.logger.Warn().Err(err).Str("symbol", symbol).Msg("Series cache write failed")
	}
	return bars, nil
}
