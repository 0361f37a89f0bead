package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/trendscore/internal/analytics"
)

// WarmCache pre-fetches the lookback for window into the series cache so later
// analyses are served locally. It returns how many symbols were fetched.
func (a *App) WarmCache(ctx context.Context, symbols []string, window int) (int, error) {
	if window == 0 {
		window = a.Config.Analysis.DefaultWindow
	}
	if err := analytics.ValidateWindow(window); err != nil {
		return 0, err
	}

	start := time.Now()
	end := time.Now().UTC().Truncate(24 * time.Hour)
	from := analytics.LookbackStart(end, window)

	ok := make([]bool, len(symbols))
	var g errgroup.Group
	g.SetLimit(a.Config.Analysis.Concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if _, err := a.Loader.Fetch(ctx, symbol, from, end); err != nil {
				a.Logger.Warn().Err(err).Str("symbol", symbol).Msg("Warm cache: fetch failed")
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	warmed := 0
	for _, v := range ok {
		if v {
			warmed++
		}
	}
	a.Logger.Info().
		Int("warmed", warmed).
		Int("symbols", len(symbols)).
		Dur("elapsed", time.Since(start)).
		Msg("Warm cache: complete")
	return warmed, ctx.Err()
}
