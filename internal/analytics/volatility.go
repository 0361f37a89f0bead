package analytics

import (
	"math"

	"github.com/bobmcallan/trendscore/internal/models"
)

// rollingStdDev returns the sample standard deviation of every full window of xs.
// The result is empty when xs is shorter than the window.
func rollingStdDev(xs []float64, window int) []float64 {
	if window < 2 || len(xs) < window {
		return nil
	}
	out := make([]float64, 0, len(xs)-window+1)
	for i := window; i <= len(xs); i++ {
		out = append(out, stdDev(xs[i-window:i]))
	}
	return out
}

// AnalyzeVolatility measures realized return volatility and where the current
// rolling volatility sits in its own history.
func AnalyzeVolatility(bars []models.EODBar, cfg VolatilityConfig) (*models.VolatilityAnalysis, error) {
	if len(bars) < 2 {
		return nil, ErrInsufficientData
	}
	returns := pctChange(closes(bars))

	daily := stdDev(returns)
	annualized := daily * math.Sqrt(cfg.TradingDays)

	rolling := rollingStdDev(returns, cfg.RollingWindow)
	current := daily
	historical := daily
	if len(rolling) > 0 {
		current = rolling[len(rolling)-1]
		historical = mean(rolling)
	}
	recent := current
	if len(rolling) >= cfg.TrendBars {
		recent = mean(tail(rolling, cfg.TrendBars))
	}

	trendCmp := compareLevels(recent, historical)
	trend := models.VolatilityDecreasing
	if trendCmp > 0 {
		trend = models.VolatilityIncreasing
	}

	percentile := 50.0
	if len(rolling) >= 2 {
		lo, hi := minOf(rolling), maxOf(rolling)
		if hi > lo {
			percentile = clamp((current-lo)/(hi-lo)*100, 0, 100)
		}
	}

	ranges := make([]float64, len(bars))
	for i, b := range bars {
		ranges[i] = (b.High - b.Low) / b.Close
	}

	out := &models.VolatilityAnalysis{
		DailyVolatility:      round(daily*100, 4),
		AnnualizedVolatility: round(annualized*100, 2),
		CurrentVolatility:    round(current*100, 4),
		VolatilityTrend:      trend,
		VolatilityTrendTie:   trendCmp == 0,
		AverageDailyRange:    round(mean(ranges)*100, 2),
		VolatilityPercentile: round(percentile, 1),
	}
	if err := checkFinite(out.DailyVolatility, out.AnnualizedVolatility, out.CurrentVolatility,
		out.AverageDailyRange, out.VolatilityPercentile); err != nil {
		return nil, err
	}
	return out, nil
}
