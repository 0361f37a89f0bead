package analytics

import (
	"github.com/bobmcallan/trendscore/internal/models"
)

// momentumLag picks how far back a momentum horizon reaches. Series only a little
// longer than the horizon use a fraction of their length instead.
type momentumLag struct {
	horizon  int
	num, den int
}

func (m momentumLag) value(prices []float64) float64 {
	n := len(prices)
	if m.horizon <= 0 || n < m.horizon {
		return 0
	}
	lag := min(m.horizon, n*m.num/m.den)
	if lag < 1 {
		return 0
	}
	return relChange(prices[n-lag], prices[n-1])
}

// AnalyzePrice computes returns, momentum and how the decision window compares
// with the rest of the supplied history.
func AnalyzePrice(bars []models.EODBar, window int, cfg PriceConfig) (*models.PriceAnalysis, error) {
	prices := closes(bars)
	n := len(prices)
	if n == 0 {
		return nil, ErrInsufficientData
	}
	if window < 1 {
		window = 1
	}

	recent := tail(prices, window)
	decisionChange := relChange(recent[0], recent[len(recent)-1])
	fullChange := relChange(prices[0], prices[n-1])

	// Non-overlapping blocks of the full history, each a candidate "period like this one"
	block := max(window, cfg.MinBlockBars)
	var blockReturns []float64
	for i := 0; i < n-block; i += block {
		seg := prices[i : i+block]
		blockReturns = append(blockReturns, relChange(seg[0], seg[len(seg)-1]))
	}

	percentile := 50.0
	recentVsHistorical := 0.0
	if len(blockReturns) > 0 {
		below := 0
		for _, r := range blockReturns {
			if r < decisionChange {
				below++
			}
		}
		percentile = float64(below) / float64(len(blockReturns)) * 100
		recentVsHistorical = decisionChange - mean(blockReturns)
	}

	recentAvg := mean(recent)
	historicalAvg := recentAvg
	if n > window {
		historicalAvg = mean(prices[:n-window])
	}
	// Equal means resolve to bearish
	trendCmp := compareLevels(recentAvg, historicalAvg)
	recentTrend := models.TrendBearish
	if trendCmp > 0 {
		recentTrend = models.TrendBullish
	}

	short := momentumLag{horizon: cfg.ShortHorizon, num: 1, den: 4}.value(prices)
	medium := momentumLag{horizon: cfg.MediumHorizon, num: 1, den: 2}.value(prices)
	long := momentumLag{horizon: cfg.LongHorizon, num: 3, den: 4}.value(prices)

	returns := pctChange(prices)
	cumulative, drawdown := 0.0, 0.0
	if len(returns) > 0 {
		growth, peak := 1.0, 0.0
		for i, r := range returns {
			growth *= 1 + r
			cum := growth - 1
			if i == 0 || cum > peak {
				peak = cum
			}
			drawdown = max(drawdown, peak-cum)
			cumulative = cum
		}
	}

	out := &models.PriceAnalysis{
		DecisionPeriodChange:  round(decisionChange, 2),
		FullPeriodChange:      round(fullChange, 2),
		RecentTrend:           recentTrend,
		RecentTrendTie:        trendCmp == 0,
		MomentumShortTerm:     round(short, 2),
		MomentumMediumTerm:    round(medium, 2),
		MomentumLongTerm:      round(long, 2),
		RecentVsHistorical:    round(recentVsHistorical, 2),
		PerformancePercentile: round(percentile, 1),
		PeriodsAnalyzed:       len(blockReturns),
		DailyReturnMean:       round(mean(returns)*100, 4),
		DailyReturnStd:        round(stdDev(returns)*100, 4),
		CumulativeReturn:      round(cumulative*100, 2),
		MaxDrawdown:           round(drawdown*100, 2),
		DataPoints:            n,
	}
	if err := checkFinite(out.DecisionPeriodChange, out.FullPeriodChange, out.MomentumShortTerm,
		out.MomentumMediumTerm, out.MomentumLongTerm, out.RecentVsHistorical, out.DailyReturnMean,
		out.DailyReturnStd, out.CumulativeReturn, out.MaxDrawdown); err != nil {
		return nil, err
	}
	return out, nil
}
