package analytics

import (
	"math"

	"github.com/bobmcallan/trendscore/internal/models"
)

// Summarize describes the price and volume range of the whole series
func Summarize(bars []models.EODBar) (*models.SummaryStatistics, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}
	prices := closes(bars)
	high, low := maxOf(highs(bars)), minOf(lows(bars))
	current := prices[len(prices)-1]

	// Summed in float64 so long histories of large volumes cannot wrap
	total := 0.0
	for _, b := range bars {
		total += float64(b.Volume)
	}

	out := &models.SummaryStatistics{
		PeriodHigh:    round(high, 4),
		PeriodLow:     round(low, 4),
		AveragePrice:  round(mean(prices), 4),
		MedianPrice:   round(median(prices), 4),
		PriceStd:      round(stdDev(prices), 4),
		TotalVolume:   saturateInt64(total),
		AverageVolume: saturateInt64(total / float64(len(bars))),
		TradingDays:   len(bars),
		PriceRange:    round(high-low, 4),
		CurrentVsHigh: round(relChange(high, current), 2),
		CurrentVsLow:  round(relChange(low, current), 2),
	}
	if err := checkFinite(out.PeriodHigh, out.PeriodLow, out.AveragePrice, out.PriceStd,
		out.CurrentVsHigh, out.CurrentVsLow); err != nil {
		return nil, err
	}
	return out, nil
}

func saturateInt64(v float64) int64 {
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
