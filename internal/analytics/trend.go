package analytics

import (
	"github.com/bobmcallan/trendscore/internal/models"
)

// ClassifyDirection maps a regression slope (price units per bar) to a trend direction
func ClassifyDirection(slope float64, cfg TrendConfig) string {
	switch {
	case slope > cfg.StrongSlope:
		return models.DirectionStrongUptrend
	case slope > cfg.Slope:
		return models.DirectionUptrend
	case slope < -cfg.StrongSlope:
		return models.DirectionStrongDowntrend
	case slope < -cfg.Slope:
		return models.DirectionDowntrend
	default:
		return models.DirectionSideways
	}
}

// ClassifyStrength maps R² to how well the trend line explains price
func ClassifyStrength(r2 float64, cfg TrendConfig) string {
	switch {
	case r2 > cfg.VeryStrongR2:
		return models.StrengthVeryStrong
	case r2 > cfg.StrongR2:
		return models.StrengthStrong
	case r2 > cfg.ModerateR2:
		return models.StrengthModerate
	default:
		return models.StrengthWeak
	}
}

// AnalyzeTrend fits a regression line through closes and compares the latest
// highs and lows with the window before them.
func AnalyzeTrend(bars []models.EODBar, cfg TrendConfig) (*models.TrendAnalysis, error) {
	n := len(bars)
	if n == 0 {
		return nil, ErrInsufficientData
	}
	slope, _, r2 := linearFit(closes(bars))

	hs, ls := highs(bars), lows(bars)
	w := cfg.PatternBars
	recentHigh, recentLow := maxOf(tail(hs, w)), minOf(tail(ls, w))

	// Without two full windows the previous window is the recent one, so neither
	// comparison can hold.
	prior := n >= 2*w
	previousHigh, previousLow := recentHigh, recentLow
	if prior {
		previousHigh = maxOf(hs[n-2*w : n-w])
		previousLow = minOf(ls[n-2*w : n-w])
	}

	higherHighs := recentHigh > previousHigh
	higherLows := recentLow > previousLow
	pattern := models.PatternMixed
	switch {
	case higherHighs && higherLows:
		pattern = models.PatternBullish
	case !higherHighs && !higherLows:
		pattern = models.PatternBearish
	}

	out := &models.TrendAnalysis{
		Direction:   ClassifyDirection(slope, cfg),
		Strength:    ClassifyStrength(r2, cfg),
		Slope:       round(slope, 6),
		RSquared:    round(r2, 3),
		Pattern:     pattern,
		HigherHighs: higherHighs,
		HigherLows:  higherLows,
		PriorWindow: prior,
	}
	if err := checkFinite(out.Slope, out.RSquared); err != nil {
		return nil, err
	}
	return out, nil
}
