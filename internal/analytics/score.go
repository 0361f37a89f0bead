package analytics

import (
	"github.com/bobmcallan/trendscore/internal/models"
)

var directionScores = map[string]float64{
	models.DirectionStrongUptrend:   12,
	models.DirectionUptrend:         8,
	models.DirectionSideways:        0,
	models.DirectionDowntrend:       -8,
	models.DirectionStrongDowntrend: -12,
}

var strengthMultipliers = map[string]float64{
	models.StrengthVeryStrong: 1.0,
	models.StrengthStrong:     0.8,
	models.StrengthModerate:   0.6,
	models.StrengthWeak:       0.4,
}

const defaultStrengthMultiplier = 0.5

// signed returns +w for the positive label, -w for the negative one and 0 otherwise.
// A label that only exists because of a tie scores 0 unless ties are scored.
func (c ScoringConfig) signed(label, positive, negative string, tie bool, w float64) float64 {
	if tie && !c.ScoreTieBreaks {
		return 0
	}
	switch label {
	case positive:
		return w
	case negative:
		return -w
	}
	return 0
}

// Score fuses the sections of r into a single 0–100 trend score. Missing sections
// contribute their neutral term.
func Score(r *models.AnalysisResult, cfg ScoringConfig) float64 {
	score := cfg.Baseline

	if p := r.Price; p != nil {
		score += cfg.signed(p.RecentTrend, models.TrendBullish, models.TrendBearish, p.RecentTrendTie, cfg.RecentTrend)
		score += clamp(p.MomentumShortTerm*cfg.MomentumWeight, -cfg.MomentumCap, cfg.MomentumCap)
	}

	if t := r.Technical; t != nil {
		if t.RSI != nil {
			// Oversold is a buying opportunity
			score += cfg.signed(t.RSI.Signal, models.RSIOversold, models.RSIOverbought, false, cfg.RSI)
		}
		if t.MACD != nil {
			score += cfg.signed(t.MACD.Trend, models.TrendBullish, models.TrendBearish, t.MACD.TrendTie, cfg.MACD)
		}
		if ma := t.MovingAverage; ma != nil {
			score += cfg.signed(ma.PriceVsSMA20, models.PriceAbove, models.PriceBelow, ma.PriceVsSMA20Tie, cfg.PriceVsSMA)
		}
	}

	if tr := r.Trend; tr != nil {
		multiplier, ok := strengthMultipliers[tr.Strength]
		if !ok {
			multiplier = defaultStrengthMultiplier
		}
		score += directionScores[tr.Direction] * multiplier
	}

	if v := r.Volume; v != nil && (!v.VolumeTrendTie || cfg.ScoreTieBreaks) {
		switch v.VolumeTrend {
		case models.VolumeIncreasing:
			score += cfg.VolumeIncreasing
		case models.VolumeDecreasing:
			score -= cfg.VolumeDecreasing
		}
	}

	if v := r.Volatility; v != nil {
		// Rising volatility is a risk penalty
		score += cfg.signed(v.VolatilityTrend, models.VolatilityDecreasing, models.VolatilityIncreasing,
			v.VolatilityTrendTie, cfg.Volatility)
	}

	return round(clamp(score, 0, 100), 2)
}
