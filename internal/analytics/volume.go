package analytics

import (
	"github.com/bobmcallan/trendscore/internal/models"
)

// AnalyzeVolume compares recent volume with the full history and correlates it with price
func AnalyzeVolume(bars []models.EODBar, cfg VolumeConfig) (*models.VolumeAnalysis, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}
	vols := volumes(bars)

	avg := mean(vols)
	recent := mean(tail(vols, cfg.RecentBars))

	trendCmp := compareLevels(recent, avg)
	trend := models.VolumeDecreasing
	if trendCmp > 0 {
		trend = models.VolumeIncreasing
	}

	var momentum, volatility float64
	if avg > 0 {
		momentum = (recent/avg - 1) * 100
		volatility = stdDev(vols) / avg * 100
	}

	out := &models.VolumeAnalysis{
		AverageVolume:          int64(avg),
		RecentAverageVolume:    int64(recent),
		VolumeTrend:            trend,
		VolumeTrendTie:         trendCmp == 0,
		VolumeMomentum:         round(momentum, 2),
		PriceVolumeCorrelation: round(pearson(closes(bars), vols), 3),
		VolumeVolatility:       round(volatility, 2),
	}
	if err := checkFinite(out.VolumeMomentum, out.PriceVolumeCorrelation, out.VolumeVolatility); err != nil {
		return nil, err
	}
	return out, nil
}
