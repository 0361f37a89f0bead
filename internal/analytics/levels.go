package analytics

import (
	"sort"

	"github.com/bobmcallan/trendscore/internal/models"
)

// localExtrema returns values strictly beyond every neighbour within k positions
// on both sides. The first and last k values are never candidates.
func localExtrema(xs []float64, k int, beyond func(a, b float64) bool) []float64 {
	var out []float64
	for i := k; i < len(xs)-k; i++ {
		extreme := true
		for j := 1; j <= k; j++ {
			if !beyond(xs[i], xs[i-j]) || !beyond(xs[i], xs[i+j]) {
				extreme = false
				break
			}
		}
		if extreme {
			out = append(out, xs[i])
		}
	}
	return out
}

// uniqueDescending sorts levels high to low and drops repeats
func uniqueDescending(levels []float64) []float64 {
	sorted := append([]float64(nil), levels...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	out := sorted[:0]
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func roundAll(xs []float64, places int32, limit int) []float64 {
	out := make([]float64, 0, min(len(xs), limit))
	for _, x := range xs {
		if len(out) == limit {
			break
		}
		out = append(out, round(x, places))
	}
	return out
}

// FindSupportResistance locates swing highs (resistance) and swing lows (support)
// in the trailing window and the nearest of each around the current close.
func FindSupportResistance(bars []models.EODBar, cfg LevelsConfig) (*models.SupportResistance, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}
	current := bars[len(bars)-1].Close
	recent := bars[max(0, len(bars)-cfg.LookbackBars):]

	resistance := uniqueDescending(localExtrema(highs(recent), cfg.Neighbors,
		func(a, b float64) bool { return a > b }))
	support := uniqueDescending(localExtrema(lows(recent), cfg.Neighbors,
		func(a, b float64) bool { return a < b }))

	out := &models.SupportResistance{
		CurrentPrice:     round(current, 4),
		ResistanceLevels: roundAll(resistance, 4, cfg.MaxLevels),
		SupportLevels:    roundAll(support, 4, cfg.MaxLevels),
	}

	// Lowest resistance above price; lists are descending so the last match wins
	for _, level := range resistance {
		if level > current {
			out.NearestResistance = ptr(level)
		}
	}
	// Highest support below price
	for _, level := range support {
		if level < current {
			out.NearestSupport = ptr(level)
			break
		}
	}

	if r := out.NearestResistance; r != nil {
		out.DistanceToResistance = ptr(round((*r-current)/current*100, 2))
		out.NearestResistance = ptr(round(*r, 4))
	}
	if s := out.NearestSupport; s != nil {
		out.DistanceToSupport = ptr(round((current-*s)/current*100, 2))
		out.NearestSupport = ptr(round(*s, 4))
	}
	return out, nil
}
