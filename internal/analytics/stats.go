package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/trendscore/internal/models"
)

func closes(bars []models.EODBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func highs(bars []models.EODBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

func lows(bars []models.EODBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

func volumes(bars []models.EODBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// tail returns the last n values, or all of them when there are fewer
func tail(xs []float64, n int) []float64 {
	if n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the sample standard deviation (n-1 denominator). Fewer than two
// values have no spread and return 0.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}

// pctChange returns simple period-over-period returns; len(out) == len(xs)-1
func pctChange(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i]/xs[i-1] - 1
	}
	return out
}

// relChange is the percentage change from first to last
func relChange(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last/first - 1) * 100
}

// pearson returns the correlation of x and y, or 0 when either has no variance
func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// linearFit fits ys against a 0-based index by ordinary least squares.
// R² is 1 for a perfect fit of a constant series and 0 for fewer than 2 points.
func linearFit(ys []float64) (slope, intercept, r2 float64) {
	n := len(ys)
	if n == 0 {
		return 0, 0, 0
	}
	my := mean(ys)
	if n < 2 {
		return 0, my, 0
	}
	mx := float64(n-1) / 2
	var sxy, sxx float64
	for i, y := range ys {
		dx := float64(i) - mx
		sxy += dx * (y - my)
		sxx += dx * dx
	}
	slope = sxy / sxx
	intercept = my - slope*mx

	var ssRes, ssTot float64
	for i, y := range ys {
		fit := intercept + slope*float64(i)
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - my) * (y - my)
	}
	switch {
	case ssTot == 0 && ssRes == 0:
		r2 = 1
	case ssTot == 0:
		r2 = 0
	default:
		r2 = 1 - ssRes/ssTot
	}
	return slope, intercept, r2
}

// ewma is an exponentially weighted mean with span-derived decay, normalised by
// the sum of weights seen so far so early values are not biased towards zero.
func ewma(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	decay := 1 - 2/float64(span+1)
	var num, den float64
	for i, x := range xs {
		num = x + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

// levelTolerance is the relative gap below which two levels are the same level.
// It absorbs summation drift, so a flat series compares equal to its own averages.
const levelTolerance = 1e-9

// compareLevels returns -1, 0 or +1 as a is below, level with or above b.
// Magnitudes under 1 are compared against an absolute gap of levelTolerance.
func compareLevels(a, b float64) int {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	switch d := a - b; {
	case math.Abs(d) <= levelTolerance*scale:
		return 0
	case d > 0:
		return 1
	default:
		return -1
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round rounds half away from zero on the decimal representation of v
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func checkFinite(vals ...float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at field %d", ErrNonFinite, i)
		}
	}
	return nil
}

func ptr(v float64) *float64 {
	return &v
}
