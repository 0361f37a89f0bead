package analytics

import (
	"math"
	"math/rand"
	"time"

	"github.com/bobmcallan/trendscore/internal/models"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// generateBars builds one bar per calendar day from closes, oldest first
func generateBars(closes []float64) []models.EODBar {
	bars := make([]models.EODBar, len(closes))
	for i, c := range closes {
		bars[i] = models.EODBar{
			Date:   baseDate.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func flatCloses(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// randomWalkBars builds a valid random OHLCV series from a seeded source
func randomWalkBars(rng *rand.Rand, n int) []models.EODBar {
	bars := make([]models.EODBar, n)
	price := 50 + rng.Float64()*100
	for i := range bars {
		open := price
		price = math.Max(0.01, price*(1+rng.NormFloat64()*0.02))
		hi := math.Max(open, price) * (1 + rng.Float64()*0.01)
		lo := math.Min(open, price) * (1 - rng.Float64()*0.01)
		bars[i] = models.EODBar{
			Date:   baseDate.AddDate(0, 0, i),
			Open:   open,
			High:   hi,
			Low:    lo,
			Close:  price,
			Volume: 1000 + rng.Int63n(1_000_000),
		}
	}
	return bars
}
