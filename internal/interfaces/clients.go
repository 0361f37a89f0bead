// Package interfaces defines service contracts for trendscore
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/trendscore/internal/models"
)

// SeriesLoader supplies daily OHLCV bars for a symbol
type SeriesLoader interface {
	// Fetch returns the bars dated within [start, end], oldest first. Bars may be
	// unclean; callers run models.CleanSeries before analysis.
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.EODBar, error)
}

// EODHDClient provides access to the EODHD end-of-day API
type EODHDClient interface {
	SeriesLoader

	// GetEOD retrieves end-of-day price data
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) (*models.EODResponse, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
	Order  string // a=ascending, d=descending
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithOrder sets the sort order for EOD query
func WithOrder(order string) EODOption {
	return func(p *EODParams) {
		p.Order = order
	}
}
