package interfaces

import (
	"context"

	"github.com/bobmcallan/trendscore/internal/models"
)

// SeriesStore persists fetched series snapshots keyed by symbol
type SeriesStore interface {
	GetSeries(ctx context.Context, symbol string) (*models.SeriesSnapshot, error)
	SaveSeries(ctx context.Context, snapshot *models.SeriesSnapshot) error
	DeleteSeries(ctx context.Context, symbol string) error
	Purge(ctx context.Context) (int, error)
}
