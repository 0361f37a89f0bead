package interfaces

import (
	"context"

	"github.com/bobmcallan/trendscore/internal/models"
)

// AnalysisService fetches history and scores assets
type AnalysisService interface {
	// AnalyzeAsset loads the lookback for window ending today and analyses it
	AnalyzeAsset(ctx context.Context, symbol string, window int) (*models.AnalysisResult, error)

	// AnalyzeAssets analyses symbols concurrently. One entry is returned per
	// symbol in input order; a failed symbol carries its error instead of a result.
	AnalyzeAssets(ctx context.Context, symbols []string, window int) ([]models.AssetAnalysis, error)
}
