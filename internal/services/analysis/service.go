// Package analysis fetches market history and scores assets with the analytics engine
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/trendscore/internal/analytics"
	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/interfaces"
	"github.com/bobmcallan/trendscore/internal/models"
)

// Service implements AnalysisService
type Service struct {
	loader        interfaces.SeriesLoader
	analyzer      *analytics.Analyzer
	defaultWindow int
	concurrency   int
	now           func() time.Time
	logger        *common.Logger
}

// NewService creates a new analysis service
func NewService(loader interfaces.SeriesLoader, cfg common.AnalysisConfig, logger *common.Logger) *Service {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		loader:        loader,
		analyzer:      analytics.NewAnalyzer(cfg.Engine),
		defaultWindow: cfg.DefaultWindow,
		concurrency:   concurrency,
		now:           time.Now,
		logger:        logger,
	}
}

// today is the end of the analysis range: the current UTC calendar day
func (s *Service) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func (s *Service) resolveWindow(window int) (int, error) {
	if window == 0 {
		window = s.defaultWindow
	}
	if err := analytics.ValidateWindow(window); err != nil {
		return 0, err
	}
	return window, nil
}

// AnalyzeAsset loads the extended lookback for window and analyses it. A window
// of 0 uses the configured default.
func (s *Service) AnalyzeAsset(ctx context.Context, symbol string, window int) (*models.AnalysisResult, error) {
	window, err := s.resolveWindow(window)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, s.logger.WithSymbol(symbol), symbol, window, s.today())
}

func (s *Service) analyze(ctx context.Context, logger *common.Logger, symbol string, window int, end time.Time) (*models.AnalysisResult, error) {
	start := analytics.LookbackStart(end, window)

	raw, err := s.loader.Fetch(ctx, symbol, start, end)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch series")
		return nil, err
	}

	bars := models.CleanSeries(raw)
	if dropped := len(raw) - len(bars); dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("Dropped invalid or duplicate bars")
	}

	result, err := s.analyzer.Analyze(symbol, bars, window)
	if err != nil {
		logger.Warn().Err(err).Msg("Analysis failed")
		return nil, err
	}

	for _, issue := range result.Issues {
		ev := logger.Warn()
		if analytics.IsInsufficientData(issue) {
			ev = logger.Debug()
		}
		ev.Str("section", issue.Section).Str("reason", issue.Reason).Msg("Section omitted")
	}
	if !result.Lookback.Complete {
		logger.Info().
			Int("requested_days", result.Lookback.RequestedDays).
			Int("span_days", result.Lookback.SpanDays).
			Msg("History shorter than lookback")
	}

	logger.Info().
		Int("window", window).
		Int("bars", result.DataPoints).
		Float64("trend_score", result.TrendScore).
		Msg("Asset analysed")
	return result, nil
}

// AnalyzeAssets analyses symbols concurrently, bounded by the configured
// concurrency. Per-symbol failures are reported in the matching entry; only an
// invalid window or a cancelled context fails the batch.
func (s *Service) AnalyzeAssets(ctx context.Context, symbols []string, window int) ([]models.AssetAnalysis, error) {
	window, err := s.resolveWindow(window)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := &common.Logger{Logger: s.logger.With().Str("run_id", runID).Logger()}
	logger.Info().Int("symbols", len(symbols)).Int("window", window).Msg("Batch analysis started")

	end := s.today()
	out := make([]models.AssetAnalysis, len(symbols))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			out[i].Symbol = symbol
			if err := ctx.Err(); err != nil {
				out[i].Error = err.Error()
				return nil
			}
			result, err := s.analyze(ctx, logger.WithSymbol(symbol), symbol, window, end)
			if err != nil {
				out[i].Error = err.Error()
				return nil
			}
			out[i].Result = result
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("batch %s cancelled: %w", runID, err)
	}

	failed := 0
	for _, a := range out {
		if a.Result == nil {
			failed++
		}
	}
	logger.Info().Int("analysed", len(out)-failed).Int("failed", failed).Msg("Batch analysis finished")
	return out, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
