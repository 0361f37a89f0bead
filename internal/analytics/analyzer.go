// Package analytics turns a daily OHLCV series into trend, volatility, indicator
// and support/resistance metrics and a fused 0–100 trend score.
//
// Every stage is a pure function of the series, the decision window and the
// Config; an Analyzer holds no mutable state and is safe for concurrent use.
package analytics

import (
	"errors"
	"fmt"

	"github.com/bobmcallan/trendscore/internal/models"
)

// Analyzer runs all stages over a series
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with the given configuration
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// NewDefaultAnalyzer creates an analyzer with DefaultConfig
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultConfig())
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze computes every section for bars, an ascending, cleaned series owned by
// the caller, and fuses them into a trend score. A section whose stage fails is
// left nil and recorded in Issues; only an empty series or an invalid window is
// an error.
func (a *Analyzer) Analyze(symbol string, bars []models.EODBar, window int) (*models.AnalysisResult, error) {
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	first, last := bars[0], bars[len(bars)-1]
	requested, span, complete := coverage(first.Date, last.Date, window)

	result := &models.AnalysisResult{
		Symbol:       symbol,
		WindowDays:   window,
		DataPoints:   len(bars),
		DateRange:    models.DateRange{Start: first.Date, End: last.Date},
		CurrentPrice: last.Close,
		Lookback: models.LookbackCoverage{
			RequestedDays: requested,
			SpanDays:      span,
			Complete:      complete,
		},
	}

	issues := &result.Issues
	result.Price = runStage(models.SectionPrice, issues, func() (*models.PriceAnalysis, error) {
		return AnalyzePrice(bars, window, a.cfg.Price)
	})
	result.Volume = runStage(models.SectionVolume, issues, func() (*models.VolumeAnalysis, error) {
		return AnalyzeVolume(bars, a.cfg.Volume)
	})
	result.Volatility = runStage(models.SectionVolatility, issues, func() (*models.VolatilityAnalysis, error) {
		return AnalyzeVolatility(bars, a.cfg.Volatility)
	})
	result.Technical = runStage(models.SectionTechnical, issues, func() (*models.TechnicalIndicators, error) {
		return CalculateIndicators(bars, a.cfg.Indicators)
	})
	result.Trend = runStage(models.SectionTrend, issues, func() (*models.TrendAnalysis, error) {
		return AnalyzeTrend(bars, a.cfg.Trend)
	})
	result.SupportResistance = runStage(models.SectionSupportResistance, issues, func() (*models.SupportResistance, error) {
		return FindSupportResistance(bars, a.cfg.Levels)
	})
	result.Summary = runStage(models.SectionSummary, issues, func() (*models.SummaryStatistics, error) {
		return Summarize(bars)
	})

	result.TrendScore = Score(result, a.cfg.Scoring)
	return result, nil
}

// runStage runs one stage, turning an error or panic into a nil section and an issue
func runStage[T any](section string, issues *[]models.StageIssue, stage func() (*T, error)) (out *T) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			*issues = append(*issues, models.StageIssue{Section: section, Reason: err.Error(), Err: err})
			out = nil
		}
	}()

	res, err := stage()
	if err != nil {
		*issues = append(*issues, models.StageIssue{Section: section, Reason: err.Error(), Err: err})
		return nil
	}
	return res
}

// IsInsufficientData reports whether an issue was caused by a short series rather
// than a failure.
func IsInsufficientData(issue models.StageIssue) bool {
	return errors.Is(issue.Err, ErrInsufficientData)
}

// IsNoData reports whether err means there was no series to analyse
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
