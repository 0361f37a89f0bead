package models

import "time"

// Labels produced by the analytics engine
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"

	VolumeIncreasing = "increasing"
	VolumeDecreasing = "decreasing"

	VolatilityIncreasing = "increasing"
	VolatilityDecreasing = "decreasing"

	PriceAbove = "above"
	PriceBelow = "below"

	SlopeUpward   = "upward"
	SlopeDownward = "downward"
	SlopeNeutral  = "neutral"

	RSIOverbought = "overbought"
	RSIOversold   = "oversold"
	RSINeutral    = "neutral"

	BandNearUpper = "near_upper"
	BandNearLower = "near_lower"
	BandMiddle    = "middle"

	DirectionStrongUptrend   = "strong_uptrend"
	DirectionUptrend         = "uptrend"
	DirectionSideways        = "sideways"
	DirectionDowntrend       = "downtrend"
	DirectionStrongDowntrend = "strong_downtrend"

	StrengthVeryStrong = "very_strong"
	StrengthStrong     = "strong"
	StrengthModerate   = "moderate"
	StrengthWeak       = "weak"

	PatternBullish = "bullish_trend"
	PatternBearish = "bearish_trend"
	PatternMixed   = "mixed_signals"
)

// Section names used in StageIssue
const (
	SectionPrice             = "price_analysis"
	SectionVolume            = "volume_analysis"
	SectionVolatility        = "volatility_analysis"
	SectionTechnical         = "technical_indicators"
	SectionTrend             = "trend_analysis"
	SectionSupportResistance = "support_resistance"
	SectionSummary           = "summary_statistics"
)

// AnalysisResult is the output of one (asset, window) analysis. Sections are nil
// when the stage that builds them had insufficient data or failed.
type AnalysisResult struct {
	Symbol       string           `json:"symbol"`
	WindowDays   int              `json:"timeframe_days"`
	DataPoints   int              `json:"data_points"`
	DateRange    DateRange        `json:"date_range"`
	CurrentPrice float64          `json:"current_price"`
	Lookback     LookbackCoverage `json:"lookback"`

	Price             *PriceAnalysis       `json:"price_analysis,omitempty"`
	Volume            *VolumeAnalysis      `json:"volume_analysis,omitempty"`
	Volatility        *VolatilityAnalysis  `json:"volatility_analysis,omitempty"`
	Technical         *TechnicalIndicators `json:"technical_indicators,omitempty"`
	Trend             *TrendAnalysis       `json:"trend_analysis,omitempty"`
	SupportResistance *SupportResistance   `json:"support_resistance,omitempty"`
	Summary           *SummaryStatistics   `json:"summary_statistics,omitempty"`

	TrendScore float64      `json:"trend_score"`
	Issues     []StageIssue `json:"issues,omitempty"`
}

// DateRange is the first and last bar date of the analysed series
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LookbackCoverage compares the calendar span of the series against the extended
// lookback the loader was asked for.
type LookbackCoverage struct {
	RequestedDays int  `json:"requested_days"`
	SpanDays      int  `json:"span_days"`
	Complete      bool `json:"complete"`
}

// StageIssue records why a section is missing from the result
type StageIssue struct {
	Section string `json:"section"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

// PriceAnalysis holds returns, momentum and the recent-vs-historical comparison
type PriceAnalysis struct {
	DecisionPeriodChange  float64 `json:"decision_period_change"`
	FullPeriodChange      float64 `json:"full_period_change"`
	RecentTrend           string  `json:"recent_trend"`
	RecentTrendTie        bool    `json:"recent_trend_tie,omitempty"`
	MomentumShortTerm     float64 `json:"momentum_short_term"`
	MomentumMediumTerm    float64 `json:"momentum_medium_term"`
	MomentumLongTerm      float64 `json:"momentum_long_term"`
	RecentVsHistorical    float64 `json:"recent_vs_historical"`
	PerformancePercentile float64 `json:"performance_percentile"`
	PeriodsAnalyzed       int     `json:"historical_periods_analyzed"`
	DailyReturnMean       float64 `json:"daily_return_mean"`
	DailyReturnStd        float64 `json:"daily_return_std"`
	CumulativeReturn      float64 `json:"cumulative_return"`
	MaxDrawdown           float64 `json:"max_drawdown"`
	DataPoints            int     `json:"total_data_points"`
}

// VolumeAnalysis holds volume level, trend and price correlation
type VolumeAnalysis struct {
	AverageVolume          int64   `json:"average_volume"`
	RecentAverageVolume    int64   `json:"recent_average_volume"`
	VolumeTrend            string  `json:"volume_trend"`
	VolumeTrendTie         bool    `json:"volume_trend_tie,omitempty"`
	VolumeMomentum         float64 `json:"volume_momentum"`
	PriceVolumeCorrelation float64 `json:"price_volume_correlation"`
	VolumeVolatility       float64 `json:"volume_volatility"`
}

// VolatilityAnalysis holds realized and rolling volatility, in percent
type VolatilityAnalysis struct {
	DailyVolatility      float64 `json:"daily_volatility"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	CurrentVolatility    float64 `json:"current_volatility_20d"`
	VolatilityTrend      string  `json:"volatility_trend"`
	VolatilityTrendTie   bool    `json:"volatility_trend_tie,omitempty"`
	AverageDailyRange    float64 `json:"average_daily_range"`
	VolatilityPercentile float64 `json:"volatility_percentile"`
}

// TechnicalIndicators holds the independently gated indicators; each is nil when
// the series is too short for it.
type TechnicalIndicators struct {
	SMA5          *float64             `json:"sma_5,omitempty"`
	SMA10         *float64             `json:"sma_10,omitempty"`
	MovingAverage *MovingAverageSignal `json:"moving_average,omitempty"`
	RSI           *RSISignal           `json:"rsi,omitempty"`
	MACD          *MACDSignal          `json:"macd,omitempty"`
	Bollinger     *BollingerSignal     `json:"bollinger,omitempty"`
}

// MovingAverageSignal holds the 20-bar averages and where price sits against them
type MovingAverageSignal struct {
	SMA20           float64 `json:"sma_20"`
	EMA20           float64 `json:"ema_20"`
	PriceVsSMA20    string  `json:"price_vs_sma_20"`
	PriceVsSMA20Tie bool    `json:"price_vs_sma_20_tie,omitempty"`
	SMA20Slope      string  `json:"sma_20_slope"`
}

// RSISignal holds the relative strength index and its classification
type RSISignal struct {
	Value  float64 `json:"rsi"`
	Signal string  `json:"rsi_signal"`
}

// MACDSignal holds the MACD line, signal line and histogram
type MACDSignal struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"macd_signal"`
	Histogram float64 `json:"macd_histogram"`
	Trend     string  `json:"macd_trend"`
	TrendTie  bool    `json:"macd_trend_tie,omitempty"`
}

// BollingerSignal holds the bands and the price position between them
type BollingerSignal struct {
	Upper    float64 `json:"bb_upper"`
	Middle   float64 `json:"bb_middle"`
	Lower    float64 `json:"bb_lower"`
	Position float64 `json:"bb_position"`
	Signal   string  `json:"bb_signal"`
}

// TrendAnalysis holds the regression fit and the higher-highs/higher-lows pattern
type TrendAnalysis struct {
	Direction   string  `json:"trend_direction"`
	Strength    string  `json:"trend_strength"`
	Slope       float64 `json:"trend_slope"`
	RSquared    float64 `json:"r_squared"`
	Pattern     string  `json:"pattern"`
	HigherHighs bool    `json:"higher_highs"`
	HigherLows  bool    `json:"higher_lows"`
	// PriorWindow is false when the series was too short for a separate previous
	// window and the pattern compared the recent window against itself.
	PriorWindow bool `json:"prior_window"`
}

// SupportResistance holds local extrema levels near the current price
type SupportResistance struct {
	CurrentPrice         float64   `json:"current_price"`
	NearestResistance    *float64  `json:"nearest_resistance"`
	NearestSupport       *float64  `json:"nearest_support"`
	ResistanceLevels     []float64 `json:"resistance_levels"`
	SupportLevels        []float64 `json:"support_levels"`
	DistanceToResistance *float64  `json:"distance_to_resistance"`
	DistanceToSupport    *float64  `json:"distance_to_support"`
}

// SummaryStatistics describes the whole analysed series
type SummaryStatistics struct {
	PeriodHigh    float64 `json:"period_high"`
	PeriodLow     float64 `json:"period_low"`
	AveragePrice  float64 `json:"average_price"`
	MedianPrice   float64 `json:"median_price"`
	PriceStd      float64 `json:"price_std"`
	TotalVolume   int64   `json:"total_volume"`
	AverageVolume int64   `json:"average_volume"`
	TradingDays   int     `json:"trading_days"`
	PriceRange    float64 `json:"price_range"`
	CurrentVsHigh float64 `json:"current_vs_high"`
	CurrentVsLow  float64 `json:"current_vs_low"`
}

// AssetAnalysis pairs a symbol with its result, or the reason it is unavailable
type AssetAnalysis struct {
	Symbol string          `json:"symbol"`
	Result *AnalysisResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}
