package analytics

// Config holds the window sizes and thresholds used by every stage. It is passed
// to NewAnalyzer and never mutated afterwards.
type Config struct {
	Price      PriceConfig      `toml:"price"`
	Volume     VolumeConfig     `toml:"volume"`
	Volatility VolatilityConfig `toml:"volatility"`
	Indicators IndicatorConfig  `toml:"indicators"`
	Trend      TrendConfig      `toml:"trend"`
	Levels     LevelsConfig     `toml:"levels"`
	Scoring    ScoringConfig    `toml:"scoring"`
}

// PriceConfig configures the price-trend stage
type PriceConfig struct {
	MinBlockBars  int `toml:"min_block_bars"`
	ShortHorizon  int `toml:"short_horizon"`
	MediumHorizon int `toml:"medium_horizon"`
	LongHorizon   int `toml:"long_horizon"`
}

// VolumeConfig configures the volume stage
type VolumeConfig struct {
	RecentBars int `toml:"recent_bars"`
}

// VolatilityConfig configures the volatility stage
type VolatilityConfig struct {
	RollingWindow int     `toml:"rolling_window"`
	TrendBars     int     `toml:"trend_bars"`
	TradingDays   float64 `toml:"trading_days"`
}

// IndicatorConfig configures the technical indicator stage
type IndicatorConfig struct {
	SMAFast         int     `toml:"sma_fast"`
	SMAMid          int     `toml:"sma_mid"`
	SMASlow         int     `toml:"sma_slow"`
	EMAPeriod       int     `toml:"ema_period"`
	SlopeBars       int     `toml:"slope_bars"`
	SlopeThreshold  float64 `toml:"slope_threshold"`
	RSIPeriod       int     `toml:"rsi_period"`
	RSIOverbought   float64 `toml:"rsi_overbought"`
	RSIOversold     float64 `toml:"rsi_oversold"`
	MACDFast        int     `toml:"macd_fast"`
	MACDSlow        int     `toml:"macd_slow"`
	MACDSignal      int     `toml:"macd_signal"`
	BollingerPeriod int     `toml:"bollinger_period"`
	BollingerStdDev float64 `toml:"bollinger_std_dev"`
	BandUpper       float64 `toml:"band_upper"`
	BandLower       float64 `toml:"band_lower"`
}

// TrendConfig configures the regression and pattern stage
type TrendConfig struct {
	StrongSlope  float64 `toml:"strong_slope"`
	Slope        float64 `toml:"slope"`
	VeryStrongR2 float64 `toml:"very_strong_r2"`
	StrongR2     float64 `toml:"strong_r2"`
	ModerateR2   float64 `toml:"moderate_r2"`
	PatternBars  int     `toml:"pattern_bars"`
}

// LevelsConfig configures the support/resistance stage
type LevelsConfig struct {
	LookbackBars int `toml:"lookback_bars"`
	Neighbors    int `toml:"neighbors"`
	MaxLevels    int `toml:"max_levels"`
}

// ScoringConfig configures score fusion
type ScoringConfig struct {
	Baseline         float64 `toml:"baseline"`
	RecentTrend      float64 `toml:"recent_trend"`
	MomentumWeight   float64 `toml:"momentum_weight"`
	MomentumCap      float64 `toml:"momentum_cap"`
	RSI              float64 `toml:"rsi"`
	MACD             float64 `toml:"macd"`
	PriceVsSMA       float64 `toml:"price_vs_sma"`
	VolumeIncreasing float64 `toml:"volume_increasing"`
	VolumeDecreasing float64 `toml:"volume_decreasing"`
	Volatility       float64 `toml:"volatility"`
	// ScoreTieBreaks makes labels that were decided by a tie count towards the
	// score. Off by default so a flat series, where every comparison ties, stays
	// near the baseline instead of collecting every bearish weight.
	ScoreTieBreaks bool `toml:"score_tie_breaks"`
}

// DefaultConfig returns the standard windows and thresholds
func DefaultConfig() Config {
	return Config{
		Price: PriceConfig{
			MinBlockBars:  7,
			ShortHorizon:  5,
			MediumHorizon: 20,
			LongHorizon:   60,
		},
		Volume: VolumeConfig{
			RecentBars: 5,
		},
		Volatility: VolatilityConfig{
			RollingWindow: 20,
			TrendBars:     5,
			TradingDays:   252,
		},
		Indicators: IndicatorConfig{
			SMAFast:         5,
			SMAMid:          10,
			SMASlow:         20,
			EMAPeriod:       20,
			SlopeBars:       5,
			SlopeThreshold:  0.001,
			RSIPeriod:       14,
			RSIOverbought:   70,
			RSIOversold:     30,
			MACDFast:        12,
			MACDSlow:        26,
			MACDSignal:      9,
			BollingerPeriod: 20,
			BollingerStdDev: 2,
			BandUpper:       0.8,
			BandLower:       0.2,
		},
		Trend: TrendConfig{
			StrongSlope:  0.01,
			Slope:        0.001,
			VeryStrongR2: 0.8,
			StrongR2:     0.6,
			ModerateR2:   0.4,
			PatternBars:  10,
		},
		Levels: LevelsConfig{
			LookbackBars: 50,
			Neighbors:    2,
			MaxLevels:    5,
		},
		Scoring: ScoringConfig{
			Baseline:         50,
			RecentTrend:      10,
			MomentumWeight:   0.5,
			MomentumCap:      10,
			RSI:              5,
			MACD:             7,
			PriceVsSMA:       5,
			VolumeIncreasing: 3,
			VolumeDecreasing: 2,
			Volatility:       2,
		},
	}
}
