package analytics

import (
	"github.com/markcheno/go-talib"

	"github.com/bobmcallan/trendscore/internal/models"
)

// smaSeries returns the rolling simple moving average, trimmed to full windows.
// The caller guarantees len(prices) >= period.
func smaSeries(prices []float64, period int) []float64 {
	return talib.Sma(prices, period)[period-1:]
}

func lastSMA(prices []float64, period int) float64 {
	s := smaSeries(prices, period)
	return s[len(s)-1]
}

// classifySlope labels the least-squares slope of the last few moving average values
func classifySlope(values []float64, threshold float64) string {
	if len(values) < 2 {
		return models.SlopeNeutral
	}
	slope, _, _ := linearFit(values)
	switch {
	case slope > threshold:
		return models.SlopeUpward
	case slope < -threshold:
		return models.SlopeDownward
	default:
		return models.SlopeNeutral
	}
}

// RSI returns the relative strength index from simple means of gains and losses
// over the last period price changes. With no losses at all the RSI is 100.
// Exactly period bars (period-1 changes) use every change available.
func RSI(prices []float64, period int) float64 {
	changes := len(prices) - 1
	if changes < 1 || period < 1 {
		return 50
	}
	window := min(period, changes)
	var gains, losses float64
	for i := len(prices) - window; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ClassifyRSI classifies an RSI value against overbought and oversold thresholds
func ClassifyRSI(rsi, overbought, oversold float64) string {
	if rsi > overbought {
		return models.RSIOverbought
	}
	if rsi < oversold {
		return models.RSIOversold
	}
	return models.RSINeutral
}

// MACD returns the latest MACD line, signal line and histogram
func MACD(prices []float64, fast, slow, signal int) (macd, sig, hist float64) {
	emaFast := ewma(prices, fast)
	emaSlow := ewma(prices, slow)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := ewma(line, signal)
	last := len(prices) - 1
	return line[last], signalLine[last], line[last] - signalLine[last]
}

// BollingerBands returns the bands around the moving average of the last period prices
func BollingerBands(prices []float64, period int, numStd float64) (upper, middle, lower float64) {
	middle = lastSMA(prices, period)
	sd := stdDev(tail(prices, period))
	return middle + numStd*sd, middle, middle - numStd*sd
}

// bandPosition places price between the bands; coinciding bands put it in the middle
func bandPosition(price, upper, lower float64) float64 {
	width := upper - lower
	if width == 0 {
		return 0.5
	}
	return (price - lower) / width
}

// CalculateIndicators computes every indicator the series is long enough for.
// Each indicator is gated on its own minimum length.
func CalculateIndicators(bars []models.EODBar, cfg IndicatorConfig) (*models.TechnicalIndicators, error) {
	prices := closes(bars)
	n := len(prices)
	if n < cfg.SMAFast {
		return nil, ErrInsufficientData
	}
	current := prices[n-1]
	out := &models.TechnicalIndicators{}

	out.SMA5 = ptr(lastSMA(prices, cfg.SMAFast))
	if n >= cfg.SMAMid {
		out.SMA10 = ptr(lastSMA(prices, cfg.SMAMid))
	}

	if n >= cfg.SMASlow && n >= cfg.EMAPeriod {
		// The rolling series only feeds the slope; the level is a direct mean
		sma := smaSeries(prices, cfg.SMASlow)
		sma20 := mean(tail(prices, cfg.SMASlow))
		ema := ewma(prices, cfg.EMAPeriod)
		posCmp := compareLevels(current, sma20)
		position := models.PriceBelow
		if posCmp > 0 {
			position = models.PriceAbove
		}
		out.MovingAverage = &models.MovingAverageSignal{
			SMA20:           round(sma20, 4),
			EMA20:           round(ema[n-1], 4),
			PriceVsSMA20:    position,
			PriceVsSMA20Tie: posCmp == 0,
			SMA20Slope:      classifySlope(tail(sma, cfg.SlopeBars), cfg.SlopeThreshold),
		}
	}

	if n >= cfg.RSIPeriod {
		rsi := round(RSI(prices, cfg.RSIPeriod), 2)
		out.RSI = &models.RSISignal{
			Value:  rsi,
			Signal: ClassifyRSI(rsi, cfg.RSIOverbought, cfg.RSIOversold),
		}
	}

	if n >= cfg.MACDSlow {
		line, sig, hist := MACD(prices, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
		line, sig, hist = round(line, 4), round(sig, 4), round(hist, 4)
		// Compared at reported precision; equal lines resolve to bearish
		trend := models.TrendBearish
		if line > sig {
			trend = models.TrendBullish
		}
		out.MACD = &models.MACDSignal{
			MACD:      line,
			Signal:    sig,
			Histogram: hist,
			Trend:     trend,
			TrendTie:  line == sig,
		}
	}

	if n >= cfg.BollingerPeriod {
		upper, middle, lower := BollingerBands(prices, cfg.BollingerPeriod, cfg.BollingerStdDev)
		upper, middle, lower = round(upper, 4), round(middle, 4), round(lower, 4)
		position := bandPosition(current, upper, lower)
		signal := models.BandMiddle
		switch {
		case position > cfg.BandUpper:
			signal = models.BandNearUpper
		case position < cfg.BandLower:
			signal = models.BandNearLower
		}
		out.Bollinger = &models.BollingerSignal{
			Upper:    upper,
			Middle:   middle,
			Lower:    lower,
			Position: round(position, 3),
			Signal:   signal,
		}
	}

	if err := checkIndicatorsFinite(out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkIndicatorsFinite(t *models.TechnicalIndicators) error {
	vals := []float64{*t.SMA5}
	if t.SMA10 != nil {
		vals = append(vals, *t.SMA10)
	}
	if t.MovingAverage != nil {
		vals = append(vals, t.MovingAverage.SMA20, t.MovingAverage.EMA20)
	}
	if t.RSI != nil {
		vals = append(vals, t.RSI.Value)
	}
	if t.MACD != nil {
		vals = append(vals, t.MACD.MACD, t.MACD.Signal, t.MACD.Histogram)
	}
	if t.Bollinger != nil {
		vals = append(vals, t.Bollinger.Upper, t.Bollinger.Lower, t.Bollinger.Position)
	}
	return checkFinite(vals...)
}
