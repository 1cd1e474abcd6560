package calculator

import "MarketLens/internal/model"

// RSI thresholds for the last-value classification.
const (
	RSIOversoldBelow   = 30.0
	RSIOverboughtAbove = 70.0
)

// ClassifyRSI maps an RSI reading to oversold, overbought or neutral.
func ClassifyRSI(rsi float64) model.RSISignal {
	switch {
	case rsi < RSIOversoldBelow:
		return model.RSIOversold
	case rsi > RSIOverboughtAbove:
		return model.RSIOverbought
	default:
		return model.RSINeutral
	}
}

// ClassifyMACD reports bullish only for a strictly positive histogram.
func ClassifyMACD(histogram float64) model.MACDTrend {
	if histogram > 0 {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// ClassifyBands places price relative to the upper and lower bands.
func ClassifyBands(price, upper, lower float64) model.BandPosition {
	switch {
	case price > upper:
		return model.BandAbove
	case price < lower:
		return model.BandBelow
	default:
		return model.BandWithin
	}
}
