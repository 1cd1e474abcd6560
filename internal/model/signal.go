package model

// RSISignal classifies the latest RSI reading.
type RSISignal string

const (
	RSIOversold   RSISignal = "oversold"
	RSIOverbought RSISignal = "overbought"
	RSINeutral    RSISignal = "neutral"
)

// MACDTrend classifies the latest MACD histogram.
type MACDTrend string

const (
	TrendBullish MACDTrend = "bullish"
	TrendBearish MACDTrend = "bearish"
)

// BandPosition is where the current price sits relative to the Bollinger Bands.
type BandPosition string

const (
	BandAbove  BandPosition = "above"
	BandBelow  BandPosition = "below"
	BandWithin BandPosition = "within"
)

// IndicatorName identifies an indicator requested by a caller.
type IndicatorName string

const (
	IndicatorRSI  IndicatorName = "RSI"
	IndicatorMACD IndicatorName = "MACD"
	IndicatorBB   IndicatorName = "BB"
)

// DefaultIndicators is the set computed when the caller leaves the selection unset.
var DefaultIndicators = []IndicatorName{IndicatorRSI, IndicatorMACD, IndicatorBB}
