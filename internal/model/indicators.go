package model

import "time"

// RSIReport is the last-value snapshot of an RSI series.
type RSIReport struct {
	Current Value      `json:"current"`
	Signal  *RSISignal `json:"signal"`
}

// MACDReport is the last-value snapshot of the MACD lines.
type MACDReport struct {
	MACD      Value      `json:"macd"`
	Signal    Value      `json:"signal"`
	Histogram Value      `json:"histogram"`
	Trend     *MACDTrend `json:"trend"`
}

// BollingerReport is the last-value snapshot of the bands.
type BollingerReport struct {
	Upper    Value         `json:"upper"`
	Middle   Value         `json:"middle"`
	Lower    Value         `json:"lower"`
	Position *BandPosition `json:"position"`
}

// IndicatorReports holds the requested indicator snapshots; absent ones are nil.
type IndicatorReports struct {
	RSI            *RSIReport       `json:"RSI,omitempty"`
	MACD           *MACDReport      `json:"MACD,omitempty"`
	BollingerBands *BollingerReport `json:"BollingerBands,omitempty"`
}

// AnalysisReport is the result of one technical analysis run.
type AnalysisReport struct {
	Symbol       string           `json:"symbol"`
	CurrentPrice float64          `json:"current_price"`
	Indicators   IndicatorReports `json:"indicators"`
	AsOf         time.Time        `json:"-"`
}
