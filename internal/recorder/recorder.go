package recorder

import "MarketLens/internal/model"

// Recorder persists historical data for analysis.
type Recorder interface {
	// RecordAnalysis stores one report and returns its run id.
	RecordAnalysis(report *model.AnalysisReport) (string, error)
	// RecordBars upserts bars keyed by source, symbol, interval and time.
	RecordBars(source, symbol, interval string, bars []model.OHLCV) error
	Close() error
}
