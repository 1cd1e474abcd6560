package recorder

import (
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.AnalysisReport) (string, error) { return "", nil }
func (n *NoopRecorder) RecordBars(_, _, _ string, _ []model.OHLCV) error       { return nil }
func (n *NoopRecorder) Close() error                                          { return nil }

// Open returns a SQLite recorder for path, or a NoopRecorder when path is empty
// or the database cannot be opened.
func Open(path string) Recorder {
	if path == "" {
		return NewNoopRecorder()
	}
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop: %v", err)
		return NewNoopRecorder()
	}
	return r
}
