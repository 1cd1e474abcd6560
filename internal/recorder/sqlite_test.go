package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func openTemp(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "lens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RecordAnalysis(t *testing.T) {
	r := openTemp(t)
	neutral := model.RSINeutral
	report := &model.AnalysisReport{
		Symbol:       "AAPL",
		CurrentPrice: 187.5,
		AsOf:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Indicators: model.IndicatorReports{
			RSI: &model.RSIReport{Current: model.Some(55.2), Signal: &neutral},
			MACD: &model.MACDReport{
				MACD: model.None, Signal: model.None, Histogram: model.None,
			},
		},
	}

	id, err := r.RecordAnalysis(report)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	var (
		symbol    string
		rsi       float64
		rsiSignal string
		macd      sql.NullFloat64
		trend     sql.NullString
		upper     sql.NullFloat64
		asOf      int64
	)
	err = r.db.QueryRow(`SELECT symbol, rsi, rsi_signal, macd, macd_trend, bb_upper, as_of
		FROM analysis_runs WHERE id = ?`, id).Scan(&symbol, &rsi, &rsiSignal, &macd, &trend, &upper, &asOf)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol)
	assert.Equal(t, 55.2, rsi)
	assert.Equal(t, "neutral", rsiSignal)
	assert.False(t, macd.Valid, "undefined MACD must be NULL")
	assert.False(t, trend.Valid)
	assert.False(t, upper.Valid, "absent bands must be NULL")
	assert.Equal(t, report.AsOf.Unix(), asOf)

	id2, err := r.RecordAnalysis(report)
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestSQLiteRecorder_RecordBarsUpserts(t *testing.T) {
	r := openTemp(t)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: ts, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Time: ts.Add(time.Hour), Open: 1.5, High: 2.5, Low: 1, Close: 2, Volume: 20},
	}
	require.NoError(t, r.RecordBars("binance", "BTC/USDT", "1h", bars))

	bars[1].Close = 2.25
	require.NoError(t, r.RecordBars("binance", "BTC/USDT", "1h", bars[1:]))
	require.NoError(t, r.RecordBars("upbit", "KRW-BTC", "day", bars[:1]))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM bars`).Scan(&n))
	assert.Equal(t, 3, n)

	var closePrice float64
	require.NoError(t, r.db.QueryRow(`SELECT close FROM bars WHERE source = ? AND ts = ?`,
		"binance", ts.Add(time.Hour).Unix()).Scan(&closePrice))
	assert.Equal(t, 2.25, closePrice)
}

func TestSQLiteRecorder_ReopenMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lens.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	assert.NoError(t, r.Close())
}

func TestOpen(t *testing.T) {
	assert.IsType(t, &NoopRecorder{}, Open(""))

	rec := Open(filepath.Join(t.TempDir(), "lens.db"))
	defer rec.Close()
	assert.IsType(t, &SQLiteRecorder{}, rec)

	id, err := NewNoopRecorder().RecordAnalysis(&model.AnalysisReport{})
	assert.NoError(t, err)
	assert.Empty(t, id)
}
