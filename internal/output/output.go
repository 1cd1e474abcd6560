// Package output writes program results to stdout in the shapes callers parse.
package output

import (
	"io"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"MarketLens/internal/model"
)

// TimestampLayout formats bar times in fetch results.
const TimestampLayout = "2006-01-02 15:04:05"

// JSON writes v as two-space indented JSON followed by a newline.
func JSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// FailureResult is printed when a program cannot produce its result.
type FailureResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Failure writes {"success": false, "error": ...} for err.
func Failure(w io.Writer, err error) error {
	return JSON(w, FailureResult{Success: false, Error: err.Error()})
}

// ChartResult is the chart program's success payload.
type ChartResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// Record is one bar of a fetch result.
type Record struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchResult is the fetch program's success payload.
type FetchResult struct {
	Success   bool     `json:"success"`
	Exchange  string   `json:"exchange"`
	Symbol    string   `json:"symbol"`
	Timeframe string   `json:"timeframe"`
	Data      []Record `json:"data"`
}

// NewFetchResult converts bars into records with UTC timestamps.
func NewFetchResult(exchange, symbol, timeframe string, bars []model.OHLCV) FetchResult {
	records := make([]Record, len(bars))
	for i, b := range bars {
		records[i] = Record{
			Timestamp: b.Time.UTC().Format(TimestampLayout),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	return FetchResult{
		Success:   true,
		Exchange:  exchange,
		Symbol:    symbol,
		Timeframe: timeframe,
		Data:      records,
	}
}

// Table prints bars as a bordered table indexed by time in loc.
func Table(w io.Writer, bars []model.OHLCV, loc *time.Location) error {
	table := tablewriter.NewWriter(w)
	table.Header("Time", "Open", "High", "Low", "Close", "Volume")
	for _, b := range bars {
		err := table.Append(
			b.Time.In(loc).Format(TimestampLayout),
			num(b.Open), num(b.High), num(b.Low), num(b.Close),
			strconv.FormatFloat(b.Volume, 'f', 8, 64),
		)
		if err != nil {
			return errors.Wrap(err, "append row")
		}
	}
	return errors.Wrap(table.Render(), "render table")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
