// Package params decodes the per-invocation --params JSON accepted by every program.
package params

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"MarketLens/internal/model"
)

// DateLayout is the YYYY-MM-DD form used for start_date and end_date.
const DateLayout = "2006-01-02"

// ErrInvalidParams marks malformed or out-of-range parameters.
var ErrInvalidParams = errors.New("invalid params")

// Parse overlays the JSON object raw onto defaults. Fields absent from raw keep
// their default; an empty raw returns defaults unchanged.
func Parse[T any](raw string, defaults T) (T, error) {
	out := defaults
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return defaults, errors.Wrapf(ErrInvalidParams, "decode params: %v", err)
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidParams, "date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Chart parameters for the chart program.
type Chart struct {
	Symbol     string `json:"symbol"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	ChartType  string `json:"chart_type"`
	OutputPath string `json:"output_path"`
}

// DefaultChart covers the year up to now. OutputPath is filled by Window
// once the symbol is known.
func DefaultChart(now time.Time) Chart {
	return Chart{
		Symbol:    "AAPL",
		StartDate: now.AddDate(0, 0, -365).Format(DateLayout),
		EndDate:   now.Format(DateLayout),
		ChartType: "candlestick",
	}
}

// Window validates the dates and returns them parsed.
func (c Chart) Window() (start, end time.Time, err error) {
	if start, err = ParseDate(c.StartDate); err != nil {
		return
	}
	if end, err = ParseDate(c.EndDate); err != nil {
		return
	}
	if end.Before(start) {
		err = errors.Wrapf(ErrInvalidParams, "end_date %s is before start_date %s", c.EndDate, c.StartDate)
	}
	return
}

// ResolveOutputPath returns OutputPath, or <dir>/<symbol>_chart.html when unset.
func (c Chart) ResolveOutputPath(dir string) string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	name := strings.NewReplacer("/", "-", "^", "").Replace(c.Symbol)
	return filepath.Join(dir, name+"_chart.html")
}

// Analyze parameters for the analyze program.
type Analyze struct {
	Symbol     string   `json:"symbol"`
	Indicators []string `json:"indicators"`
	Period     string   `json:"period"`
	Interval   string   `json:"interval"`
}

// DefaultAnalyze matches three months of daily bars with every indicator.
func DefaultAnalyze() Analyze {
	names := make([]string, len(model.DefaultIndicators))
	for i, n := range model.DefaultIndicators {
		names[i] = string(n)
	}
	return Analyze{Symbol: "AAPL", Indicators: names, Period: "3mo", Interval: "1d"}
}

// Validate rejects an empty symbol.
func (a Analyze) Validate() error {
	if strings.TrimSpace(a.Symbol) == "" {
		return errors.Wrap(ErrInvalidParams, "symbol is required")
	}
	return nil
}

// Fetch parameters for the exchange fetch program.
type Fetch struct {
	Exchange  string `json:"exchange"`
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Limit     int    `json:"limit"`
}

// DefaultFetch is the last 100 hourly BTC/USDT candles from binance.
func DefaultFetch() Fetch {
	return Fetch{Exchange: "binance", Symbol: "BTC/USDT", Timeframe: "1h", Limit: 100}
}

// Validate rejects an empty symbol or a non-positive limit.
func (f Fetch) Validate() error {
	if strings.TrimSpace(f.Symbol) == "" {
		return errors.Wrap(ErrInvalidParams, "symbol is required")
	}
	if f.Limit <= 0 {
		return errors.Wrapf(ErrInvalidParams, "limit must be positive, got %d", f.Limit)
	}
	return nil
}

// OHLCV parameters for the candle table program.
type OHLCV struct {
	Exchange string `json:"exchange"`
	Ticker   string `json:"ticker"`
	Interval string `json:"interval"`
	Count    int    `json:"count"`
}

// DefaultOHLCV is 30 daily KRW-BTC candles from upbit.
func DefaultOHLCV() OHLCV {
	return OHLCV{Exchange: "upbit", Ticker: "KRW-BTC", Interval: "day", Count: 30}
}

// Validate rejects an empty ticker or a non-positive count.
func (o OHLCV) Validate() error {
	if strings.TrimSpace(o.Ticker) == "" {
		return errors.Wrap(ErrInvalidParams, "ticker is required")
	}
	if o.Count <= 0 {
		return errors.Wrapf(ErrInvalidParams, "count must be positive, got %d", o.Count)
	}
	return nil
}
