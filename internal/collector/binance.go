package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"MarketLens/internal/model"
)

const (
	binanceBaseURL  = "https://api.binance.com"
	binanceMaxLimit = 1000
)

var binanceIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

// BinanceFetcher implements Fetcher using the Binance spot klines endpoint.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a new fetcher with optional proxy support.
func NewBinanceFetcher(opts Options) *BinanceFetcher {
	base := opts.BaseURL
	if base == "" {
		base = binanceBaseURL
	}
	return &BinanceFetcher{
		BaseURL: strings.TrimRight(base, "/"),
		Client:  newHTTPClient(opts.Proxy, opts.Timeout),
	}
}

func (f *BinanceFetcher) Name() string { return string(ExchangeBinance) }

// binanceSymbol turns "BTC/USDT" into "BTCUSDT".
func binanceSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}

func (f *BinanceFetcher) FetchBars(ctx context.Context, q Query) ([]model.OHLCV, error) {
	interval := q.Interval
	if interval == "" {
		interval = "1h"
	}
	if !binanceIntervals[interval] {
		return nil, errors.Errorf("binance: unsupported timeframe %q", interval)
	}
	limit := q.Limit
	if limit <= 0 || limit > binanceMaxLimit {
		limit = binanceMaxLimit
	}

	params := url.Values{}
	params.Set("symbol", binanceSymbol(q.Symbol))
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))
	if !q.Start.IsZero() {
		params.Set("startTime", strconv.FormatInt(q.Start.UnixMilli(), 10))
	}
	if !q.End.IsZero() {
		params.Set("endTime", strconv.FormatInt(q.End.UnixMilli(), 10))
	}

	endpoint := fmt.Sprintf("%s/api/v3/klines?%s", f.BaseURL, params.Encode())
	body, err := getBody(ctx, f.Client, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "binance fetch klines")
	}

	var rows [][]interface{}
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "binance decode klines")
	}

	bars := make([]model.OHLCV, 0, len(rows))
	for i, row := range rows {
		bar, err := parseKline(row)
		if err != nil {
			return nil, errors.Wrapf(err, "binance kline %d", i)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// parseKline reads [openTime, open, high, low, close, volume, ...].
func parseKline(row []interface{}) (model.OHLCV, error) {
	if len(row) < 6 {
		return model.OHLCV{}, errors.Errorf("short row of %d fields", len(row))
	}
	openTime, err := toFloat(row[0])
	if err != nil {
		return model.OHLCV{}, errors.Wrap(err, "open time")
	}
	var vals [5]float64
	for i := range vals {
		if vals[i], err = toFloat(row[i+1]); err != nil {
			return model.OHLCV{}, errors.Wrapf(err, "field %d", i+1)
		}
	}
	return model.OHLCV{
		Time:   unixMilli(int64(openTime)),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, errors.Errorf("unexpected value %v (%T)", v, v)
	}
}

func unixMilli(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
