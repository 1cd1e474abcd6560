package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"MarketLens/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts Options) *YahooFetcher {
	base := opts.BaseURL
	if base == "" {
		base = yahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: strings.TrimRight(base, "/"),
		Client:  newHTTPClient(opts.Proxy, opts.Timeout),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooInterval accepts exchange-style intervals as well as Yahoo's own.
func yahooInterval(interval string) string {
	switch interval {
	case "", "day":
		return "1d"
	case "1w", "week":
		return "1wk"
	case "1M", "month":
		return "1mo"
	default:
		return interval
	}
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

// FetchBars returns bars for a Yahoo range or a start/end window. Weekly bars
// over an explicit window are built from daily bars so weeks align to ISO weeks.
func (f *YahooFetcher) FetchBars(ctx context.Context, q Query) ([]model.OHLCV, error) {
	interval := yahooInterval(q.Interval)
	params := url.Values{}
	switch {
	case q.Range != "":
		params.Set("range", q.Range)
	case !q.Start.IsZero():
		end := q.End
		if end.IsZero() {
			end = time.Now()
		}
		params.Set("period1", strconv.FormatInt(q.Start.Unix(), 10))
		params.Set("period2", strconv.FormatInt(end.Unix(), 10))
		if interval == "1wk" {
			daily, err := f.fetchChart(ctx, q.Symbol, "1d", params)
			if err != nil {
				return nil, err
			}
			return trimToLimit(aggregateDailyToWeekly(daily), q.Limit), nil
		}
	default:
		params.Set("range", "1y")
	}

	bars, err := f.fetchChart(ctx, q.Symbol, interval, params)
	if err != nil {
		return nil, err
	}
	return trimToLimit(bars, q.Limit), nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval string, params url.Values) ([]model.OHLCV, error) {
	params.Set("interval", interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), params.Encode())

	body, err := getBody(ctx, f.Client, u, http.Header{"User-Agent": {"Mozilla/5.0"}})
	if err != nil {
		return nil, errors.Wrap(err, "yahoo fetch")
	}

	var chart yahooChart
	if err := sonic.Unmarshal(body, &chart); err != nil {
		return nil, errors.Wrap(err, "yahoo decode")
	}
	if chart.Chart.Error != nil {
		return nil, errors.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  *quote.Close[i],
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
