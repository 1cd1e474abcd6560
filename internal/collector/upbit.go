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

const (
	upbitBaseURL  = "https://api.upbit.com"
	upbitPageSize = 200
	upbitTimeFmt  = "2006-01-02T15:04:05"
)

// upbitPaths maps both pyupbit-style and exchange-style intervals to candle paths.
var upbitPaths = map[string]string{
	"day": "days", "days": "days", "1d": "days",
	"week": "weeks", "weeks": "weeks", "1w": "weeks",
	"month": "months", "months": "months", "1M": "months",
	"minute1": "minutes/1", "1m": "minutes/1",
	"minute3": "minutes/3", "3m": "minutes/3",
	"minute5": "minutes/5", "5m": "minutes/5",
	"minute10": "minutes/10", "10m": "minutes/10",
	"minute15": "minutes/15", "15m": "minutes/15",
	"minute30": "minutes/30", "30m": "minutes/30",
	"minute60": "minutes/60", "1h": "minutes/60",
	"minute240": "minutes/240", "4h": "minutes/240",
}

// UpbitFetcher implements Fetcher using Upbit's public candle API.
type UpbitFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewUpbitFetcher creates a new fetcher with optional proxy support.
func NewUpbitFetcher(opts Options) *UpbitFetcher {
	base := opts.BaseURL
	if base == "" {
		base = upbitBaseURL
	}
	return &UpbitFetcher{
		BaseURL: strings.TrimRight(base, "/"),
		Client:  newHTTPClient(opts.Proxy, opts.Timeout),
	}
}

func (f *UpbitFetcher) Name() string { return string(ExchangeUpbit) }

// upbitMarket turns "BTC/KRW" into "KRW-BTC"; Upbit market codes pass through.
func upbitMarket(symbol string) string {
	s := strings.ToUpper(symbol)
	if base, quote, ok := strings.Cut(s, "/"); ok {
		return quote + "-" + base
	}
	return s
}

type upbitCandle struct {
	CandleDateTimeUTC string  `json:"candle_date_time_utc"`
	OpeningPrice      float64 `json:"opening_price"`
	HighPrice         float64 `json:"high_price"`
	LowPrice          float64 `json:"low_price"`
	TradePrice        float64 `json:"trade_price"`
	AccTradeVolume    float64 `json:"candle_acc_trade_volume"`
}

// FetchBars pages backwards through Upbit's 200-candle limit until Limit
// candles are collected or history runs out.
func (f *UpbitFetcher) FetchBars(ctx context.Context, q Query) ([]model.OHLCV, error) {
	interval := q.Interval
	if interval == "" {
		interval = "day"
	}
	path, ok := upbitPaths[interval]
	if !ok {
		return nil, errors.Errorf("upbit: unsupported interval %q", interval)
	}
	want := q.Limit
	if want <= 0 {
		want = upbitPageSize
	}

	var bars []model.OHLCV
	to := q.End
	for len(bars) < want {
		count := want - len(bars)
		if count > upbitPageSize {
			count = upbitPageSize
		}
		page, err := f.fetchPage(ctx, path, upbitMarket(q.Symbol), count, to)
		if err != nil {
			return nil, err
		}
		bars = append(bars, page...)
		if len(page) < count {
			break
		}
		oldest := page[len(page)-1].Time
		if !q.Start.IsZero() && !oldest.After(q.Start) {
			break
		}
		to = oldest
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if !q.Start.IsZero() {
		i := sort.Search(len(bars), func(i int) bool { return !bars[i].Time.Before(q.Start) })
		bars = bars[i:]
	}
	return bars, nil
}

// fetchPage returns one page, newest first as Upbit sends it.
func (f *UpbitFetcher) fetchPage(ctx context.Context, path, market string, count int, to time.Time) ([]model.OHLCV, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("count", strconv.Itoa(count))
	if !to.IsZero() {
		params.Set("to", to.UTC().Format(upbitTimeFmt))
	}
	endpoint := fmt.Sprintf("%s/v1/candles/%s?%s", f.BaseURL, path, params.Encode())

	body, err := getBody(ctx, f.Client, endpoint, http.Header{"Accept": {"application/json"}})
	if err != nil {
		return nil, errors.Wrap(err, "upbit fetch candles")
	}
	var candles []upbitCandle
	if err := sonic.Unmarshal(body, &candles); err != nil {
		return nil, errors.Wrap(err, "upbit decode candles")
	}

	bars := make([]model.OHLCV, 0, len(candles))
	for _, c := range candles {
		ts, err := time.ParseInLocation(upbitTimeFmt, c.CandleDateTimeUTC, time.UTC)
		if err != nil {
			return nil, errors.Wrapf(err, "upbit candle time %q", c.CandleDateTimeUTC)
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   c.OpeningPrice,
			High:   c.HighPrice,
			Low:    c.LowPrice,
			Close:  c.TradePrice,
			Volume: c.AccTradeVolume,
		})
	}
	return bars, nil
}
