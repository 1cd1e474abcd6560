package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"MarketLens/internal/analysis"
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
)

// ErrNoData is returned when a provider yields no usable bars.
var ErrNoData = errors.New("no data")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV
	Err   error
	Calls []Query
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, q Query) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, q)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return trimToLimit(m.Bars, q.Limit), nil
	}
	count := q.Limit
	if count <= 0 {
		count = 100
	}
	return generateMockBars(m.Price, count), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches bars and fails with ErrNoData when none came back.
func (c *Collector) Collect(ctx context.Context, q Query) ([]model.OHLCV, error) {
	bars, err := c.Fetcher.FetchBars(ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s from %s", q.Symbol, c.Fetcher.Name())
	}
	if len(bars) == 0 {
		return nil, errors.Wrapf(ErrNoData, "%s from %s", q.Symbol, c.Fetcher.Name())
	}
	logger.Debug("fetched %d bars of %s from %s", len(bars), q.Symbol, c.Fetcher.Name())
	return bars, nil
}

// Analyze fetches market data and computes the requested indicators.
func (c *Collector) Analyze(ctx context.Context, q Query, names []model.IndicatorName, s analysis.Settings) (*model.AnalysisReport, []model.OHLCV, error) {
	bars, err := c.Collect(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	report, err := analysis.Build(q.Symbol, bars, names, s)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "analyse %s", q.Symbol)
	}
	return report, bars, nil
}
