package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/analysis"
	"MarketLens/internal/collector"
	"MarketLens/internal/model"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

type fakeRecorder struct {
	reports []*model.AnalysisReport
	bars    map[string]int
}

func (f *fakeRecorder) RecordAnalysis(r *model.AnalysisReport) (string, error) {
	f.reports = append(f.reports, r)
	return "id", nil
}

func (f *fakeRecorder) RecordBars(source, symbol, interval string, bars []model.OHLCV) error {
	if f.bars == nil {
		f.bars = map[string]int{}
	}
	f.bars[source+"/"+symbol+"/"+interval] += len(bars)
	return nil
}

func (f *fakeRecorder) Close() error { return nil }

// failingFetcher fails for one symbol and delegates the rest.
type failingFetcher struct {
	collector.MockFetcher
	bad string
}

func (f *failingFetcher) FetchBars(ctx context.Context, q collector.Query) ([]model.OHLCV, error) {
	if q.Symbol == f.bad {
		return nil, errors.New("symbol may be delisted")
	}
	return f.MockFetcher.FetchBars(ctx, q)
}

func newTestScheduler(n Notifier, rec *fakeRecorder, fetcher collector.Fetcher) *Scheduler {
	job := Job{
		Symbols:    []string{"AAPL", "MSFT"},
		Range:      "3mo",
		Interval:   "1d",
		Indicators: model.DefaultIndicators,
		Settings:   analysis.DefaultSettings(),
	}
	return NewScheduler(context.Background(), collector.NewCollector(fetcher), n, rec, job)
}

func TestScheduler_RunNow(t *testing.T) {
	n := &fakeNotifier{}
	rec := &fakeRecorder{}
	mock := &collector.MockFetcher{Price: 150}
	s := newTestScheduler(n, rec, mock)

	results := s.RunNow()
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Report.Indicators.RSI)
	}

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "3mo", mock.Calls[0].Range)
	assert.Len(t, rec.reports, 2)
	assert.Equal(t, 100, rec.bars["mock/AAPL/1d"])
	require.Len(t, n.sent, 2)
	assert.Contains(t, n.sent[1], "<b>MSFT</b>")
}

func TestScheduler_RunNowReportsFailures(t *testing.T) {
	n := &fakeNotifier{}
	rec := &fakeRecorder{}
	s := newTestScheduler(n, rec, &failingFetcher{MockFetcher: collector.MockFetcher{Price: 10}, bad: "AAPL"})

	results := s.RunNow()
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Len(t, rec.reports, 1)
	require.Len(t, n.sent, 2)
	assert.Contains(t, n.sent[0], "delisted")
}

func TestScheduler_NoNotifier(t *testing.T) {
	s := newTestScheduler(nil, &fakeRecorder{}, &collector.MockFetcher{Price: 1})
	assert.Len(t, s.RunNow(), 2)
}

func TestScheduler_Register(t *testing.T) {
	s := newTestScheduler(nil, &fakeRecorder{}, &collector.MockFetcher{Price: 1})
	assert.NoError(t, s.Register("0 0 22 * * 1-5"))
	assert.Error(t, s.Register("every tuesday"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestScheduler_HandleCommand(t *testing.T) {
	s := newTestScheduler(nil, &fakeRecorder{}, &collector.MockFetcher{Price: 42})
	ctx := context.Background()

	assert.Contains(t, s.HandleCommand(ctx, "/analyze tsla"), "<b>TSLA</b>")
	assert.Contains(t, s.HandleCommand(ctx, "/analyze"), "用法")
	assert.Equal(t, "关注列表: AAPL, MSFT", s.HandleCommand(ctx, "/symbols"))
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "/analyze SYMBOL")
	assert.Empty(t, s.HandleCommand(ctx, "/run"))
}
