package collector

import (
	"context"
	"time"

	"MarketLens/internal/model"
)

// Query describes a bar request. Providers ignore fields they cannot use.
type Query struct {
	Symbol   string
	Interval string
	// Range is a Yahoo-style lookback such as "3mo"; it takes precedence over Start/End.
	Range string
	Start time.Time
	End   time.Time
	// Limit keeps only the most recent bars when positive.
	Limit int
}

// Fetcher defines the interface for fetching market data.
// Bars are returned in ascending time order.
type Fetcher interface {
	FetchBars(ctx context.Context, q Query) ([]model.OHLCV, error)
	Name() string
}

// Options configures a fetcher's transport.
type Options struct {
	BaseURL string
	Proxy   string
	Timeout time.Duration
}
