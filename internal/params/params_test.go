package params

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_OverlaysDefaults(t *testing.T) {
	got, err := Parse(`{"symbol":"ETH/USDT","limit":5}`, DefaultFetch())
	require.NoError(t, err)
	assert.Equal(t, Fetch{Exchange: "binance", Symbol: "ETH/USDT", Timeframe: "1h", Limit: 5}, got)
	assert.NoError(t, got.Validate())
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse("  ", DefaultAnalyze())
	require.NoError(t, err)
	assert.Equal(t, []string{"RSI", "MACD", "BB"}, got.Indicators)
	assert.Equal(t, "3mo", got.Period)
}

func TestParse_ExplicitEmptyIndicators(t *testing.T) {
	got, err := Parse(`{"symbol":"MSFT","indicators":[]}`, DefaultAnalyze())
	require.NoError(t, err)
	assert.Empty(t, got.Indicators)
	assert.Equal(t, "MSFT", got.Symbol)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(`{"symbol":`, DefaultChart(time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParams))

	_, err = Parse(`{"limit":"ten"}`, DefaultFetch())
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestChart_Window(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)
	c := DefaultChart(now)
	assert.Equal(t, "2023-07-01", c.StartDate)
	assert.Equal(t, "2024-06-30", c.EndDate)

	start, end, err := c.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), end)

	c.StartDate = "2024/01/01"
	_, _, err = c.Window()
	assert.True(t, errors.Is(err, ErrInvalidParams))

	c.StartDate, c.EndDate = "2024-02-01", "2024-01-01"
	_, _, err = c.Window()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start_date")
}

func TestChart_ResolveOutputPath(t *testing.T) {
	c := Chart{Symbol: "BTC/USD"}
	assert.Equal(t, "output/BTC-USD_chart.html", c.ResolveOutputPath("output"))
	c.OutputPath = "custom/x.html"
	assert.Equal(t, "custom/x.html", c.ResolveOutputPath("output"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		v    interface{ Validate() error }
		ok   bool
	}{
		{"fetch default", DefaultFetch(), true},
		{"fetch zero limit", Fetch{Symbol: "BTC/USDT"}, false},
		{"fetch no symbol", Fetch{Limit: 1}, false},
		{"ohlcv default", DefaultOHLCV(), true},
		{"ohlcv negative count", OHLCV{Ticker: "KRW-BTC", Count: -1}, false},
		{"analyze default", DefaultAnalyze(), true},
		{"analyze blank symbol", Analyze{Symbol: " "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidParams))
		})
	}
}
