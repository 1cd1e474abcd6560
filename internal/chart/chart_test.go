package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func bars(n int) []model.OHLCV {
	out := make([]model.OHLCV, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		p := 100 + float64(i%7)
		out[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: p - 1, High: p + 2, Low: p - 2, Close: p, Volume: 1000}
	}
	return out
}

func TestRender_Candlestick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "AAPL_chart.html")
	got, err := Render(path, "AAPL", bars(60), Options{Type: TypeCandlestick, Bollinger: true, BBPeriod: 20, BBStdDev: 2})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, "AAPL Price Chart")
	assert.Contains(t, page, "candlestick")
	for _, name := range []string{"MA20", "MA50", "BB upper", "BB lower"} {
		assert.Contains(t, page, name)
	}
	assert.Contains(t, page, `"-"`, "warm-up points must be gaps")
}

func TestRender_Line(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.html")
	_, err := Render(path, "MSFT", bars(10), Options{Type: "LINE"})
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Close")
	assert.False(t, strings.Contains(string(html), "BB upper"))
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Render(filepath.Join(dir, "x.html"), "AAPL", bars(5), Options{Type: "renko"})
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = Render(filepath.Join(dir, "y.html"), "AAPL", nil, Options{})
	assert.True(t, errors.Is(err, ErrNoBars))

	_, err = os.Stat(filepath.Join(dir, "x.html"))
	assert.True(t, os.IsNotExist(err))
}
