package calculator

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_HandCalculated(t *testing.T) {
	prices := []float64{100, 102, 104, 103, 105}
	got, err := SMA(prices, 3)
	require.NoError(t, err)
	requireUndefinedBefore(t, got, 2)

	want := []float64{0, 0, 102, 103, 104}
	for i := 2; i < len(prices); i++ {
		assert.InDelta(t, want[i], got[i].V, tolerance, "index %d", i)
	}
}

func TestSMA_MatchesTalib(t *testing.T) {
	prices := wave(120)
	for _, period := range []int{5, 20, 50} {
		got, err := SMA(prices, period)
		require.NoError(t, err)
		ref := talib.Sma(prices, period)
		for i := period - 1; i < len(prices); i++ {
			assert.InDelta(t, ref[i], got[i].V, 1e-6, "period %d index %d", period, i)
		}
	}
}

func TestSMA_ShortSeries(t *testing.T) {
	got, err := SMA([]float64{1, 2}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, -1, got.FirstValid())
}

func TestSMA_InvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestMAOverlays(t *testing.T) {
	prices := wave(60)
	requireUndefinedBefore(t, MA20(prices), 19)
	requireUndefinedBefore(t, MA50(prices), 49)
}
