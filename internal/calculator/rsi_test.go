package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func TestRSI_FifteenPointScenario(t *testing.T) {
	prices := []float64{10, 12, 11, 13, 15, 14, 16, 18, 17, 19, 20, 18, 21, 22, 20}
	got, err := RSI(prices, 14)
	require.NoError(t, err)
	require.Len(t, got, len(prices))
	requireUndefinedBefore(t, got, 13)

	// Changes 1..13 add up to 17 of gains and 5 of losses.
	want := 100 - 100/(1+17.0/5.0)
	assert.InDelta(t, want, got[13].V, tolerance)
	assert.Greater(t, got[13].V, 0.0)
	assert.Less(t, got[13].V, 100.0)
	assert.True(t, got[14].Valid)
}

func TestRSI_ConstantSeriesSaturates(t *testing.T) {
	got, err := RSI(constant(50, 30), 14)
	require.NoError(t, err)
	requireUndefinedBefore(t, got, 13)
	for i := 13; i < len(got); i++ {
		assert.Equal(t, 100.0, got[i].V)
	}
}

func TestRSI_Monotonic(t *testing.T) {
	up := make([]float64, 40)
	down := make([]float64, 40)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}

	rsiUp, err := RSI(up, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsiUp.Last().V)
	assert.Equal(t, model.RSIOverbought, ClassifyRSI(rsiUp.Last().V))

	rsiDown, err := RSI(down, 14)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsiDown.Last().V, tolerance)
	assert.Equal(t, model.RSIOversold, ClassifyRSI(rsiDown.Last().V))
}

func TestRSI_BoundedOnWave(t *testing.T) {
	got, err := RSI(wave(200), 14)
	require.NoError(t, err)
	for i := 13; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].V, 0.0)
		assert.LessOrEqual(t, got[i].V, 100.0)
	}
}

func TestRSI_InsufficientHistory(t *testing.T) {
	got, err := RSI([]float64{1, 2, 3}, 14)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.False(t, got.Last().Valid)
}

func TestRSI_DoesNotMutateInput(t *testing.T) {
	prices := wave(30)
	orig := append([]float64(nil), prices...)
	_, err := RSI(prices, 14)
	require.NoError(t, err)
	assert.Equal(t, orig, prices)
}

func TestRSI_InvalidPeriod(t *testing.T) {
	_, err := RSI([]float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
