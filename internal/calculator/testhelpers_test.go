package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

const tolerance = 1e-9

// wave is a deterministic, non-monotonic price path.
func wave(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i)*0.25
	}
	return prices
}

func constant(v float64, n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = v
	}
	return prices
}

func requireUndefinedBefore(t *testing.T, s model.Series, first int) {
	t.Helper()
	for i := 0; i < first && i < len(s); i++ {
		require.Falsef(t, s[i].Valid, "index %d should be undefined", i)
	}
	for i := first; i < len(s); i++ {
		require.Truef(t, s[i].Valid, "index %d should be defined", i)
	}
}
