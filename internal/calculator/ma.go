package calculator

import (
	"github.com/pkg/errors"

	"MarketLens/internal/model"
)

// ErrInvalidPeriod is returned when a window length or multiplier is not usable.
var ErrInvalidPeriod = errors.New("period must be positive")

// SMA computes the simple moving average of prices over a trailing window.
// Entries before the first full window are undefined.
func SMA(prices []float64, period int) (model.Series, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	out := make(model.Series, len(prices))
	for i := period - 1; i < len(prices); i++ {
		out[i] = model.Some(mean(prices[i-period+1 : i+1]))
	}
	return out, nil
}

// MA20 returns the 20-bar simple moving average used as a chart overlay.
func MA20(prices []float64) model.Series {
	s, _ := SMA(prices, 20)
	return s
}

// MA50 returns the 50-bar simple moving average used as a chart overlay.
func MA50(prices []float64) model.Series {
	s, _ := SMA(prices, 50)
	return s
}

func mean(window []float64) float64 {
	sum := 0.0
	for _, p := range window {
		sum += p
	}
	return sum / float64(len(window))
}
