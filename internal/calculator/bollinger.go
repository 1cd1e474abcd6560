package calculator

import (
	"math"

	"MarketLens/internal/model"
)

// BandsResult holds the three aligned Bollinger Band series.
type BandsResult struct {
	Upper  model.Series
	Middle model.Series
	Lower  model.Series
}

// BollingerBands computes an SMA middle band plus/minus stdDevMultiplier
// sample standard deviations (divisor period-1) of the same trailing window.
// With period 1 the deviation is undefined, so only the middle band is set.
func BollingerBands(prices []float64, period int, stdDevMultiplier float64) (*BandsResult, error) {
	if period <= 0 || stdDevMultiplier <= 0 {
		return nil, ErrInvalidPeriod
	}
	middle, err := SMA(prices, period)
	if err != nil {
		return nil, err
	}

	res := &BandsResult{
		Upper:  make(model.Series, len(prices)),
		Middle: middle,
		Lower:  make(model.Series, len(prices)),
	}
	if period < 2 {
		return res, nil
	}
	for i := period - 1; i < len(prices); i++ {
		m := middle[i].V
		sd := SampleStdDev(prices[i-period+1:i+1], m)
		res.Upper[i] = model.Some(m + stdDevMultiplier*sd)
		res.Lower[i] = model.Some(m - stdDevMultiplier*sd)
	}
	return res, nil
}

// SampleStdDev returns the standard deviation of window around mean with
// divisor len(window)-1.
func SampleStdDev(window []float64, mean float64) float64 {
	if len(window) < 2 {
		return math.NaN()
	}
	sum := 0.0
	for _, p := range window {
		d := p - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(window)-1))
}
