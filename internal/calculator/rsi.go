package calculator

import "MarketLens/internal/model"

// RSI computes the relative strength index from simple means of gains and
// losses over a trailing window of period price changes. The first sample
// has no prior close and contributes a zero change, so the first defined
// entry is at index period-1. A zero average loss saturates RSI to 100.
func RSI(prices []float64, period int) (model.Series, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	n := len(prices)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	out := make(model.Series, n)
	for i := period - 1; i < n; i++ {
		avgGain := mean(gains[i-period+1 : i+1])
		avgLoss := mean(losses[i-period+1 : i+1])
		out[i] = model.Some(rsiFromAverages(avgGain, avgLoss))
	}
	return out, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
