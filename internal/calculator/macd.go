package calculator

import "MarketLens/internal/model"

// MACDResult holds the three aligned MACD series.
type MACDResult struct {
	MACD      model.Series
	Signal    model.Series
	Histogram model.Series
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal EMA and
// the histogram. All entries are defined since EMA starts at the first sample.
// Equal spans yield a flat zero line; ordering of fast and slow is a config rule.
func MACD(prices []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, ErrInvalidPeriod
	}

	emaFast, _ := EMA(prices, fast)
	emaSlow, _ := EMA(prices, slow)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine, _ := EMA(line, signal)

	res := &MACDResult{
		MACD:      make(model.Series, len(prices)),
		Signal:    make(model.Series, len(prices)),
		Histogram: make(model.Series, len(prices)),
	}
	for i := range prices {
		res.MACD[i] = model.Some(line[i])
		res.Signal[i] = model.Some(signalLine[i])
		res.Histogram[i] = model.Some(line[i] - signalLine[i])
	}
	return res, nil
}
