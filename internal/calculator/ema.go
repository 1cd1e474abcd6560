package calculator

// EMA computes the adjusted exponential moving average with smoothing
// alpha = 2/(span+1). Every entry is the weighted mean of all samples so far
// with weights (1-alpha)^age, so early values are bias-corrected instead of
// seeded from the first price.
func EMA(prices []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, ErrInvalidPeriod
	}
	decay := 1 - 2.0/(float64(span)+1)
	out := make([]float64, len(prices))
	num, den := 0.0, 0.0
	for i, p := range prices {
		num = p + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out, nil
}
