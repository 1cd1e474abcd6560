package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MarketLens/internal/model"
)

func TestClassifyRSI_Boundaries(t *testing.T) {
	tests := []struct {
		rsi  float64
		want model.RSISignal
	}{
		{0, model.RSIOversold},
		{29.99, model.RSIOversold},
		{30, model.RSINeutral},
		{50, model.RSINeutral},
		{70, model.RSINeutral},
		{70.01, model.RSIOverbought},
		{100, model.RSIOverbought},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRSI(tt.rsi), "rsi %.2f", tt.rsi)
	}
}

func TestClassifyBands_Boundaries(t *testing.T) {
	tests := []struct {
		price float64
		want  model.BandPosition
	}{
		{111, model.BandAbove},
		{110, model.BandWithin},
		{100, model.BandWithin},
		{90, model.BandWithin},
		{89.5, model.BandBelow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBands(tt.price, 110, 90), "price %.1f", tt.price)
	}
}
