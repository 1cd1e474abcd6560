package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func TestAggregateDailyToWeekly(t *testing.T) {
	// Thu 2024-01-04 .. Tue 2024-01-09 spans ISO weeks 1 and 2.
	day := func(d int, o, h, l, c float64) model.OHLCV {
		return model.OHLCV{Time: time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC), Open: o, High: h, Low: l, Close: c, Volume: 10}
	}
	daily := []model.OHLCV{
		day(4, 100, 105, 99, 104),
		day(5, 104, 110, 103, 108),
		day(8, 108, 109, 95, 96),
		day(9, 96, 101, 94, 100),
	}

	weekly := aggregateDailyToWeekly(daily)
	require.Len(t, weekly, 2)

	assert.Equal(t, daily[0].Time, weekly[0].Time)
	assert.Equal(t, 100.0, weekly[0].Open)
	assert.Equal(t, 110.0, weekly[0].High)
	assert.Equal(t, 99.0, weekly[0].Low)
	assert.Equal(t, 108.0, weekly[0].Close)
	assert.Equal(t, 20.0, weekly[0].Volume)

	assert.Equal(t, 108.0, weekly[1].Open)
	assert.Equal(t, 109.0, weekly[1].High)
	assert.Equal(t, 94.0, weekly[1].Low)
	assert.Equal(t, 100.0, weekly[1].Close)
}

func TestAggregateDailyToWeekly_Empty(t *testing.T) {
	assert.Nil(t, aggregateDailyToWeekly(nil))
}
