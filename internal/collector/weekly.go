package collector

import "MarketLens/internal/model"

// aggregateDailyToWeekly converts daily bars into ISO-week bars.
func aggregateDailyToWeekly(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.OHLCV
	week := daily[0]
	cy, cw := week.Time.ISOWeek()

	for _, d := range daily[1:] {
		year, isoWeek := d.Time.ISOWeek()
		if year != cy || isoWeek != cw {
			weekly = append(weekly, week)
			week = d
			cy, cw = year, isoWeek
			continue
		}
		if d.High > week.High {
			week.High = d.High
		}
		if d.Low < week.Low {
			week.Low = d.Low
		}
		week.Close = d.Close
		week.Volume += d.Volume
	}
	return append(weekly, week)
}
