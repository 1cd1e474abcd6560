package analysis

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"MarketLens/internal/calculator"
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
)

// ErrNoBars is returned when there is nothing to analyse.
var ErrNoBars = errors.New("no bars to analyse")

// Settings holds the indicator tunables.
type Settings struct {
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BBPeriod   int
	BBStdDev   float64
}

// DefaultSettings returns the conventional indicator parameters.
func DefaultSettings() Settings {
	return Settings{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBPeriod:   20,
		BBStdDev:   2,
	}
}

// ParseIndicators maps caller-supplied names to known indicators.
// Unknown names are logged and skipped. A nil list selects all; an empty
// non-nil list selects none.
func ParseIndicators(names []string) []model.IndicatorName {
	if names == nil {
		return model.DefaultIndicators
	}
	out := []model.IndicatorName{}
	seen := make(map[model.IndicatorName]bool)
	for _, n := range names {
		name := model.IndicatorName(strings.ToUpper(strings.TrimSpace(n)))
		switch name {
		case "BOLLINGER", "BOLLINGERBANDS":
			name = model.IndicatorBB
		}
		switch name {
		case model.IndicatorRSI, model.IndicatorMACD, model.IndicatorBB:
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		default:
			logger.Warn("unknown indicator %q ignored", n)
		}
	}
	return out
}

// Build computes the requested indicators over bars and snapshots their last values.
// Callers must reject empty market data before calling.
func Build(symbol string, bars []model.OHLCV, names []model.IndicatorName, s Settings) (*model.AnalysisReport, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	closes := model.Closes(bars)
	current := closes[len(closes)-1]

	report := &model.AnalysisReport{
		Symbol:       symbol,
		CurrentPrice: current,
		AsOf:         bars[len(bars)-1].Time,
	}
	if report.AsOf.IsZero() {
		report.AsOf = time.Now()
	}

	for _, name := range names {
		switch name {
		case model.IndicatorRSI:
			rsi, err := calculator.RSI(closes, s.RSIPeriod)
			if err != nil {
				return nil, errors.Wrap(err, "rsi")
			}
			report.Indicators.RSI = rsiReport(rsi.Last())
			if report.Indicators.RSI.Signal == nil {
				logger.Warn("%s: RSI(%d) needs %d bars, have %d", symbol, s.RSIPeriod, s.RSIPeriod, len(closes))
			}

		case model.IndicatorMACD:
			res, err := calculator.MACD(closes, s.MACDFast, s.MACDSlow, s.MACDSignal)
			if err != nil {
				return nil, errors.Wrap(err, "macd")
			}
			report.Indicators.MACD = macdReport(res)

		case model.IndicatorBB:
			res, err := calculator.BollingerBands(closes, s.BBPeriod, s.BBStdDev)
			if err != nil {
				return nil, errors.Wrap(err, "bollinger bands")
			}
			report.Indicators.BollingerBands = bandsReport(res, current)
			if report.Indicators.BollingerBands.Position == nil {
				logger.Warn("%s: Bollinger(%d) needs %d bars, have %d", symbol, s.BBPeriod, s.BBPeriod, len(closes))
			}
		}
	}
	return report, nil
}

func rsiReport(last model.Value) *model.RSIReport {
	r := &model.RSIReport{Current: last}
	if v, ok := last.Get(); ok {
		sig := calculator.ClassifyRSI(v)
		r.Signal = &sig
	}
	return r
}

func macdReport(res *calculator.MACDResult) *model.MACDReport {
	r := &model.MACDReport{
		MACD:      res.MACD.Last(),
		Signal:    res.Signal.Last(),
		Histogram: res.Histogram.Last(),
	}
	if h, ok := r.Histogram.Get(); ok {
		trend := calculator.ClassifyMACD(h)
		r.Trend = &trend
	}
	return r
}

func bandsReport(res *calculator.BandsResult, price float64) *model.BollingerReport {
	r := &model.BollingerReport{
		Upper:  res.Upper.Last(),
		Middle: res.Middle.Last(),
		Lower:  res.Lower.Last(),
	}
	upper, okU := r.Upper.Get()
	lower, okL := r.Lower.Get()
	if okU && okL {
		pos := calculator.ClassifyBands(price, upper, lower)
		r.Position = &pos
	}
	return r
}
