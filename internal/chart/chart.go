// Package chart renders price history with moving-average overlays as an ECharts HTML page.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/pkg/errors"

	"MarketLens/internal/calculator"
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
)

// Chart types accepted by Render.
const (
	TypeCandlestick = "candlestick"
	TypeLine        = "line"
)

var (
	ErrUnsupportedType = errors.New("unsupported chart type")
	ErrNoBars          = errors.New("no bars to chart")
)

// missing is how ECharts marks a gap in a series.
const missing = "-"

type renderer interface {
	Render(w io.Writer) error
}

// Options controls the rendered page.
type Options struct {
	Type      string
	Width     int
	Height    int
	Bollinger bool
	BBPeriod  int
	BBStdDev  float64
}

// ValidateType rejects chart types Render cannot draw.
func ValidateType(t string) error {
	switch strings.ToLower(t) {
	case "", TypeCandlestick, TypeLine:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedType, "%q (want %s or %s)", t, TypeCandlestick, TypeLine)
}

// Render writes the chart for bars to path, creating parent directories,
// and returns path.
func Render(path, symbol string, bars []model.OHLCV, o Options) (string, error) {
	if err := ValidateType(o.Type); err != nil {
		return "", err
	}
	if len(bars) == 0 {
		return "", ErrNoBars
	}
	if o.Width <= 0 {
		o.Width = 1400
	}
	if o.Height <= 0 {
		o.Height = 700
	}

	closes := model.Closes(bars)
	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Time.Format("2006-01-02")
	}

	title := fmt.Sprintf("%s Price Chart", symbol)
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", o.Width),
			Height:    fmt.Sprintf("%dpx", o.Height),
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price", Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
			Type:       "inside",
		}),
	}

	overlay, err := overlays(closes, o)
	if err != nil {
		return "", err
	}
	overlay.SetGlobalOptions(global...)
	overlay.SetXAxis(dates)

	var page renderer
	if strings.EqualFold(o.Type, TypeLine) {
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(dates).AddSeries("Close", lineData(valuesOf(closes)))
		line.Overlap(overlay)
		page = line
	} else {
		kline := charts.NewKLine()
		kline.SetGlobalOptions(global...)
		candles := make([]opts.KlineData, len(bars))
		for i, b := range bars {
			candles[i] = opts.KlineData{Value: []float64{b.Open, b.Close, b.Low, b.High}}
		}
		kline.SetXAxis(dates).AddSeries("Price", candles)
		kline.Overlap(overlay)
		page = kline
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "create chart dir")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create chart file")
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return "", errors.Wrap(err, "render chart")
	}
	logger.Info("chart for %s written to %s (%d bars)", symbol, path, len(bars))
	return path, nil
}

// overlays builds the MA20/MA50 lines and, when asked, the Bollinger envelope.
func overlays(closes []float64, o Options) (*charts.Line, error) {
	line := charts.NewLine()
	line.AddSeries("MA20", lineData(calculator.MA20(closes))).
		AddSeries("MA50", lineData(calculator.MA50(closes)))

	if o.Bollinger {
		bands, err := calculator.BollingerBands(closes, o.BBPeriod, o.BBStdDev)
		if err != nil {
			return nil, errors.Wrap(err, "bollinger overlay")
		}
		line.AddSeries("BB upper", lineData(bands.Upper)).
			AddSeries("BB lower", lineData(bands.Lower))
	}
	return line, nil
}

func lineData(s model.Series) []opts.LineData {
	out := make([]opts.LineData, len(s))
	for i, v := range s {
		if v.Valid {
			out[i] = opts.LineData{Value: v.V}
		} else {
			out[i] = opts.LineData{Value: missing}
		}
	}
	return out
}

func valuesOf(xs []float64) model.Series {
	out := make(model.Series, len(xs))
	for i, x := range xs {
		out[i] = model.Some(x)
	}
	return out
}
