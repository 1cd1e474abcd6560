package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"MarketLens/internal/chart"
	"MarketLens/internal/cli"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/output"
	"MarketLens/internal/params"
	"MarketLens/internal/recorder"
)

var (
	rawParams  string
	symbol     string
	startDate  string
	endDate    string
	chartType  string
	outputPath string
	bollinger  bool
)

var rootCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a price chart with MA20 and MA50 overlays",
	Long: `chart downloads daily history for a symbol between two dates and writes an
interactive HTML chart. The written path is printed as JSON.`,
	Example:       `  chart --params '{"symbol":"MSFT","start_date":"2024-01-01","chart_type":"line"}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rawParams, "params", "", "JSON object with symbol, start_date, end_date, chart_type, output_path")
	f.StringVar(&symbol, "symbol", "", "ticker symbol (default AAPL)")
	f.StringVar(&startDate, "start", "", "start date YYYY-MM-DD (default one year ago)")
	f.StringVar(&endDate, "end", "", "end date YYYY-MM-DD, exclusive (default today)")
	f.StringVar(&chartType, "type", "", "candlestick or line (default candlestick)")
	f.StringVar(&outputPath, "output", "", "output file (default <output_dir>/<symbol>_chart.html)")
	f.BoolVar(&bollinger, "bollinger", false, "overlay Bollinger Bands")
}

func main() {
	cli.Execute(rootCmd, cli.Always)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("chart")
	if err != nil {
		return err
	}

	p, err := params.Parse(rawParams, params.DefaultChart(time.Now()))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("symbol") {
		p.Symbol = symbol
	}
	if flags.Changed("start") {
		p.StartDate = startDate
	}
	if flags.Changed("end") {
		p.EndDate = endDate
	}
	if flags.Changed("type") {
		p.ChartType = chartType
	}
	if flags.Changed("output") {
		p.OutputPath = outputPath
	}
	start, end, err := p.Window()
	if err != nil {
		return err
	}
	if err := chart.ValidateType(p.ChartType); err != nil {
		return err
	}

	logger.Info("generating %s chart for %s", p.ChartType, p.Symbol)
	logger.Info("period: %s to %s", p.StartDate, p.EndDate)

	col := collector.NewCollector(collector.NewYahooFetcher(cfg.YahooOptions()))
	bars, err := col.Collect(cmd.Context(), collector.Query{Symbol: p.Symbol, Interval: "1d", Start: start, End: end})
	if err != nil {
		return err
	}

	path, err := chart.Render(p.ResolveOutputPath(cfg.Chart.OutputDir), p.Symbol, bars, chart.Options{
		Type:      p.ChartType,
		Width:     cfg.Chart.Width,
		Height:    cfg.Chart.Height,
		Bollinger: bollinger,
		BBPeriod:  cfg.Indicators.BBPeriod,
		BBStdDev:  cfg.Indicators.BBStdDev,
	})
	if err != nil {
		return err
	}
	if err := output.JSON(os.Stdout, output.ChartResult{Success: true, Path: path}); err != nil {
		return err
	}

	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()
	if err := rec.RecordBars(col.Fetcher.Name(), p.Symbol, "1d", bars); err != nil {
		logger.Warn("record bars: %v", err)
	}
	return nil
}
