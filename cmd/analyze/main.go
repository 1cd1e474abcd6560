package main

import (
	"os"

	"github.com/spf13/cobra"

	"MarketLens/internal/analysis"
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
	indicators []string
	period     string
	interval   string
)

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute RSI, MACD and Bollinger Bands for a symbol",
	Long: `analyze fetches recent daily history for a symbol from Yahoo Finance and
prints the latest value of each requested indicator with its classification.`,
	Example:       `  analyze --params '{"symbol":"AAPL","indicators":["RSI","MACD"]}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rawParams, "params", "", "JSON object with symbol, indicators, period, interval")
	f.StringVar(&symbol, "symbol", "", "ticker symbol (default AAPL)")
	f.StringSliceVar(&indicators, "indicators", nil, "indicators to compute: RSI, MACD, BB (default all)")
	f.StringVar(&period, "period", "", "history range such as 1mo, 3mo, 1y (default 3mo)")
	f.StringVar(&interval, "interval", "", "bar interval (default 1d)")
}

func main() {
	cli.Execute(rootCmd, cli.Always)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("analyze")
	if err != nil {
		return err
	}

	p, err := params.Parse(rawParams, params.DefaultAnalyze())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("symbol") {
		p.Symbol = symbol
	}
	if flags.Changed("indicators") {
		p.Indicators = indicators
	}
	if flags.Changed("period") {
		p.Period = period
	}
	if flags.Changed("interval") {
		p.Interval = interval
	}
	if err := p.Validate(); err != nil {
		return err
	}

	names := analysis.ParseIndicators(p.Indicators)
	logger.Info("analyzing %s with indicators %v", p.Symbol, names)

	col := collector.NewCollector(collector.NewYahooFetcher(cfg.YahooOptions()))
	q := collector.Query{Symbol: p.Symbol, Range: p.Period, Interval: p.Interval}
	report, bars, err := col.Analyze(cmd.Context(), q, names, cfg.Settings())
	if err != nil {
		return err
	}
	if err := output.JSON(os.Stdout, report); err != nil {
		return err
	}

	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()
	if _, err := rec.RecordAnalysis(report); err != nil {
		logger.Warn("record analysis: %v", err)
	}
	if err := rec.RecordBars(col.Fetcher.Name(), p.Symbol, p.Interval, bars); err != nil {
		logger.Warn("record bars: %v", err)
	}
	return nil
}
