package main

import (
	"os"

	"github.com/spf13/cobra"

	"MarketLens/internal/cli"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/output"
	"MarketLens/internal/params"
	"MarketLens/internal/recorder"
)

var (
	rawParams string
	exchange  string
	symbol    string
	timeframe string
	limit     int
)

var rootCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch OHLCV candles from a crypto exchange",
	Long: `fetch downloads the most recent candles for a trading pair from a supported
exchange and prints them as JSON.`,
	Example:       `  fetch --params '{"exchange":"binance","symbol":"ETH/USDT","timeframe":"4h","limit":50}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rawParams, "params", "", "JSON object with exchange, symbol, timeframe, limit")
	f.StringVar(&exchange, "exchange", "", "exchange name (default from config, binance)")
	f.StringVar(&symbol, "symbol", "", "trading pair (default BTC/USDT)")
	f.StringVar(&timeframe, "timeframe", "", "candle timeframe (default 1h)")
	f.IntVar(&limit, "limit", 0, "number of candles (default 100)")
}

func main() {
	cli.Execute(rootCmd, cli.Always)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("fetch")
	if err != nil {
		return err
	}

	defaults := params.DefaultFetch()
	defaults.Exchange = cfg.DataSource.Exchange
	p, err := params.Parse(rawParams, defaults)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("exchange") {
		p.Exchange = exchange
	}
	if flags.Changed("symbol") {
		p.Symbol = symbol
	}
	if flags.Changed("timeframe") {
		p.Timeframe = timeframe
	}
	if flags.Changed("limit") {
		p.Limit = limit
	}
	if err := p.Validate(); err != nil {
		return err
	}

	ex, err := collector.ParseExchange(p.Exchange)
	if err != nil {
		return err
	}
	fetcher, err := collector.NewExchangeFetcher(string(ex), cfg.ExchangeOptions(ex))
	if err != nil {
		return err
	}
	logger.Info("fetching %s from %s", p.Symbol, ex)

	bars, err := fetcher.FetchBars(cmd.Context(), collector.Query{Symbol: p.Symbol, Interval: p.Timeframe, Limit: p.Limit})
	if err != nil {
		return err
	}
	if err := output.JSON(os.Stdout, output.NewFetchResult(string(ex), p.Symbol, p.Timeframe, bars)); err != nil {
		return err
	}

	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()
	if err := rec.RecordBars(string(ex), p.Symbol, p.Timeframe, bars); err != nil {
		logger.Warn("record bars: %v", err)
	}
	return nil
}
