package main

import (
	"os"
	"time"

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
	ticker    string
	interval  string
	count     int
	asJSON    bool
)

// kst is Upbit's display timezone.
var kst = time.FixedZone("KST", 9*60*60)

var rootCmd = &cobra.Command{
	Use:   "ohlcv",
	Short: "Print recent candles for a ticker as a table",
	Long: `ohlcv loads .env, downloads the latest candles for a ticker (daily KRW-BTC
from Upbit by default) and prints them as a table indexed by time.`,
	Example:       `  ohlcv --ticker KRW-ETH --interval minute60 --count 48`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rawParams, "params", "", "JSON object with exchange, ticker, interval, count")
	f.StringVar(&exchange, "exchange", "", "exchange name (default upbit)")
	f.StringVar(&ticker, "ticker", "", "market code (default KRW-BTC)")
	f.StringVar(&interval, "interval", "", "candle interval such as day, week, minute60 (default day)")
	f.IntVar(&count, "count", 0, "number of candles (default 30)")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
}

func main() {
	cli.Execute(rootCmd, func() bool { return asJSON })
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("ohlcv")
	if err != nil {
		return err
	}

	p, err := params.Parse(rawParams, params.DefaultOHLCV())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("exchange") {
		p.Exchange = exchange
	}
	if flags.Changed("ticker") {
		p.Ticker = ticker
	}
	if flags.Changed("interval") {
		p.Interval = interval
	}
	if flags.Changed("count") {
		p.Count = count
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
	col := collector.NewCollector(fetcher)
	bars, err := col.Collect(cmd.Context(), collector.Query{Symbol: p.Ticker, Interval: p.Interval, Limit: p.Count})
	if err != nil {
		return err
	}

	if asJSON {
		err = output.JSON(os.Stdout, output.NewFetchResult(string(ex), p.Ticker, p.Interval, bars))
	} else {
		loc := time.UTC
		if ex == collector.ExchangeUpbit {
			loc = kst
		}
		err = output.Table(os.Stdout, bars, loc)
	}
	if err != nil {
		return err
	}

	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()
	if err := rec.RecordBars(string(ex), p.Ticker, p.Interval, bars); err != nil {
		logger.Warn("record bars: %v", err)
	}
	return nil
}
