package main

import (
	"os"

	"github.com/spf13/cobra"

	"MarketLens/internal/analysis"
	"MarketLens/internal/cli"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/notifier"
	"MarketLens/internal/recorder"
	"MarketLens/internal/scheduler"
)

var (
	runNow     bool
	indicators []string
)

var rootCmd = &cobra.Command{
	Use:   "watch",
	Short: "Analyse a watch list on a schedule and report to Telegram",
	Long: `watch runs the indicator analysis for every configured symbol on the
schedule.watch_cron schedule, records results when a database is configured
and sends a report to Telegram when a bot token and chat id are set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&runNow, "now", false, "run once immediately on start (or RUN_ON_START=true)")
	f.StringSliceVar(&indicators, "indicators", nil, "indicators to compute: RSI, MACD, BB (default all)")
}

func main() {
	cli.Execute(rootCmd, func() bool { return false })
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("watch")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger.Info("MarketLens watch starting...")

	fetcher := collector.NewYahooFetcher(cfg.YahooOptions())
	logger.Info("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()

	var (
		n  scheduler.Notifier
		tn *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() {
		tn, err = notifier.NewTelegramNotifier(notifier.Options{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			Proxy:    cfg.Proxy,
		})
		if err != nil {
			return err
		}
		n = tn
	} else {
		logger.Warn("telegram not configured, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, col, n, rec, scheduler.Job{
		Symbols:    cfg.Schedule.Symbols,
		Range:      cfg.Schedule.Range,
		Interval:   "1d",
		Indicators: analysis.ParseIndicators(indicators),
		Settings:   cfg.Settings(),
	})
	if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	if runNow || os.Getenv("RUN_ON_START") == "true" {
		logger.Info("running watch task now")
		go sched.RunNow()
	}

	logger.Info("watching %v on %q. Press Ctrl+C to stop.", cfg.Schedule.Symbols, cfg.Schedule.WatchCron)
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping...")
	return nil
}
