package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"MarketLens/internal/api"
	"MarketLens/internal/chart"
	"MarketLens/internal/cli"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/recorder"
)

var (
	addr  string
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve charts, analysis, exchange data and client logs over HTTP",
	Long: `serve exposes the chart, analyze and fetch programs as JSON endpoints under
/api and stores client-submitted logs in the SQLite database. When redis.addr
is configured the recent-logs page is cached there.`,
	Example:       `  serve --addr :9090`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	f.BoolVar(&debug, "debug", false, "run gin in debug mode")
}

func main() {
	cli.Execute(rootCmd, func() bool { return false })
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Setup("serve")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = addr
	}
	if cfg.Database.SQLitePath == "" {
		return errors.New("database.sqlite_path is required to store logs")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(cmd.Context()).Err(); err != nil {
			logger.Warn("redis %s unreachable, logs cache degraded: %v", cfg.Redis.Addr, err)
		}
	}

	router := api.NewRouter(api.Deps{
		Equities: collector.NewYahooFetcher(cfg.YahooOptions()),
		Exchanges: func(ex collector.Exchange) (collector.Fetcher, error) {
			return collector.NewExchangeFetcher(string(ex), cfg.ExchangeOptions(ex))
		},
		Exchange: cfg.DataSource.Exchange,
		Recorder: store,
		Logs:     store,
		Cache:    api.NewLogCache(rdb, cfg.Redis.LogsTTL),
		Settings: cfg.Settings(),
		ChartDir: cfg.Chart.OutputDir,
		Chart: chart.Options{
			Width:    cfg.Chart.Width,
			Height:   cfg.Chart.Height,
			BBPeriod: cfg.Indicators.BBPeriod,
			BBStdDev: cfg.Indicators.BBStdDev,
		},
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-cmd.Context().Done():
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(ctx), "shutdown")
}
