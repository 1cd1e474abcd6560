// Package cli holds the bootstrap shared by the command-line programs.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"MarketLens/internal/config"
	"MarketLens/internal/logger"
	"MarketLens/internal/output"
)

// Setup starts logging, loads and validates the configuration.
func Setup(service string) (*config.Config, error) {
	_ = logger.Init(service, "info")
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, err
	}
	if err := logger.Init(service, cfg.Log.Level); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs cmd until it finishes or SIGINT/SIGTERM arrives. On failure it
// prints a JSON failure to stdout when jsonFailure is set and exits with status 1.
func Execute(cmd *cobra.Command, jsonFailure func() bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		logger.Sync()
		return
	}
	Fail(os.Stdout, err, jsonFailure())
}

// Fail logs err, optionally writes the JSON failure to w and exits with status 1.
func Fail(w io.Writer, err error, asJSON bool) {
	logger.Error("%v", err)
	if asJSON {
		_ = output.Failure(w, err)
	}
	logger.Sync()
	os.Exit(1)
}

// Always is a jsonFailure callback for programs whose output is always JSON.
func Always() bool { return true }
