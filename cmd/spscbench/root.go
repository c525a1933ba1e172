package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/spsc-queue/internal/config"
	"github.com/randomizedcoder/spsc-queue/internal/logging"
)

// app is the state shared by all subcommands, filled in before any of them
// runs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// runContext applies the configured timeout to the command context.
func (a *app) runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spscbench",
		Short: "spscbench measures single-producer single-consumer queues.",
		Long: "`spscbench` runs a producer and a consumer goroutine over a queue and checks that every item\n" +
			"arrives exactly once and in order.\n\n" +
			"The default queue is the unbounded linked queue, which recycles consumed nodes instead of\n" +
			"allocating one per item. Bounded rings, a buffered channel and two third-party queues are\n" +
			"available for comparison.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger
			a.logger.Debug("configuration loaded",
				"queue", cfg.Queue,
				"items", cfg.Items,
				"canceler", cfg.Canceler,
				"ticker", cfg.Ticker,
				"timeout", cfg.Timeout.Round(time.Second),
			)
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newThroughputCmd(a),
		newCompareCmd(a),
		newPollCostCmd(a),
	)

	return root
}
