package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/spsc-queue/internal/baseline"
	"github.com/randomizedcoder/spsc-queue/internal/cancel"
	"github.com/randomizedcoder/spsc-queue/internal/pipeline"
	"github.com/randomizedcoder/spsc-queue/internal/tick"
)

func newThroughputCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "throughput",
		Short: "Push --items through one queue with a producer and a consumer goroutine.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.throughput(cmd)
		},
	}
}

func (a *app) throughput(cmd *cobra.Command) error {
	ctx, cancelRun := a.runContext(cmd)
	defer cancelRun()

	q, err := baseline.New(a.cfg.Queue, a.cfg.Size)
	if err != nil {
		return err
	}

	c, err := cancel.New(a.cfg.Canceler)
	if err != nil {
		return err
	}

	var t tick.Ticker
	if a.cfg.ProgressInterval > 0 {
		t, err = tick.New(a.cfg.Ticker, a.cfg.ProgressInterval, tick.DefaultEvery)
		if err != nil {
			return err
		}
		defer t.Stop()
	}

	a.logger.Info("starting run",
		"queue", a.cfg.Queue,
		"items", humanize.Comma(int64(a.cfg.Items)),
		"warmup", humanize.Comma(int64(a.cfg.Warmup)),
	)

	res, err := pipeline.Run(ctx, q, pipeline.Config{
		Items:    a.cfg.Items,
		Warmup:   a.cfg.Warmup,
		Canceler: c,
		Ticker:   t,
		Logger:   a.logger,
	})
	if err != nil {
		return fmt.Errorf("%s run: %w", a.cfg.Queue, err)
	}

	printThroughput(cmd.OutOrStdout(), a.cfg.Queue, res)
	return nil
}

func printThroughput(w io.Writer, kind string, res pipeline.Result) {
	fmt.Fprintf(w, "Queue %s: %s items, 1 producer → 1 consumer\n", kind, humanize.Comma(int64(res.Items)))
	fmt.Fprintln(w, "─────────────────────────────────────────────────")
	fmt.Fprintf(w, "  Elapsed:     %v\n", res.Elapsed)
	fmt.Fprintf(w, "  Per-op:      %.2f ns/op\n", res.NsPerOp())
	fmt.Fprintf(w, "  Throughput:  %.2f M ops/sec\n", res.OpsPerSec()/1e6)
	fmt.Fprintf(w, "  Empty polls: %s\n", humanize.Comma(int64(res.Polls)))

	if res.HasStats {
		fmt.Fprintf(w, "\nNodes (warm-up included):\n")
		fmt.Fprintf(w, "  Allocated:   %s\n", humanize.Comma(int64(res.Stats.Allocated)))
		fmt.Fprintf(w, "  Recycled:    %s\n", humanize.Comma(int64(res.Stats.Recycled)))
	}
}
