package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/spsc-queue/internal/cancel"
	"github.com/randomizedcoder/spsc-queue/internal/pipeline"
	"github.com/randomizedcoder/spsc-queue/internal/tick"
	"github.com/randomizedcoder/spsc-queue/queue"
)

// pollInterval is long so we measure check overhead, not actual ticks.
const pollInterval = time.Hour

type pollRow struct {
	canceler, ticker string
	res              pipeline.Result
}

func newPollCostCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pollcost",
		Short: "Measure one idle consumer iteration for every canceler and ticker.",
		Long: "Every consumer iteration checks for cancellation, checks the progress ticker and polls the\n" +
			"queue. pollcost times that loop on an empty linked queue so only the checks are measured:\n\n" +
			"  for {\n" +
			"      if canceler.Done() { return }\n" +
			"      if ticker.Tick() { logProgress() }\n" +
			"      queue.Pop()\n" +
			"  }",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.pollCost(cmd)
		},
	}
}

func (a *app) pollCost(cmd *cobra.Command) error {
	var rows []pollRow
	for _, ck := range cancel.Kinds() {
		for _, tk := range tick.Kinds() {
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			c, err := cancel.New(ck)
			if err != nil {
				return err
			}
			t, err := tick.New(tk, pollInterval, tick.DefaultEvery)
			if err != nil {
				return err
			}

			a.logger.Debug("measuring poll loop", "canceler", ck, "ticker", tk)
			res := measurePoll(c, t, a.cfg.Items)

			rows = append(rows, pollRow{canceler: ck, ticker: tk, res: res})
		}
	}

	printPollCost(cmd.OutOrStdout(), a.cfg.Items, rows)
	return nil
}

// measurePoll times n idle polls and then releases c and t.
func measurePoll(c cancel.Canceler, t tick.Ticker, n int) pipeline.Result {
	defer t.Stop()
	defer c.Cancel()

	return pipeline.PollCost(queue.NewLinked[int](), c, t, n)
}

func printPollCost(w io.Writer, iterations int, rows []pollRow) {
	fmt.Fprintf(w, "Benchmarking idle poll loop (%s iterations)\n", humanize.Comma(int64(iterations)))
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────")

	// The standard library pair is the reference.
	var ref, best pollRow
	for _, r := range rows {
		if r.canceler == cancel.KindContext && r.ticker == tick.KindStd {
			ref = r
		}
		if best.res.Items == 0 || r.res.NsPerOp() < best.res.NsPerOp() {
			best = r
		}
	}

	for _, r := range rows {
		fmt.Fprintf(w, "  %-8s + %-7s Total: %v, Per-op: %.2f ns\n",
			r.canceler, r.ticker, r.res.Elapsed, r.res.NsPerOp())
	}
	fmt.Fprintln(w)

	if ref.res.Items == 0 || best.res.NsPerOp() == 0 {
		return
	}

	fmt.Fprintln(w, "Impact Analysis:")
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────")
	savedNs := ref.res.NsPerOp() - best.res.NsPerOp()
	fmt.Fprintf(w, "  Fastest: %s + %s (%.2fx over context + std)\n",
		best.canceler, best.ticker, ref.res.NsPerOp()/best.res.NsPerOp())
	fmt.Fprintf(w, "  Savings per iteration: %.2f ns\n", savedNs)

	for _, rate := range []int{100_000, 1_000_000, 10_000_000} {
		savedPerSec := savedNs * float64(rate) / 1e9
		fmt.Fprintf(w, "  At %s ops/sec: save %.2f ms/sec (%.2f%% of 1 core)\n",
			humanize.Comma(int64(rate)), savedPerSec*1000, savedPerSec*100)
	}
}
