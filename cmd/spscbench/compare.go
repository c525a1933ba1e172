package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/spsc-queue/internal/baseline"
	"github.com/randomizedcoder/spsc-queue/internal/pipeline"
)

type comparison struct {
	kind     string
	single   pipeline.Result
	pipeline pipeline.Result
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Run every queue kind on one goroutine and as a two-goroutine pipeline.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.compare(cmd)
		},
	}
}

func (a *app) compare(cmd *cobra.Command) error {
	ctx, cancelRun := a.runContext(cmd)
	defer cancelRun()

	var rows []comparison
	for _, kind := range baseline.Kinds() {
		a.logger.Info("measuring", "queue", kind, "items", humanize.Comma(int64(a.cfg.Items)))

		q, err := baseline.New(kind, a.cfg.Size)
		if err != nil {
			return err
		}
		single, err := pipeline.PushPop(q, a.cfg.Items)
		if err != nil {
			return fmt.Errorf("%s push/pop: %w", kind, err)
		}

		// A fresh queue so the pipeline does not start with warmed nodes it
		// did not pay for.
		q, err = baseline.New(kind, a.cfg.Size)
		if err != nil {
			return err
		}
		piped, err := pipeline.Run(ctx, q, pipeline.Config{
			Items:  a.cfg.Items,
			Warmup: a.cfg.Warmup,
			Logger: a.logger,
		})
		if err != nil {
			return fmt.Errorf("%s pipeline: %w", kind, err)
		}

		rows = append(rows, comparison{kind: kind, single: single, pipeline: piped})
	}

	printComparison(cmd.OutOrStdout(), a.cfg.Items, a.cfg.Size, rows)
	return nil
}

func printComparison(w io.Writer, items, size int, rows []comparison) {
	fmt.Fprintf(w, "Comparing queues (%s items, size=%d for bounded queues)\n", humanize.Comma(int64(items)), size)
	fmt.Fprintln(w, "─────────────────────────────────────────────────")

	// Speedups are relative to the buffered channel.
	var ref comparison
	for _, r := range rows {
		if r.kind == baseline.KindChannel {
			ref = r
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUEUE\tPUSH+POP ns/op\tvs channel\tPIPELINE ns/op\tvs channel\tM ops/sec")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.2f\t%s\t%.2f\n",
			r.kind,
			r.single.NsPerOp(), speedup(ref.single, r.single),
			r.pipeline.NsPerOp(), speedup(ref.pipeline, r.pipeline),
			r.pipeline.OpsPerSec()/1e6,
		)
	}
	tw.Flush()
}

func speedup(ref, r pipeline.Result) string {
	if r.NsPerOp() == 0 || ref.NsPerOp() == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", ref.NsPerOp()/r.NsPerOp())
}
