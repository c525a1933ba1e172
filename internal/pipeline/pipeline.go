// Package pipeline runs a queue.Queue[int] between one producer goroutine and
// one consumer goroutine and checks that every value arrives once and in
// order.
//
// The producer pushes 1..N, spinning while a bounded queue is full. The
// consumer busy-polls Pop and compares each value with the one it expects
// next. Neither side blocks, so a stop signal (cancel.Canceler) and a progress
// trigger (tick.Ticker) are polled on every consumer iteration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/spsc-queue/internal/cancel"
	"github.com/randomizedcoder/spsc-queue/internal/logging"
	"github.com/randomizedcoder/spsc-queue/internal/tick"
	"github.com/randomizedcoder/spsc-queue/queue"
)

var (
	// ErrOrder is returned when the consumer sees a value other than the one
	// it expects next: a lost, duplicated or reordered item.
	ErrOrder = errors.New("pipeline: FIFO order violated")

	// ErrAborted is returned when the run is stopped before every item has
	// been consumed.
	ErrAborted = errors.New("pipeline: aborted")

	// ErrWarmup is returned when a queue refuses a warm-up push or pop.
	ErrWarmup = errors.New("pipeline: warm-up failed")

	// ErrInvalid is returned for a negative item count.
	ErrInvalid = errors.New("pipeline: invalid config")
)

// Config controls a Run.
type Config struct {
	// Items is the number of values pushed through the queue.
	Items int

	// Warmup is the number of single-goroutine push/pop pairs done before the
	// timed run. Zero skips the warm-up.
	Warmup int

	// Canceler stops both goroutines. Defaults to an AtomicCanceler.
	// Cancelling ctx cancels it too.
	Canceler cancel.Canceler

	// Ticker triggers progress logging from the consumer. When nil and
	// ProgressInterval is positive, Run creates a BatchTicker.
	Ticker tick.Ticker

	// ProgressInterval is used only when Ticker is nil. Zero disables
	// progress logging.
	ProgressInterval time.Duration

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Result describes a finished run.
type Result struct {
	// Items is the number of values that made it through the queue.
	Items int

	// Elapsed is the wall time of the timed section.
	Elapsed time.Duration

	// Polls is the number of times the consumer found the queue empty.
	Polls uint64

	// Stats holds node counters when the queue exposes them (LinkedQueue).
	Stats    queue.Stats
	HasStats bool
}

// NsPerOp is the average time per item in nanoseconds.
func (r Result) NsPerOp() float64 {
	if r.Items == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Items)
}

// OpsPerSec is the average number of items per second.
func (r Result) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Items) / r.Elapsed.Seconds()
}

type statser interface {
	Stats() queue.Stats
}

// Run pushes cfg.Items values through q and verifies their order.
//
// q must be empty and must not be in use by any other goroutine. On success
// the returned Result covers only the timed section, not the warm-up.
func Run(ctx context.Context, q queue.Queue[int], cfg Config) (Result, error) {
	if cfg.Items < 0 || cfg.Warmup < 0 {
		return Result{}, fmt.Errorf("%w: items=%d warmup=%d", ErrInvalid, cfg.Items, cfg.Warmup)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	if cfg.Warmup > 0 {
		if err := Warmup(q, cfg.Warmup); err != nil {
			return Result{}, err
		}
		logger.Debug("warm-up done", "pairs", humanize.Comma(int64(cfg.Warmup)))
	}

	c := cfg.Canceler
	if c == nil {
		c = cancel.NewAtomic()
	}
	stop := cancel.Watch(ctx, c)
	defer stop()

	t := cfg.Ticker
	if t == nil && cfg.ProgressInterval > 0 {
		t = tick.NewBatch(cfg.ProgressInterval, tick.DefaultEvery)
		defer t.Stop()
	}

	var (
		g        errgroup.Group
		received int
		polls    uint64
	)

	start := time.Now()

	g.Go(func() error {
		produce(q, c, cfg.Items)
		return nil
	})

	g.Go(func() error {
		var err error
		received, polls, err = consume(q, c, t, cfg.Items, logger, start)
		if err != nil {
			// Release a producer spinning on a full queue.
			c.Cancel()
		}
		return err
	})

	err := g.Wait()
	elapsed := time.Since(start)

	res := Result{
		Items:   received,
		Elapsed: elapsed,
		Polls:   polls,
	}
	// The producer has been joined, so its counters are safe to read.
	if s, ok := q.(statser); ok {
		res.Stats = s.Stats()
		res.HasStats = true
	}

	if err != nil {
		if errors.Is(err, ErrAborted) && ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", err, context.Cause(ctx))
		}
		return res, err
	}

	logger.Debug("pipeline done",
		"items", humanize.Comma(int64(received)),
		"elapsed", elapsed,
		"polls", humanize.Comma(int64(polls)),
	)

	return res, nil
}

// produce pushes 1..n. It gives up silently once c is cancelled; the consumer
// reports why.
func produce(q queue.Queue[int], c cancel.Canceler, n int) {
	for v := 1; v <= n; v++ {
		for !q.Push(v) {
			if c.Done() {
				return
			}
		}
	}
}

// consume pops until n values have arrived in order.
func consume(q queue.Queue[int], c cancel.Canceler, t tick.Ticker, n int,
	logger *slog.Logger, start time.Time) (int, uint64, error) {
	var polls uint64

	expected := 1
	for expected <= n {
		if c.Done() {
			return expected - 1, polls, fmt.Errorf("%w after %s of %s items",
				ErrAborted, humanize.Comma(int64(expected-1)), humanize.Comma(int64(n)))
		}

		if t != nil && t.Tick() {
			logProgress(logger, expected-1, n, time.Since(start))
		}

		v, ok := q.Pop()
		if !ok {
			polls++
			continue
		}

		if v != expected {
			return expected - 1, polls, fmt.Errorf("%w: got %d, want %d", ErrOrder, v, expected)
		}
		expected++
	}

	return n, polls, nil
}

func logProgress(logger *slog.Logger, done, total int, elapsed time.Duration) {
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}
	logger.Info("progress",
		"received", humanize.Comma(int64(done)),
		"total", humanize.Comma(int64(total)),
		"rate", humanize.SIWithDigits(rate, 2, "ops/s"),
	)
}
