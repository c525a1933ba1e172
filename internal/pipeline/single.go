package pipeline

import (
	"fmt"
	"time"

	"github.com/randomizedcoder/spsc-queue/internal/cancel"
	"github.com/randomizedcoder/spsc-queue/internal/tick"
	"github.com/randomizedcoder/spsc-queue/queue"
)

// Warmup pushes n zeros and then pops them all, on the calling goroutine, so
// the first timed operations do not pay for page faults and node allocation.
//
// An unbounded queue takes all n in one fill, which leaves a LinkedQueue with
// n nodes in its free list. A bounded queue is filled until it refuses a
// push and drained again, as many times as it takes to move n items.
func Warmup(q queue.Queue[int], n int) error {
	for done := 0; done < n; {
		filled := 0
		for done+filled < n && q.Push(0) {
			filled++
		}
		if filled == 0 {
			return fmt.Errorf("%w: push %d refused", ErrWarmup, done)
		}

		for i := 0; i < filled; i++ {
			if _, ok := q.Pop(); !ok {
				return fmt.Errorf("%w: pop %d found queue empty", ErrWarmup, done+i)
			}
		}
		done += filled
	}
	return nil
}

// PushPop times n push/pop pairs on the calling goroutine. Nothing crosses a
// core, so it measures the bare cost of the queue operations.
func PushPop(q queue.Queue[int], n int) (Result, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if !q.Push(0) {
			return Result{Items: i}, fmt.Errorf("%w: push %d refused", ErrWarmup, i)
		}
		if _, ok := q.Pop(); !ok {
			return Result{Items: i}, fmt.Errorf("%w: pop %d found queue empty", ErrWarmup, i)
		}
	}
	return Result{Items: n, Elapsed: time.Since(start)}, nil
}

// PollCost times n iterations of an idle consumer loop: check c, check t,
// then Pop. q should be empty so every Pop misses. Polls counts the misses.
func PollCost(q queue.Queue[int], c cancel.Canceler, t tick.Ticker, n int) Result {
	var polls uint64

	start := time.Now()
	for i := 0; i < n; i++ {
		_ = c.Done()
		_ = t.Tick()
		if _, ok := q.Pop(); !ok {
			polls++
		}
	}

	return Result{Items: n, Elapsed: time.Since(start), Polls: polls}
}
