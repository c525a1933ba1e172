package combined_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/spsc-queue/internal/baseline"
	"github.com/randomizedcoder/spsc-queue/queue"
)

// ============================================================================
// Raw SPSC: 1 Producer → 1 Consumer, no order check, no cancel/tick
// ============================================================================
//
// The consumer only spins on Pop, so these numbers are the floor the
// pipeline benchmarks sit on top of.
//
// KEY DIFFERENCE:
// - LinkedQueue: unbounded, the producer never waits
// - RingBuffer, ShardedRing, MPMC: bounded, the producer spins when full

// spinConsumer pops from q until stopped. stop waits for it to exit.
func spinConsumer(pop func()) (stop func()) {
	var (
		done atomic.Bool
		wg   sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for !done.Load() {
			pop()
		}
	}()

	return func() {
		done.Store(true)
		wg.Wait()
	}
}

// BenchmarkSPSC_Linked uses Enqueue/TryDequeue directly, without the Queue
// interface.
func BenchmarkSPSC_Linked(b *testing.B) {
	q := queue.NewLinked[int]()
	stop := spinConsumer(func() { q.TryDequeue() })

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.Enqueue(i)
	}

	b.StopTimer()
	stop()
	b.ReportMetric(float64(q.Stats().Allocated)/float64(b.N), "nodes/op")
}

// BenchmarkSPSC_Queue pushes through the Queue interface for every kind.
func BenchmarkSPSC_Queue(b *testing.B) {
	for _, kind := range baseline.Kinds() {
		b.Run(kind, func(b *testing.B) {
			q, err := baseline.New(kind, benchSize)
			if err != nil {
				b.Fatal(err)
			}
			stop := spinConsumer(func() { q.Pop() })

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				for !q.Push(i) {
				}
			}

			b.StopTimer()
			stop()
		})
	}
}

// BenchmarkSPSC_Channel is the plain select-with-default baseline.
func BenchmarkSPSC_Channel(b *testing.B) {
	ch := make(chan int, benchSize)
	stop := spinConsumer(func() {
		select {
		case <-ch:
		default:
		}
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for {
			select {
			case ch <- i:
				goto sent
			default:
			}
		}
	sent:
	}
	b.StopTimer()
	stop()
}
