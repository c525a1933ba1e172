package queue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/spsc-queue/queue"
)

func TestLinkedQueue_SingleThreaded(t *testing.T) {
	q := queue.NewLinked[int]()

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	assert.Equal(t, 1, q.Dequeue())
	assert.Equal(t, 2, q.Dequeue())
	assert.Equal(t, 3, q.Dequeue())
	assert.Equal(t, 0, q.Dequeue(), "empty queue should give the zero value")

	_, ok := q.TryDequeue()
	assert.False(t, ok, "TryDequeue on empty queue should return false")
}

func TestLinkedQueue_EmptyOnNew(t *testing.T) {
	q := queue.NewLinked[string]()

	item, ok := q.TryDequeue()
	assert.False(t, ok)
	assert.Equal(t, "", item)
	assert.True(t, q.Empty())

	_, ok = q.Peek()
	assert.False(t, ok, "Peek on empty queue should return false")
}

func TestLinkedQueue_EmptyAfterDrain(t *testing.T) {
	q := queue.NewLinked[int]()

	for round := 0; round < 3; round++ {
		for i := 1; i <= 5; i++ {
			q.Enqueue(i)
		}
		for i := 1; i <= 5; i++ {
			item, ok := q.TryDequeue()
			require.True(t, ok, "round %d item %d", round, i)
			require.Equal(t, i, item)
		}
		item, ok := q.TryDequeue()
		assert.False(t, ok, "round %d: drained queue should report empty", round)
		assert.Equal(t, 0, item, "round %d: no stale item after drain", round)
		assert.True(t, q.Empty())
	}
}

func TestLinkedQueue_DrainedBehavesLikeNew(t *testing.T) {
	fresh := queue.NewLinked[int]()
	reused := queue.NewLinked[int]()

	for i := 0; i < 100; i++ {
		reused.Enqueue(i)
	}
	for i := 0; i < 100; i++ {
		reused.Dequeue()
	}

	ops := []struct {
		enqueue int
		dequeue int
	}{
		{3, 1}, {0, 2}, {5, 0}, {0, 6}, {1, 1},
	}

	next := 1000
	for _, op := range ops {
		for i := 0; i < op.enqueue; i++ {
			fresh.Enqueue(next)
			reused.Enqueue(next)
			next++
		}
		for i := 0; i < op.dequeue; i++ {
			fv, fok := fresh.TryDequeue()
			rv, rok := reused.TryDequeue()
			assert.Equal(t, fok, rok)
			assert.Equal(t, fv, rv)
		}
	}
	assert.Equal(t, fresh.Empty(), reused.Empty())
}

func TestLinkedQueue_DifferentTypes(t *testing.T) {
	type Person struct {
		Name string
		Age  int
	}

	q := queue.NewLinked[Person]()
	alice := Person{Name: "Alice", Age: 30}
	bob := Person{Name: "Bob", Age: 25}

	q.Enqueue(alice)
	q.Enqueue(bob)

	first, ok := q.TryDequeue()
	assert.True(t, ok)
	assert.Equal(t, alice, first)

	second, ok := q.TryDequeue()
	assert.True(t, ok)
	assert.Equal(t, bob, second)

	pq := queue.NewLinked[*Person]()
	pq.Enqueue(&alice)
	p, ok := pq.TryDequeue()
	assert.True(t, ok)
	assert.Same(t, &alice, p)
}

func TestLinkedQueue_ZeroValueItem(t *testing.T) {
	q := queue.NewLinked[int]()
	q.Enqueue(0)

	// Dequeue cannot tell these two apart, TryDequeue can.
	item, ok := q.TryDequeue()
	assert.True(t, ok)
	assert.Equal(t, 0, item)

	item, ok = q.TryDequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, item)
}

func TestLinkedQueue_Peek(t *testing.T) {
	q := queue.NewLinked[int]()
	q.Enqueue(1)
	q.Enqueue(2)

	v, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 1, v, "Peek should not remove the item")

	assert.Equal(t, 1, q.Dequeue())

	v, ok = q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLinkedQueue_NoLossUnderRecycling(t *testing.T) {
	q := queue.NewLinked[int]()

	enqueued := 0
	dequeued := 0
	// Uneven fill/drain sizes walk the free list through every boundary:
	// exhausted, partially used, refreshed from tail.
	sizes := []int{1, 7, 3, 64, 2, 17, 1, 100, 5}
	for _, fill := range sizes {
		for i := 0; i < fill; i++ {
			enqueued++
			q.Enqueue(enqueued)
		}
		// Leave one item behind on odd rounds so the window never fully resets.
		drain := fill
		if fill%2 == 1 && fill > 1 {
			drain = fill - 1
		}
		for i := 0; i < drain; i++ {
			v, ok := q.TryDequeue()
			require.True(t, ok)
			dequeued++
			require.Equal(t, dequeued, v, "item out of order")
		}
	}

	for {
		v, ok := q.TryDequeue()
		if !ok {
			break
		}
		dequeued++
		require.Equal(t, dequeued, v)
	}
	assert.Equal(t, enqueued, dequeued, "every item should be dequeued exactly once")

	stats := q.Stats()
	assert.Positive(t, stats.Recycled, "refills should reuse consumed nodes")
	assert.Equal(t, uint64(enqueued)+1, stats.Allocated+stats.Recycled,
		"every enqueue plus the sentinel is either a fresh or a recycled node")
}

func TestLinkedQueue_RecyclingBoundsAllocations(t *testing.T) {
	q := queue.NewLinked[int]()

	const window = 16
	for round := 0; round < 1000; round++ {
		for i := 0; i < window; i++ {
			q.Enqueue(i)
		}
		for i := 0; i < window; i++ {
			_, ok := q.TryDequeue()
			require.True(t, ok)
		}
	}

	stats := q.Stats()
	// The live window plus the sentinel and the one node the producer cannot
	// reclaim until the consumer moves again.
	assert.LessOrEqual(t, stats.Allocated, uint64(window+2))
}

func TestLinkedQueue_OneReaderOneWriter(t *testing.T) {
	q := queue.NewLinked[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			q.Enqueue(i)
		}
	}()

	errs := make(chan string, 1)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			var item int
			var ok bool
			for item, ok = q.TryDequeue(); !ok; item, ok = q.TryDequeue() {
			}
			if item != i {
				errs <- "FIFO violation"
				return
			}
		}
	}()

	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}

func TestLinkedQueue_Stress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10M item stress test in short mode")
	}

	q := queue.NewLinked[int]()
	const n = 10_000_000

	for i := 0; i < 10_000; i++ {
		q.Enqueue(0)
	}
	for i := 0; i < 10_000; i++ {
		q.Dequeue()
	}

	done := make(chan queue.Stats)
	go func() {
		for i := 1; i <= n; i++ {
			q.Enqueue(i)
		}
		done <- q.Stats()
	}()

	var mismatch, expected, got int
	for i := 1; i <= n; i++ {
		var item int
		var ok bool
		for item, ok = q.TryDequeue(); !ok; item, ok = q.TryDequeue() {
		}
		if item != i && mismatch == 0 {
			mismatch, expected, got = i, i, item
		}
	}
	stats := <-done

	require.Zero(t, mismatch, "FIFO violation: expected %d, got %d", expected, got)
	assert.Equal(t, uint64(n+10_000)+1, stats.Allocated+stats.Recycled)
	assert.Positive(t, stats.Recycled)
}
