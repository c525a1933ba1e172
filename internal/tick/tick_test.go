package tick_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/spsc-queue/internal/tick"
)

const testInterval = 50 * time.Millisecond

func TestTicker_FiresAfterInterval(t *testing.T) {
	testCases := []struct {
		name   string
		create func() tick.Ticker
	}{
		{"StdTicker", func() tick.Ticker { return tick.NewTicker(testInterval) }},
		{"AtomicTicker", func() tick.Ticker { return tick.NewAtomicTicker(testInterval) }},
		{"BatchTicker", func() tick.Ticker { return tick.NewBatch(testInterval, 1) }}, // every=1 so it checks time on every call
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := tc.create()
			defer ticker.Stop()

			assert.False(t, ticker.Tick(), "expected Tick() = false immediately")

			time.Sleep(testInterval + 20*time.Millisecond)
			assert.True(t, ticker.Tick(), "expected Tick() = true after interval")
			assert.False(t, ticker.Tick(), "expected Tick() = false immediately after tick")
		})
	}
}

func TestTicker_Reset(t *testing.T) {
	testCases := []struct {
		name   string
		create func() tick.Ticker
	}{
		{"StdTicker", func() tick.Ticker { return tick.NewTicker(testInterval) }},
		{"AtomicTicker", func() tick.Ticker { return tick.NewAtomicTicker(testInterval) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := tc.create()
			defer ticker.Stop()

			time.Sleep(testInterval + 20*time.Millisecond)
			require.True(t, ticker.Tick(), "expected Tick() = true after interval")

			ticker.Reset()
			assert.False(t, ticker.Tick(), "expected Tick() = false after Reset()")
		})
	}
}

func TestBatchTicker(t *testing.T) {
	every := 10
	ticker := tick.NewBatch(testInterval, every)
	defer ticker.Stop()

	// First 9 calls never look at the clock.
	for i := 0; i < every-1; i++ {
		assert.False(t, ticker.Tick(), "call %d (before batch)", i+1)
	}

	// 10th call checks time, but the interval hasn't passed.
	assert.False(t, ticker.Tick(), "expected Tick() = false before interval elapsed")

	time.Sleep(testInterval + 20*time.Millisecond)

	for i := 0; i < every-1; i++ {
		assert.False(t, ticker.Tick(), "calls inside a batch never tick")
	}
	assert.True(t, ticker.Tick(), "expected Tick() = true after interval elapsed and batch complete")
}

func TestBatchTicker_Reset(t *testing.T) {
	ticker := tick.NewBatch(testInterval, 10)
	defer ticker.Stop()

	for i := 0; i < 5; i++ {
		ticker.Tick()
	}

	ticker.Reset()

	// A full batch is needed again before the clock is read.
	time.Sleep(testInterval + 20*time.Millisecond)
	ticker.Reset()
	for i := 0; i < 10; i++ {
		assert.False(t, ticker.Tick(), "call %d after Reset()", i+1)
	}
}

func TestBatchTicker_Accessors(t *testing.T) {
	ticker := tick.NewBatch(time.Second, 100)
	assert.Equal(t, 100, ticker.Every())
	assert.Equal(t, time.Second, ticker.Interval())

	assert.Equal(t, 1, tick.NewBatch(time.Second, 0).Every(), "every is clamped to 1")
}

func TestNew(t *testing.T) {
	for _, kind := range tick.Kinds() {
		t.Run(kind, func(t *testing.T) {
			ticker, err := tick.New(kind, time.Hour, 0)
			require.NoError(t, err)
			defer ticker.Stop()
			assert.False(t, ticker.Tick())
		})
	}

	ticker, err := tick.New(tick.KindBatch, time.Hour, 0)
	require.NoError(t, err)
	assert.Equal(t, tick.DefaultEvery, ticker.(*tick.BatchTicker).Every())

	_, err = tick.New("tsc", time.Hour, 0)
	assert.ErrorIs(t, err, tick.ErrUnknownKind)
}
