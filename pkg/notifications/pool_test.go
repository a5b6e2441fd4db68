package notifications

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolPriorityOrdering(t *testing.T) {
	pool := newWorkerPool(1)

	var (
		mu    sync.Mutex
		order []Priority
	)
	record := func(p Priority) func() {
		return func() {
			mu.Lock()
			order = append(order, p)
			mu.Unlock()
		}
	}

	// Occupy the single worker so every following Submit lands in the queue
	// and gets reordered by priority before any of them runs.
	block := make(chan struct{})
	require.NoError(t, pool.Submit(PriorityLow, func() { <-block }))

	require.NoError(t, pool.Submit(PriorityLow, record(PriorityLow)))
	require.NoError(t, pool.Submit(PriorityMedium, record(PriorityMedium)))
	require.NoError(t, pool.Submit(PriorityCritical, record(PriorityCritical)))
	require.NoError(t, pool.Submit(PriorityHigh, record(PriorityHigh)))

	close(block)
	pool.Close()

	assert.Equal(t, []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}, order)
}

func TestWorkerPoolFIFOWithinPriority(t *testing.T) {
	pool := newWorkerPool(1)

	var (
		mu    sync.Mutex
		order []int
	)

	block := make(chan struct{})
	require.NoError(t, pool.Submit(PriorityLow, func() { <-block }))

	for i := range 5 {
		require.NoError(t, pool.Submit(PriorityMedium, func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}

	close(block)
	pool.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWorkerPoolCloseDrainsQueuedJobs(t *testing.T) {
	pool := newWorkerPool(2)

	var (
		mu   sync.Mutex
		runs int
	)
	for range 20 {
		require.NoError(t, pool.Submit(PriorityMedium, func() {
			mu.Lock()
			runs++
			mu.Unlock()
		}))
	}

	pool.Close()
	assert.Equal(t, 20, runs)
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := newWorkerPool(1)
	pool.Close()

	err := pool.Submit(PriorityCritical, func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)

	// Close is idempotent
	pool.Close()
}
