package notifications

import (
	"container/heap"
	"sync"
)

// workerPool runs submitted jobs on a fixed number of goroutines. Pending
// jobs are ordered by payload priority, FIFO within the same priority, so
// CRITICAL work overtakes queued LOW/MEDIUM/HIGH work under contention.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending jobHeap
	seq     uint64
	closed  bool
	wg      sync.WaitGroup
}

type job struct {
	priority Priority
	seq      uint64
	run      func()
}

type jobHeap []job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *jobHeap) Push(x any) { *h = append(*h, x.(job)) }

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// newWorkerPool starts a pool with the given number of workers.
func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}

	p := &workerPool{}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.pending) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.pending) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		j := heap.Pop(&p.pending).(job)
		p.mu.Unlock()

		j.run()
	}
}

// Submit enqueues a job at the given priority.
func (p *workerPool) Submit(priority Priority, run func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.seq++
	heap.Push(&p.pending, job{priority: priority, seq: p.seq, run: run})
	p.cond.Signal()
	return nil
}

// Close stops accepting work and waits for queued jobs to drain.
func (p *workerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}
