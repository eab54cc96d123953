package renderer

import "sync"

// Scheduler defers chart drawing until after the current render pass.
type Scheduler interface {
	AfterPaint(fn func())
}

type immediate struct{}

func (immediate) AfterPaint(fn func()) { fn() }

// Immediate returns a Scheduler that runs callbacks synchronously.
func Immediate() Scheduler { return immediate{} }

// FrameQueue queues callbacks until Flush is called, the way a browser
// runs post-paint work on the next frame.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

// AfterPaint queues fn.
func (q *FrameQueue) AfterPaint(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the callbacks queued before the call, in order, and returns
// how many ran. Callbacks queued while flushing wait for the next Flush.
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
