// Package dispatch provides delivery contexts: serialized FIFO executors
// onto which caller-visible completions are scheduled.
package dispatch

import (
	"log/slog"
	"sync"
)

// Queue runs scheduled closures one at a time, in the order scheduled,
// on a single logical execution context.
type Queue interface {
	Schedule(fn func())
}

// SerialQueue drains closures on one dedicated goroutine.
// Schedule never blocks; the backlog is unbounded.
type SerialQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool
	stopped chan struct{}
	logger  *slog.Logger
}

// NewSerialQueue starts the draining goroutine
func NewSerialQueue(logger *slog.Logger) *SerialQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &SerialQueue{
		stopped: make(chan struct{}),
		logger:  logger,
	}
	q.cond = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

// Schedule appends fn to the queue. Closures scheduled after Close are dropped.
func (q *SerialQueue) Schedule(fn func()) {
	if fn == nil {
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("dropping closure scheduled on closed queue")
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	q.cond.Signal()
}

// Close stops accepting work, runs everything already queued and waits for
// the draining goroutine to exit. Calling Close from a queued closure deadlocks.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Signal()
	}
	q.mu.Unlock()
	<-q.stopped
}

func (q *SerialQueue) loop() {
	defer close(q.stopped)

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.run(fn)
	}
}

func (q *SerialQueue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("scheduled closure panicked", "panic", r)
		}
	}()
	fn()
}

// ManualQueue records scheduled closures until the owner runs them.
// It suits hosts that pump their own loop, and tests that need to observe
// whether a completion has been delivered yet.
type ManualQueue struct {
	mu      sync.Mutex
	pending []func()
}

// NewManualQueue creates an empty manual queue
func NewManualQueue() *ManualQueue {
	return &ManualQueue{}
}

// Schedule records fn without running it
func (q *ManualQueue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of closures waiting to run
func (q *ManualQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunNext runs the oldest pending closure on the calling goroutine.
// It reports false if nothing was pending.
func (q *ManualQueue) RunNext() bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	fn := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	q.mu.Unlock()

	fn()
	return true
}

// Drain runs pending closures until none remain, including closures
// scheduled while draining, and returns how many ran.
func (q *ManualQueue) Drain() int {
	n := 0
	for q.RunNext() {
		n++
	}
	return n
}
