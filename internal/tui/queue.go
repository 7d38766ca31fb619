package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramQueue delivers scheduled closures to a Bubble Tea program's
// update loop, where they run between messages. Closures scheduled before
// Attach are buffered. Delivery is FIFO.
type ProgramQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	send    func(tea.Msg)
	closed  bool
}

// NewProgramQueue creates an unattached queue
func NewProgramQueue() *ProgramQueue {
	q := &ProgramQueue{}
	q.cond = sync.NewCond(&q.mu)
	go q.pump()
	return q
}

// Attach starts delivery through send, typically (*tea.Program).Send
func (q *ProgramQueue) Attach(send func(tea.Msg)) {
	q.mu.Lock()
	q.send = send
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Schedule implements dispatch.Queue
func (q *ProgramQueue) Schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.pending = append(q.pending, fn)
	q.cond.Signal()
}

// Close stops delivery. Undelivered closures are dropped.
func (q *ProgramQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.cond.Broadcast()
	q.mu.Unlock()
}

// pump forwards closures one at a time; send blocks until the program
// accepts the message, so the lock is released around it
func (q *ProgramQueue) pump() {
	for {
		q.mu.Lock()
		for !q.closed && (q.send == nil || len(q.pending) == 0) {
			q.cond.Wait()
		}
		if q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		send := q.send
		q.mu.Unlock()

		send(runMsg{fn: fn})
	}
}
