// Package future implements single-assignment deferred results.
//
// A Promise is the write side, a Future the read side. A promise resolves at
// most once, to either a value or an error. Observers registered before
// resolution run on the resolving goroutine, in registration order.
// Observers registered afterwards are handed to the promise's Scheduler when
// it has one (see NewPromiseOn), and run on the registering goroutine when it
// does not.
package future

import (
	"context"
	"errors"
	"sync"
)

// ErrNilFailure replaces a nil error passed to Promise.Failure
var ErrNilFailure = errors.New("future: failed with nil error")

// Scheduler runs closures on a delivery context. dispatch.Queue satisfies it.
type Scheduler interface {
	Schedule(fn func())
}

type observer[T any] struct {
	onSuccess func(T)
	onFailure func(error)
}

// Future is the read side of a Promise
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	value     T
	err       error
	observers []observer[T]
	scheduler Scheduler // nil: late observers run inline
}

// Promise resolves its Future exactly once
type Promise[T any] struct {
	future *Future[T]
}

// NewPromise creates an unresolved promise
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{future: &Future[T]{done: make(chan struct{})}}
}

// NewPromiseOn creates an unresolved promise whose late observers are
// redispatched through s instead of running on the registering goroutine
func NewPromiseOn[T any](s Scheduler) *Promise[T] {
	p := NewPromise[T]()
	p.future.scheduler = s
	return p
}

// Succeeded returns a future already resolved with v
func Succeeded[T any](v T) *Future[T] {
	p := NewPromise[T]()
	p.Success(v)
	return p.Future()
}

// Failed returns a future already resolved with err
func Failed[T any](err error) *Future[T] {
	p := NewPromise[T]()
	p.Failure(err)
	return p.Future()
}

// Future returns the read side of the promise
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

// Success resolves the promise with v. It reports false, and changes
// nothing, if the promise was already resolved.
func (p *Promise[T]) Success(v T) bool {
	return p.future.complete(v, nil)
}

// Failure resolves the promise with err. It reports false, and changes
// nothing, if the promise was already resolved.
func (p *Promise[T]) Failure(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}
	var zero T
	return p.future.complete(zero, err)
}

// Complete resolves with err when it is non-nil, otherwise with v
func (p *Promise[T]) Complete(v T, err error) bool {
	if err != nil {
		return p.Failure(err)
	}
	return p.Success(v)
}

func (f *Future[T]) complete(v T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.value = v
	f.err = err
	pending := f.observers
	f.observers = nil
	close(f.done)
	f.mu.Unlock()

	for _, o := range pending {
		f.notify(o)
	}
	return true
}

func (f *Future[T]) notify(o observer[T]) {
	if f.err != nil {
		if o.onFailure != nil {
			o.onFailure(f.err)
		}
		return
	}
	if o.onSuccess != nil {
		o.onSuccess(f.value)
	}
}

func (f *Future[T]) register(o observer[T]) *Future[T] {
	f.mu.Lock()
	if !f.completed {
		f.observers = append(f.observers, o)
		f.mu.Unlock()
		return f
	}
	scheduler := f.scheduler
	f.mu.Unlock()

	if scheduler != nil {
		scheduler.Schedule(func() { f.notify(o) })
		return f
	}
	f.notify(o)
	return f
}

// OnSuccess registers cb to run with the value if the future succeeds
func (f *Future[T]) OnSuccess(cb func(T)) *Future[T] {
	return f.register(observer[T]{onSuccess: cb})
}

// OnFailure registers cb to run with the error if the future fails
func (f *Future[T]) OnFailure(cb func(error)) *Future[T] {
	return f.register(observer[T]{onFailure: cb})
}

// OnComplete registers cb to run once the future resolves either way.
// Exactly one of the two arguments is meaningful: err is nil on success.
func (f *Future[T]) OnComplete(cb func(T, error)) *Future[T] {
	var zero T
	return f.register(observer[T]{
		onSuccess: func(v T) { cb(v, nil) },
		onFailure: func(err error) { cb(zero, err) },
	})
}

// IsCompleted reports whether the future has resolved
func (f *Future[T]) IsCompleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// IsSuccess reports whether the future resolved with a value
func (f *Future[T]) IsSuccess() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed && f.err == nil
}

// IsFailure reports whether the future resolved with an error
func (f *Future[T]) IsFailure() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed && f.err != nil
}

// Value returns the success value, ok=false while unresolved or on failure
func (f *Future[T]) Value() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed || f.err != nil {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Err returns the failure, nil while unresolved or on success
func (f *Future[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Done is closed once the future resolves
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx is done.
// Cancelling ctx stops the wait only; the underlying work keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}
