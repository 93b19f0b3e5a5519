// Package future turns one-shot, externally signalled completions into
// values that can be awaited.
//
// Many collaborators report completion through a pair of callbacks: one for
// success and one for failure, exactly one of which is expected to fire. A
// Signal adapts that shape into something a caller can wait on, either by
// blocking (Await) or by registering a continuation that is delivered
// through a scheduler (Then).
//
// # Single Resolution
//
// The first of Succeed or Fail resolves the Signal. Any later call is a
// no-op that reports false, so a collaborator that fires both callbacks, or
// fires one twice, can never panic or overwrite the first result.
//
// # No Timeouts
//
// A Signal whose collaborator never fires never resolves. Await only returns
// early when its context is cancelled, which is meant for process shutdown,
// not for bounding an operation.
package future

import (
	"context"
	"errors"
	"sync"
)

// Signal is a single-producer, single-resolution completion cell.
type Signal[T any] struct {
	mu       sync.Mutex
	consumed bool
	done     chan struct{}
	value    T
	err      error
	waiters  []func(T, error)
}

// NewSignal returns an unresolved Signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{done: make(chan struct{})}
}

// Resolved returns a Signal that has already succeeded with v.
func Resolved[T any](v T) *Signal[T] {
	s := NewSignal[T]()
	s.Succeed(v)
	return s
}

// Failed returns a Signal that has already failed with err.
func Failed[T any](err error) *Signal[T] {
	s := NewSignal[T]()
	s.Fail(err)
	return s
}

// Bridge registers a success sink and a failure sink with a callback-style
// operation and returns the Signal they resolve. start is called
// synchronously; it may fire either sink immediately or later from any
// goroutine.
func Bridge[T any](start func(onSuccess func(T), onFailure func(error))) *Signal[T] {
	s := NewSignal[T]()
	onSuccess, onFailure := s.Sinks()
	start(onSuccess, onFailure)
	return s
}

// Sinks returns the success and failure callbacks for this Signal. Only the
// first callback to fire has any effect.
func (s *Signal[T]) Sinks() (func(T), func(error)) {
	return func(v T) { s.Succeed(v) }, func(err error) { s.Fail(err) }
}

// Succeed resolves the Signal with v. It reports whether this call was the
// one that resolved it.
func (s *Signal[T]) Succeed(v T) bool {
	return s.resolve(v, nil)
}

// Fail resolves the Signal with err. A nil err is replaced with a generic
// error so that a failure can never be mistaken for success.
func (s *Signal[T]) Fail(err error) bool {
	if err == nil {
		err = errors.New("operation failed")
	}
	var zero T
	return s.resolve(zero, err)
}

func (s *Signal[T]) resolve(v T, err error) bool {
	s.mu.Lock()
	if s.consumed {
		s.mu.Unlock()
		return false
	}
	s.consumed = true
	s.value = v
	s.err = err
	waiters := s.waiters
	s.waiters = nil
	close(s.done)
	s.mu.Unlock()

	for _, w := range waiters {
		w(v, err)
	}
	return true
}

// Done is closed once the Signal resolves.
func (s *Signal[T]) Done() <-chan struct{} {
	return s.done
}

// Resolved reports whether the Signal has resolved.
func (s *Signal[T]) Resolved() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Result returns the resolved value and error. It must only be called after
// Done is closed.
func (s *Signal[T]) Result() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.err
}

// Await blocks until the Signal resolves or ctx is done.
//
// Await must not be called from the goroutine that is expected to resolve
// the Signal (typically the event loop); use Then there instead.
func (s *Signal[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then arranges for fn to run once the Signal resolves. fn is handed to post
// rather than being called directly, so it always runs as its own scheduler
// task, even if the Signal is already resolved. If post refuses the task the
// continuation is lost; post is expected to log that.
func (s *Signal[T]) Then(post func(func()) bool, fn func(T, error)) {
	deliver := func(v T, err error) {
		post(func() { fn(v, err) })
	}

	s.mu.Lock()
	if !s.consumed {
		s.waiters = append(s.waiters, deliver)
		s.mu.Unlock()
		return
	}
	v, err := s.value, s.err
	s.mu.Unlock()
	deliver(v, err)
}
