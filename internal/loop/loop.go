// Package loop provides a single-goroutine, cooperative event loop.
//
// Every task posted to a Loop runs to completion on the goroutine that called
// Run, in FIFO order. Tasks never run in parallel with each other, so state
// touched only from loop tasks needs no further coordination among them.
// Long work is expected to split itself into tasks and re-post the remainder
// with YieldOnce, giving queued events a chance to run in between.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync"

	"github.com/ironsheep/image-editor-mcp/internal/future"
)

// ErrClosed is returned when posting to a loop that has stopped.
var ErrClosed = errors.New("event loop closed")

// Loop is a FIFO task queue drained by a single goroutine.
//
// The queue is unbounded so that a task running on the loop can always
// re-post itself without blocking.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
	logger *log.Logger
}

// New creates a Loop. A nil logger falls back to the standard logger.
func New(logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Run drains tasks on the calling goroutine until ctx is done. Tasks still
// queued at that point are discarded and later posts fail with ErrClosed.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()

	for {
		task, ok := l.next()
		if ok {
			l.runTask(task)
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

func (l *Loop) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Printf("event loop task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	task()
}

func (l *Loop) close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
}

// YieldOnce queues fn behind every task that is already pending. It reports
// false, and logs, when the loop has stopped.
func (l *Loop) YieldOnce(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Printf("event loop closed, dropping task")
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Yield returns a Signal that resolves once every task queued before the call
// has run.
func (l *Loop) Yield() *future.Signal[struct{}] {
	return future.Bridge(func(onSuccess func(struct{}), onFailure func(error)) {
		if !l.YieldOnce(func() { onSuccess(struct{}{}) }) {
			onFailure(ErrClosed)
		}
	})
}

// Call runs fn on the loop and blocks until it has returned. It must not be
// called from a loop task.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := future.NewSignal[struct{}]()
	posted := l.YieldOnce(func() {
		defer done.Succeed(struct{}{})
		fn()
	})
	if !posted {
		return ErrClosed
	}
	if _, err := done.Await(ctx); err != nil {
		return fmt.Errorf("waiting for event loop: %w", err)
	}
	return nil
}

// Pending reports how many tasks are queued.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}
