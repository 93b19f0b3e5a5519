package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSignal_FirstResolutionWins(t *testing.T) {
	s := NewSignal[int]()
	onSuccess, onFailure := s.Sinks()

	if s.Resolved() {
		t.Fatal("new signal already resolved")
	}
	onSuccess(1)
	onSuccess(2)
	onFailure(errors.New("late"))

	v, err := s.Result()
	if v != 1 || err != nil {
		t.Errorf("Result() = %d, %v; want 1, nil", v, err)
	}
	if s.Succeed(3) || s.Fail(errors.New("x")) {
		t.Error("resolving twice reported success")
	}
}

func TestSignal_FailFirst(t *testing.T) {
	boom := errors.New("boom")
	s := Failed[string](boom)
	s.Succeed("ignored")

	v, err := s.Result()
	if v != "" || !errors.Is(err, boom) {
		t.Errorf("Result() = %q, %v; want \"\", boom", v, err)
	}
}

func TestSignal_FailNilIsStillFailure(t *testing.T) {
	s := NewSignal[int]()
	s.Fail(nil)
	if _, err := s.Result(); err == nil {
		t.Error("Fail(nil) resolved without an error")
	}
}

func TestSignal_ConcurrentResolution(t *testing.T) {
	s := NewSignal[int]()
	var wg sync.WaitGroup
	wins := make(chan int, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if s.Succeed(i) {
				wins <- i
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Errorf("%d callers resolved the signal, want 1", count)
	}
}

func TestSignal_Await(t *testing.T) {
	s := Bridge(func(onSuccess func(int), onFailure func(error)) {
		go func() {
			time.Sleep(10 * time.Millisecond)
			onSuccess(42)
		}()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := s.Await(ctx)
	if err != nil || v != 42 {
		t.Errorf("Await() = %d, %v; want 42, nil", v, err)
	}
}

func TestSignal_AwaitContextDone(t *testing.T) {
	s := NewSignal[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Await(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Await() error = %v, want context.Canceled", err)
	}
}

// queue is a post function that collects tasks.
type queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queue) post(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
	return true
}

func (q *queue) run() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

func TestSignal_ThenIsPosted(t *testing.T) {
	q := &queue{}
	s := NewSignal[int]()

	var got int
	s.Then(q.post, func(v int, err error) { got = v })
	if q.run() != 0 {
		t.Fatal("continuation posted before resolution")
	}

	s.Succeed(7)
	if got != 0 {
		t.Fatal("continuation ran inline instead of being posted")
	}
	if q.run() != 1 || got != 7 {
		t.Errorf("continuation result = %d, want 7", got)
	}
}

func TestSignal_ThenAfterResolution(t *testing.T) {
	q := &queue{}
	s := Resolved("done")

	var got string
	s.Then(q.post, func(v string, err error) { got = v })
	if got != "" {
		t.Fatal("continuation ran inline")
	}
	q.run()
	if got != "done" {
		t.Errorf("got %q, want done", got)
	}
}

func TestSignal_Done(t *testing.T) {
	s := NewSignal[struct{}]()
	select {
	case <-s.Done():
		t.Fatal("Done closed before resolution")
	default:
	}
	s.Succeed(struct{}{})
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed after resolution")
	}
}
