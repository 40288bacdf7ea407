package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestWorkerPoolExecutesSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(3, zerolog.Nop())
	if err := pool.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
	}
	wg.Wait()

	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Errorf("executed tasks = %d, want 20", got)
	}
}

func TestWorkerPoolRecoversFromPanic(t *testing.T) {
	pool := NewWorkerPool(1, zerolog.Nop())
	if err := pool.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	pool.Submit(func() {
		defer wg.Done()
		panic("task blew up")
	})

	// The pool must survive the panic and keep serving tasks.
	var ran int64
	pool.Submit(func() {
		defer wg.Done()
		atomic.StoreInt64(&ran, 1)
	})

	wg.Wait()
	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if atomic.LoadInt64(&ran) != 1 {
		t.Error("task after panic did not run")
	}
}

func TestWorkerPoolStopDrainsQueue(t *testing.T) {
	pool := NewWorkerPool(2, zerolog.Nop())
	if err := pool.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var counter int64
	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}

	// Stop closes the task channel and waits for workers to finish, so
	// everything already queued must have run.
	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if got := atomic.LoadInt64(&counter); got != 10 {
		t.Errorf("executed tasks = %d, want 10", got)
	}
}
