package queue

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSizeReportsWorkerCount(t *testing.T) {
	q := New(5)
	defer q.Join()
	if got := q.Size(); got != 5 {
		t.Fatalf("Size() = %d, want 5", got)
	}
}

func TestSizeDefaultsToOneForNonPositive(t *testing.T) {
	q := New(0)
	defer q.Join()
	if got := q.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1", got)
	}
}

// Scenario 6 from spec.md §8: 100 tasks sleeping 10ms each, then
// finish() observes pending == 0 and all side effects visible. The queue
// remains usable: 10 more tasks, finish() again succeeds.
func TestFinishObservesAllCompletionsAndQueueStaysUsable(t *testing.T) {
	q := New(5)
	defer q.Join()

	var done int64
	for i := 0; i < 100; i++ {
		q.Execute(func() {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&done, 1)
		})
	}
	q.Finish()
	if got := atomic.LoadInt64(&done); got != 100 {
		t.Fatalf("completed = %d, want 100", got)
	}

	for i := 0; i < 10; i++ {
		q.Execute(func() { atomic.AddInt64(&done, 1) })
	}
	q.Finish()
	if got := atomic.LoadInt64(&done); got != 110 {
		t.Fatalf("completed after second batch = %d, want 110", got)
	}
}

func TestTaskPanicDoesNotStallPool(t *testing.T) {
	q := New(2)
	defer q.Join()

	q.Execute(func() { panic("boom") })

	var ran int64
	q.Execute(func() { atomic.AddInt64(&ran, 1) })
	q.Finish()

	if atomic.LoadInt64(&ran) != 1 {
		t.Fatal("task submitted after a panicking task never ran")
	}
}

func TestShutdownAbandonsUnstartedTasks(t *testing.T) {
	q := New(1)

	var ran int64
	block := make(chan struct{})
	q.Execute(func() { <-block })
	q.Execute(func() { atomic.AddInt64(&ran, 1) })

	q.Shutdown()
	close(block)
	q.workers.Wait()

	if atomic.LoadInt64(&ran) != 0 {
		t.Fatal("shutdown did not abandon the unstarted second task")
	}
}

func TestJoinWaitsForAllWorkersToExit(t *testing.T) {
	q := New(3)
	var n int64
	for i := 0; i < 30; i++ {
		q.Execute(func() { atomic.AddInt64(&n, 1) })
	}
	q.Join()
	if atomic.LoadInt64(&n) != 30 {
		t.Fatalf("completed = %d, want 30", n)
	}
}
