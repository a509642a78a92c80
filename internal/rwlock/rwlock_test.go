package rwlock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReadersDoNotBlockEachOther(t *testing.T) {
	l := New()
	l.AcquireRead(0)
	done := make(chan struct{})
	go func() {
		l.AcquireRead(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second reader blocked behind first reader")
	}
	_ = l.ReleaseRead()
	_ = l.ReleaseRead()
}

func TestWriterExcludesReaders(t *testing.T) {
	l := New()
	ticket := l.AcquireWrite(0)
	acquired := make(chan struct{})
	go func() {
		l.AcquireRead(0)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("reader acquired while writer held the lock")
	case <-time.After(50 * time.Millisecond):
	}

	if err := l.ReleaseWrite(ticket); err != nil {
		t.Fatal(err)
	}
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired after writer released")
	}
	_ = l.ReleaseRead()
}

func TestWriterReentrantReadAndWrite(t *testing.T) {
	l := New()
	t1 := l.AcquireWrite(0)

	// The owning writer can take additional read and write locks without
	// blocking on itself.
	done := make(chan struct{})
	go func() {
		l.AcquireRead(t1)
		t2 := l.AcquireWrite(t1)
		if t2 != t1 {
			t.Errorf("reentrant AcquireWrite returned %v, want %v", t2, t1)
		}
		_ = l.ReleaseWrite(t2)
		_ = l.ReleaseRead()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reentrant acquisitions deadlocked")
	}

	if err := l.ReleaseWrite(t1); err != nil {
		t.Fatal(err)
	}
}

func TestReleaseReadWithoutHoldingIsIllegalState(t *testing.T) {
	l := New()
	if err := l.ReleaseRead(); err != ErrIllegalState {
		t.Fatalf("ReleaseRead() = %v, want ErrIllegalState", err)
	}
}

func TestReleaseWriteByNonOwnerIsWrongOwner(t *testing.T) {
	l := New()
	t1 := l.AcquireWrite(0)
	if err := l.ReleaseWrite(t1 + 1); err != ErrWrongOwner {
		t.Fatalf("ReleaseWrite(wrong ticket) = %v, want ErrWrongOwner", err)
	}
	_ = l.ReleaseWrite(t1)
}

func TestReleaseWriteWithoutHoldingIsWrongOwner(t *testing.T) {
	l := New()
	if err := l.ReleaseWrite(42); err != ErrWrongOwner {
		t.Fatalf("ReleaseWrite(42) on unheld lock = %v, want ErrWrongOwner", err)
	}
}

func TestNewWriterWaitsForReadersToDrain(t *testing.T) {
	l := New()
	l.AcquireRead(0)

	writerDone := make(chan Ticket)
	go func() {
		writerDone <- l.AcquireWrite(0)
	}()

	select {
	case <-writerDone:
		t.Fatal("new writer acquired while a reader was active")
	case <-time.After(50 * time.Millisecond):
	}

	_ = l.ReleaseRead()
	select {
	case ticket := <-writerDone:
		_ = l.ReleaseWrite(ticket)
	case <-time.After(time.Second):
		t.Fatal("writer never acquired after reader released")
	}
}

func TestConcurrentReadersAndWriterNeverSeeTornState(t *testing.T) {
	l := New()
	var writing int32
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				l.AcquireRead(0)
				if atomic.LoadInt32(&writing) != 0 {
					t.Error("reader holds the lock while a writer is mid-update")
				}
				_ = l.ReleaseRead()
			}
		}()
	}

	for i := 0; i < 50; i++ {
		ticket := l.AcquireWrite(0)
		atomic.StoreInt32(&writing, 1)
		atomic.StoreInt32(&writing, 0)
		_ = l.ReleaseWrite(ticket)
	}
	close(stop)
	wg.Wait()
}
