package pool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestSubmitRunsTasksAndReturnsResults(t *testing.T) {
	p := New(4)
	defer p.Close()

	futures := make([]*Future, 10)
	for i := 0; i < 10; i++ {
		i := i
		futures[i] = p.Submit(func() (interface{}, error) {
			return i * i, nil
		})
	}
	for i, f := range futures {
		res, err := f.Wait()
		if err != nil {
			t.Fatalf("task %d: %v", i, err)
		}
		if res.(int) != i*i {
			t.Fatalf("task %d: got %v, want %d", i, res, i*i)
		}
	}
}

func TestSubmitPropagatesTaskError(t *testing.T) {
	p := New(2)
	defer p.Close()

	wantErr := errors.New("boom")
	f := p.Submit(func() (interface{}, error) { return nil, wantErr })
	if _, err := f.Wait(); !errors.Is(err, wantErr) {
		t.Fatalf("Wait() err = %v, want %v", err, wantErr)
	}
}

func TestSubmitRecoversPanicAsTaskPanic(t *testing.T) {
	p := New(2)
	defer p.Close()

	f := p.Submit(func() (interface{}, error) {
		panic("kaboom")
	})
	_, err := f.Wait()
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatalf("Wait() err = %v, want ErrTaskPanic", err)
	}
}

func TestPoolRunsConcurrently(t *testing.T) {
	p := New(8)
	defer p.Close()

	var counter int64
	futures := make([]*Future, 50)
	for i := range futures {
		futures[i] = p.Submit(func() (interface{}, error) {
			atomic.AddInt64(&counter, 1)
			return nil, nil
		})
	}
	for _, f := range futures {
		if _, err := f.Wait(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if atomic.LoadInt64(&counter) != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}
