package ai

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestHandleCacheInitOnce(t *testing.T) {
	var cache HandleCache[string]
	var calls atomic.Int32
	release := make(chan struct{})

	create := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "handle", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := cache.Get(context.Background(), "model", create)
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			results[i] = h
		}(i)
	}

	// Let the goroutines pile up on the in-flight init.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("init called %d times, want 1", n)
	}
	for i, h := range results {
		if h != "handle" {
			t.Errorf("result %d = %q, want handle", i, h)
		}
	}

	// Later calls hit the cache.
	if _, err := cache.Get(context.Background(), "model", create); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("init called %d times after cache hit, want 1", n)
	}
}

func TestHandleCacheFailureNotCached(t *testing.T) {
	var cache HandleCache[int]
	attempts := 0
	create := func(ctx context.Context) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, errors.New("hub unavailable")
		}
		return 7, nil
	}

	if _, err := cache.Get(context.Background(), "k", create); err == nil {
		t.Fatal("expected first init to fail")
	}
	if cache.Len() != 0 {
		t.Fatalf("failed init was cached")
	}

	h, err := cache.Get(context.Background(), "k", create)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if h != 7 {
		t.Errorf("handle = %d, want 7", h)
	}
}

func TestHandleCacheKeysIndependent(t *testing.T) {
	var cache HandleCache[string]
	for _, key := range []string{"a", "b"} {
		h, err := cache.Get(context.Background(), key, func(context.Context) (string, error) {
			return "handle-" + key, nil
		})
		if err != nil {
			t.Fatalf("Get(%s): %v", key, err)
		}
		if h != "handle-"+key {
			t.Errorf("Get(%s) = %q", key, h)
		}
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}
}

func TestHandleCacheCallerCancelDoesNotAbortInit(t *testing.T) {
	var cache HandleCache[string]
	release := make(chan struct{})
	initErr := make(chan error, 1)

	create := func(ctx context.Context) (string, error) {
		<-release
		initErr <- ctx.Err()
		return "handle", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "model", create)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Get after cancel = %v, want context.Canceled", err)
	}

	close(release)
	if err := <-initErr; err != nil {
		t.Errorf("init context was canceled: %v", err)
	}

	// The detached init completes and its handle is served to the next caller.
	h, err := cache.Get(context.Background(), "model", create)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h != "handle" {
		t.Errorf("handle = %q", h)
	}
}
