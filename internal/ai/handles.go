package ai

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// HandleCache lazily creates and keeps model handles keyed by name. The
// first caller for a key runs create; concurrent callers for the same key wait
// for that one call instead of starting their own. A successful handle is
// kept for the lifetime of the cache. A failed init is not cached, so the
// next call retries.
//
// The zero value is ready to use.
type HandleCache[T any] struct {
	mu      sync.RWMutex
	handles map[string]T
	group   singleflight.Group
}

// Get returns the handle for key, calling create if it does not exist yet.
//
// create runs with a context that is not canceled when ctx is, so a client
// that disconnects does not abort an init other callers are waiting on. Get
// itself returns ctx.Err() as soon as ctx is done.
func (c *HandleCache[T]) Get(ctx context.Context, key string, create func(context.Context) (T, error)) (T, error) {
	if h, ok := c.lookup(key); ok {
		return h, nil
	}

	initCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if h, ok := c.lookup(key); ok {
			return h, nil
		}
		h, err := create(initCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.handles == nil {
			c.handles = make(map[string]T)
		}
		c.handles[key] = h
		c.mu.Unlock()
		return h, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, fmt.Errorf("initializing %s: %w", key, res.Err)
		}
		return res.Val.(T), nil
	}
}

// Len returns the number of ready handles.
func (c *HandleCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

func (c *HandleCache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handles[key]
	return h, ok
}
