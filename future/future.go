// Package future implements single-fulfillment completion values
package future

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Future resolves exactly once, with an optional error
// The zero value is not usable, create with New or Resolved
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

// New creates an unresolved future
func New() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved creates an already resolved future
func Resolved(err error) *Future {
	f := New()
	f.Resolve(err)
	return f
}

// Resolve fulfils the future, only the first call has effect
// Returns true if this call resolved it
func (f *Future) Resolve(err error) bool {
	resolved := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done is closed when the future resolves
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsResolved reports whether the future has resolved
func (f *Future) IsResolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the resolution error, nil while unresolved
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the future resolves or ctx ends
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// All waits until every future resolves or ctx ends and returns the first error
// A failing future does not cut the wait for the others short
func All(ctx context.Context, futures ...*Future) error {
	var g errgroup.Group
	for _, f := range futures {
		if f == nil {
			continue
		}
		g.Go(func() error {
			return f.Wait(ctx)
		})
	}
	return g.Wait()
}

// Go runs fn on a new goroutine and resolves the returned future with its result
func Go(fn func() error) *Future {
	f := New()
	go func() {
		f.Resolve(fn())
	}()
	return f
}
