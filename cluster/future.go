package cluster

import (
	"context"
	"fmt"
)

// A Future is a handle for the result of a remote call.
type Future struct {
	pool   *Pool
	worker int
	done   chan struct{}
	value  interface{}
	err    error
}

func newFuture(pool *Pool, worker int) *Future {
	return &Future{pool: pool, worker: worker, done: make(chan struct{})}
}

func (f *Future) resolve(value interface{}, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// Worker returns the id of the worker the call was sent to.
func (f *Future) Worker() int {
	return f.worker
}

// Ready reports whether the result is available, without blocking.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Fetch blocks until the result is available and returns it. It returns
// early with the context's error if ctx is canceled first; the call keeps
// running on its worker and can be fetched again later.
//
// Fetch returns ErrSelfFetch if ctx belongs to a Func running on the
// worker the call is queued on, and the call has not completed yet.
func (f *Future) Fetch(ctx context.Context) (interface{}, error) {
	if ref, ok := ctx.Value(workerKey{}).(workerRef); ok && ref.pool == f.pool && ref.id == f.worker && !f.Ready() {
		return nil, ErrSelfFetch
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FetchAs fetches the result of f and asserts it to T.
func FetchAs[T any](ctx context.Context, f *Future) (result T, err error) {
	value, err := f.Fetch(ctx)
	if err != nil {
		return
	}
	result, ok := value.(T)
	if !ok {
		err = fmt.Errorf("cluster: worker %d returned %T, want %T", f.worker, value, result)
	}
	return
}
