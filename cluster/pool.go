/*
Package cluster provides a pool of isolated workers that accept remote
calls and return futures.

Workers are numbered from 1 and each serves its own inbox, one request
at a time. Workers share no state with each other or with the caller:
a request carries everything it needs, and its result travels back
through a Future. Functions sent to a worker should therefore capture
their inputs by value, so that a worker never reads memory the caller
may still modify.

Since a worker serves one request at a time, a Func must not wait for
another call queued on its own worker: such a call cannot start before
the Func returns. Fetching a pending future of the current worker with
the context passed to the Func fails with ErrSelfFetch instead of
blocking forever.
*/
package cluster

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrClosed is returned for calls sent to a closed pool.
	ErrClosed = errors.New("cluster: pool closed")

	// ErrSelfFetch is returned when a worker fetches a pending call that
	// is queued on that same worker.
	ErrSelfFetch = errors.New("cluster: worker fetches its own pending call")
)

// A Func is executed on a worker. It receives the pool context and the id
// of the worker it runs on.
type Func func(ctx context.Context, worker int) (interface{}, error)

// A RemoteError reports a panic that occurred on a worker.
type RemoteError struct {
	Worker int
	Value  interface{}
	Stack  []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("cluster: worker %d panicked: %v\n%s", e.Worker, e.Value, e.Stack)
}

// workerKey carries the executing worker in the context passed to a Func.
type workerKey struct{}

type workerRef struct {
	pool *Pool
	id   int
}

type request struct {
	f      Func
	future *Future
}

// inboxSize bounds the number of queued requests per worker.
const inboxSize = 64

/*
A Pool is a fixed set of workers.

The zero Pool is not valid; use NewPool. A Pool must be closed to release
its goroutines.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	inboxes []chan request
	next    atomic.Uint64
	mutex   sync.RWMutex
	closed  bool
}

// NewPool starts n workers. If n <= 0, runtime.GOMAXPROCS(0) workers are
// started. The workers pass a context derived from ctx to every Func they
// execute.
func NewPool(ctx context.Context, n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	p := &Pool{
		ctx:     gctx,
		cancel:  cancel,
		group:   group,
		inboxes: make([]chan request, n),
	}
	for i := range p.inboxes {
		inbox := make(chan request, inboxSize)
		p.inboxes[i] = inbox
		id := i + 1
		group.Go(func() error {
			for req := range inbox {
				req.future.resolve(p.invoke(id, req.f))
			}
			return nil
		})
	}
	return p
}

func (p *Pool) invoke(id int, f Func) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RemoteError{Worker: id, Value: r, Stack: debug.Stack()}
		}
	}()
	return f(context.WithValue(p.ctx, workerKey{}, workerRef{p, id}), id)
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.inboxes)
}

// Workers returns the ids of all workers in ascending order.
func (p *Pool) Workers() []int {
	ids := make([]int, len(p.inboxes))
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// RemoteCall sends f to the worker with the given id and returns a future
// for its result without waiting for it.
//
// RemoteCall panics if there is no worker with that id.
func (p *Pool) RemoteCall(id int, f Func) *Future {
	if (id < 1) || (id > len(p.inboxes)) {
		panic(fmt.Sprintf("invalid worker id: %v", id))
	}
	future := newFuture(p, id)
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.closed {
		future.resolve(nil, ErrClosed)
		return future
	}
	p.inboxes[id-1] <- request{f, future}
	return future
}

// Spawn sends f to the next worker in round-robin order.
func (p *Pool) Spawn(f Func) *Future {
	id := int((p.next.Add(1)-1)%uint64(len(p.inboxes))) + 1
	return p.RemoteCall(id, f)
}

// Close stops accepting calls, waits until every queued call has been
// executed, and releases the workers. Closing a pool more than once has
// no further effect.
func (p *Pool) Close() error {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return nil
	}
	p.closed = true
	for _, inbox := range p.inboxes {
		close(inbox)
	}
	p.mutex.Unlock()
	err := p.group.Wait()
	p.cancel()
	return err
}
