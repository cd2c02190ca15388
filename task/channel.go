package task

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
)

// ErrClosed is returned by operations on a closed channel.
var ErrClosed = errors.New("task: channel closed")

// A Channel is a bounded queue for handing values between tasks. Put
// blocks while the channel is full and Take blocks while it is empty; a
// task blocked in either reports the Blocked state.
//
// A channel with capacity 0 is a rendezvous: every Put waits for a
// matching Take.
type Channel[T any] struct {
	values    chan T
	closed    chan struct{}
	closeOnce sync.Once
}

// NewChannel returns a channel that buffers up to capacity values.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("invalid channel capacity: %v", capacity))
	}
	return &Channel[T]{
		values: make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// Put appends v to the channel, waiting while the channel is full. It
// returns ErrClosed if the channel is closed, or the context's error if
// ctx is canceled first.
func (c *Channel[T]) Put(ctx context.Context, v T) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}
	select {
	case c.values <- v:
		return nil
	default:
	}
	defer block(ctx)()
	select {
	case c.values <- v:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Take removes and returns the oldest value, waiting while the channel is
// empty. Values put before Close can still be taken after it; once they
// are drained, Take returns ErrClosed.
func (c *Channel[T]) Take(ctx context.Context) (v T, err error) {
	select {
	case v = <-c.values:
		return v, nil
	default:
	}
	defer block(ctx)()
	select {
	case v = <-c.values:
		return v, nil
	case <-c.closed:
		select {
		case v = <-c.values:
			return v, nil
		default:
			return v, ErrClosed
		}
	case <-ctx.Done():
		return v, ctx.Err()
	}
}

// Close closes the channel. Closing a channel more than once has no further
// effect.
func (c *Channel[T]) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Len returns the number of buffered values.
func (c *Channel[T]) Len() int {
	return len(c.values)
}

// Cap returns the capacity of the channel.
func (c *Channel[T]) Cap() int {
	return cap(c.values)
}

// All returns an iterator that takes values until the channel is closed
// and drained, or ctx is canceled.
func (c *Channel[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := c.Take(ctx)
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Produce creates a channel with the given capacity and spawns a producer
// task that feeds it. The channel is closed when the producer returns.
func Produce[T any](
	ctx context.Context,
	capacity int,
	producer func(ctx context.Context, ch *Channel[T]) error,
) (*Channel[T], *Task[struct{}]) {
	ch := NewChannel[T](capacity)
	t := Spawn(ctx, func(ctx context.Context) (struct{}, error) {
		defer ch.Close()
		return struct{}{}, producer(ctx, ch)
	})
	return ch, t
}
