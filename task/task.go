/*
Package task provides lightweight tasks with explicit completion handles,
and bounded channels for handing values from one task to another.

A Task wraps a function that is not started when the task is created.
Scheduling a task returns immediately; the caller later waits on the task
to retrieve its result, or polls whether it is done. While a task is
sleeping or waiting on a channel it reports itself as Blocked:

	Created -> Runnable -> Running -> Done | Failed
	                        Running <-> Blocked

Tasks are goroutines underneath, so they are preemptively scheduled by the
Go runtime. The states above are bookkeeping that makes the lifecycle
observable.
*/
package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/exascience/parlab/internal"
)

// State is the scheduling status of a task.
type State int32

const (
	// Created tasks have not been scheduled yet.
	Created State = iota

	// Runnable tasks have been scheduled but not started.
	Runnable

	// Running tasks are executing their function.
	Running

	// Blocked tasks are waiting in Sleep or on a Channel.
	Blocked

	// Done tasks have returned without an error.
	Done

	// Failed tasks have returned an error or panicked.
	Failed
)

var stateNames = [...]string{"created", "runnable", "running", "blocked", "done", "failed"}

func (s State) String() string {
	if (s < 0) || (int(s) >= len(stateNames)) {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

// tracker is implemented by every Task instantiation, so that blocking
// operations can find the enclosing task in a context.
type tracker interface {
	setState(State)
}

type taskKey struct{}

// block marks the task carried by ctx, if any, as Blocked and returns a
// function that marks it Running again.
func block(ctx context.Context) func() {
	t, ok := ctx.Value(taskKey{}).(tracker)
	if !ok {
		return func() {}
	}
	t.setState(Blocked)
	return func() { t.setState(Running) }
}

// A Task is a unit of work with a completion handle.
//
// The zero Task is not valid; use New or Spawn.
type Task[T any] struct {
	ctx      context.Context
	f        func(ctx context.Context) (T, error)
	state    atomic.Int32
	schedule sync.Once
	done     chan struct{}
	result   T
	err      error
	panic    interface{}
}

// New creates a task that will run f with a context derived from ctx.
// The task does not run until Schedule is called.
func New[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Task[T] {
	return &Task[T]{ctx: ctx, f: f, done: make(chan struct{})}
}

// Spawn creates a task and schedules it.
func Spawn[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Task[T] {
	return New(ctx, f).Schedule()
}

func (t *Task[T]) setState(s State) {
	t.state.Store(int32(s))
}

// State returns the current state of the task.
func (t *Task[T]) State() State {
	return State(t.state.Load())
}

// Schedule makes the task runnable and returns immediately. Scheduling a
// task more than once has no further effect.
func (t *Task[T]) Schedule() *Task[T] {
	t.schedule.Do(func() {
		t.setState(Runnable)
		go t.run()
	})
	return t
}

func (t *Task[T]) run() {
	defer close(t.done)
	defer func() {
		if p := recover(); p != nil {
			t.panic = p
			t.setState(Failed)
		}
	}()
	t.setState(Running)
	t.result, t.err = t.f(context.WithValue(t.ctx, taskKey{}, t))
	if t.err != nil {
		t.setState(Failed)
	} else {
		t.setState(Done)
	}
}

// Done reports whether the task has terminated, either normally or by
// failing.
func (t *Task[T]) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Finished returns a channel that is closed when the task terminates.
func (t *Task[T]) Finished() <-chan struct{} {
	return t.done
}

// Wait blocks until the task terminates and returns its result. A task
// that has not been scheduled yet is scheduled first.
//
// If the task panicked, Wait panics with the recovered value, annotated
// with the stack trace of the task.
func (t *Task[T]) Wait() (T, error) {
	t.Schedule()
	<-t.done
	if t.panic != nil {
		panic(internal.WrapPanic(t.panic))
	}
	return t.result, t.err
}

// Sleep pauses the calling task for at least d, reporting it as Blocked
// meanwhile. It returns early with the context's error if ctx is canceled.
func Sleep(ctx context.Context, d time.Duration) error {
	defer block(ctx)()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
