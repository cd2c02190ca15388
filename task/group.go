package task

import (
	"context"
	"sync"
)

// A Group spawns tasks and waits for all of them, in the manner of a
// structured block that only completes when every task started inside it
// has completed.
//
// Go may be called concurrently, including from tasks of the group itself.
type Group struct {
	ctx   context.Context
	mutex sync.Mutex
	tasks []*Task[struct{}]
}

// NewGroup returns a group whose tasks run with contexts derived from ctx.
func NewGroup(ctx context.Context) *Group {
	return &Group{ctx: ctx}
}

// Go spawns f as a new task of the group.
func (g *Group) Go(f func(ctx context.Context) error) {
	t := Spawn(g.ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})
	g.mutex.Lock()
	g.tasks = append(g.tasks, t)
	g.mutex.Unlock()
}

func (g *Group) task(i int) (t *Task[struct{}], ok bool) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if i < len(g.tasks) {
		return g.tasks[i], true
	}
	return nil, false
}

// Wait waits for every task of the group, including tasks added by Go
// while Wait is running, and returns the error of the first failed task in
// the order the tasks were added, or nil.
func (g *Group) Wait() (err error) {
	for i := 0; ; i++ {
		t, ok := g.task(i)
		if !ok {
			return
		}
		if _, terr := t.Wait(); err == nil {
			err = terr
		}
	}
}
