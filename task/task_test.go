package task_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/exascience/parlab/task"
)

// waitForState polls until the task reports want or the deadline passes.
func waitForState[T any](t *testing.T, tk *task.Task[T], want task.State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for tk.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("task state is %v, want %v", tk.State(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func ExampleSpawn() {
	t := task.Spawn(context.Background(), func(ctx context.Context) (int, error) {
		if err := task.Sleep(ctx, 10*time.Millisecond); err != nil {
			return 0, err
		}
		return 1 + 2, nil
	})
	result, err := t.Wait()
	fmt.Println(result, err, t.Done())

	// Output:
	// 3 <nil> true
}

func ExampleProduce() {
	ctx := context.Background()
	ch, producer := task.Produce(ctx, 1, func(ctx context.Context, ch *task.Channel[string]) error {
		if err := ch.Put(ctx, "start"); err != nil {
			return err
		}
		for i := 1; i <= 4; i++ {
			if err := ch.Put(ctx, fmt.Sprint(2*i)); err != nil {
				return err
			}
		}
		return ch.Put(ctx, "stop")
	})
	for v := range ch.All(ctx) {
		fmt.Println(v)
	}
	_, err := producer.Wait()
	fmt.Println(err)

	// Output:
	// start
	// 2
	// 4
	// 6
	// 8
	// stop
	// <nil>
}

func TestLifecycle(t *testing.T) {
	release := make(chan struct{})
	tk := task.New(context.Background(), func(ctx context.Context) (string, error) {
		<-release
		return "ok", nil
	})
	if s := tk.State(); s != task.Created {
		t.Fatalf("new task is %v", s)
	}
	if tk.Done() {
		t.Fatal("unscheduled task reports done")
	}
	tk.Schedule()
	waitForState(t, tk, task.Running)
	close(release)
	result, err := tk.Wait()
	if err != nil || result != "ok" {
		t.Fatalf("Wait() = %q, %v", result, err)
	}
	if s := tk.State(); s != task.Done {
		t.Errorf("finished task is %v", s)
	}
}

func TestScheduleReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	start := time.Now()
	tk := task.Spawn(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 0, nil
	})
	if time.Since(start) > time.Second {
		t.Error("Spawn blocked")
	}
	if tk.Done() {
		t.Error("task finished before release")
	}
}

func TestSleepReportsBlocked(t *testing.T) {
	tk := task.Spawn(context.Background(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, task.Sleep(ctx, 200*time.Millisecond)
	})
	waitForState(t, tk, task.Blocked)
	if _, err := tk.Wait(); err != nil {
		t.Fatal(err)
	}
	if s := tk.State(); s != task.Done {
		t.Errorf("finished task is %v", s)
	}
}

func TestErrorMarksFailed(t *testing.T) {
	boom := errors.New("boom")
	tk := task.Spawn(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if _, err := tk.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() error = %v", err)
	}
	if s := tk.State(); s != task.Failed {
		t.Errorf("failed task is %v", s)
	}
}

func TestPanicIsRethrownByWait(t *testing.T) {
	tk := task.Spawn(context.Background(), func(ctx context.Context) (int, error) {
		panic("task exploded")
	})
	<-tk.Finished()
	if s := tk.State(); s != task.Failed {
		t.Errorf("panicked task is %v", s)
	}
	defer func() {
		if p := recover(); p == nil || !strings.Contains(fmt.Sprint(p), "task exploded") {
			t.Errorf("unexpected panic value %v", p)
		}
	}()
	tk.Wait()
}

func TestWaitSchedulesCreatedTask(t *testing.T) {
	tk := task.New(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})
	if v, _ := tk.Wait(); v != 7 {
		t.Errorf("Wait() = %v", v)
	}
}

func TestStateString(t *testing.T) {
	if s := task.Blocked.String(); s != "blocked" {
		t.Errorf("Blocked.String() = %q", s)
	}
	if s := task.State(42).String(); s != "State(42)" {
		t.Errorf("State(42).String() = %q", s)
	}
}

func TestGroupWaitsForAll(t *testing.T) {
	g := task.NewGroup(context.Background())
	results := make([]int, 8)
	for i := range results {
		g.Go(func(ctx context.Context) error {
			if err := task.Sleep(ctx, time.Duration(8-i)*time.Millisecond); err != nil {
				return err
			}
			results[i] = i * i
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r != i*i {
			t.Errorf("result %v = %v", i, r)
		}
	}
}

func TestGroupReturnsLeftmostError(t *testing.T) {
	g := task.NewGroup(context.Background())
	first, second := errors.New("first"), errors.New("second")
	g.Go(func(ctx context.Context) error { return nil })
	g.Go(func(ctx context.Context) error { return first })
	g.Go(func(ctx context.Context) error { return second })
	if err := g.Wait(); !errors.Is(err, first) {
		t.Errorf("Wait() = %v", err)
	}
}

func TestGroupGoFromGroupTask(t *testing.T) {
	g := task.NewGroup(context.Background())
	var count atomic.Int32
	g.Go(func(ctx context.Context) error {
		for range 4 {
			g.Go(func(ctx context.Context) error {
				count.Add(1)
				return nil
			})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if n := count.Load(); n != 4 {
		t.Errorf("nested tasks ran %v times, want 4", n)
	}
}
