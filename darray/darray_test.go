package darray_test

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/exascience/parlab/cluster"
	"github.com/exascience/parlab/darray"
)

func ExampleDistribute() {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 3)
	defer pool.Close()

	d, err := darray.Distribute(ctx, pool, []int{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, worker := range pool.Workers() {
		fmt.Println(worker, d.Partition().Range(worker), d.LocalPart(worker))
	}
	doubled, _ := darray.Map(ctx, d, func(x int) int { return 2 * x })
	fmt.Println(doubled.Gather())

	// Output:
	// 1 {0 3} [1 2 3]
	// 2 {3 6} [4 5 6]
	// 3 {6 8} [7 8]
	// [2 4 6 8 10 12 14 16]
}

func TestPartitionOwner(t *testing.T) {
	p := darray.NewPartition(10, 4)
	if p.Len() != 10 || p.Workers() != 4 {
		t.Fatalf("Len() = %v, Workers() = %v", p.Len(), p.Workers())
	}
	for i := 0; i < p.Len(); i++ {
		owner := p.Owner(i)
		if r := p.Range(owner); i < r.Low || i >= r.High {
			t.Errorf("index %v: owner %v has range %v", i, owner, r)
		}
	}
}

func TestPartitionOwnerOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	darray.NewPartition(4, 2).Owner(4)
}

func TestGatherRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 5)
	defer pool.Close()
	xs := make([]float64, 1001)
	for i := range xs {
		xs[i] = float64(i) / 7
	}
	d, err := darray.Distribute(ctx, pool, xs)
	if err != nil {
		t.Fatal(err)
	}
	xs[0] = -1 // the array holds its own copy
	got := d.Gather()
	if got[0] != 0 {
		t.Errorf("distributed array shares memory with its input")
	}
	xs[0] = 0
	if !slices.Equal(got, xs) {
		t.Error("Gather does not reproduce the input")
	}
	for _, i := range []int{0, 200, 1000} {
		if d.At(i) != xs[i] {
			t.Errorf("At(%v) = %v, want %v", i, d.At(i), xs[i])
		}
	}
}

func TestNewAndReduce(t *testing.T) {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 4)
	defer pool.Close()
	d, err := darray.New(ctx, pool, 100, func(i int) int { return i + 1 })
	if err != nil {
		t.Fatal(err)
	}
	sum, err := darray.Reduce(ctx, d,
		func(chunk []int) int {
			var s int
			for _, x := range chunk {
				s += x
			}
			return s
		},
		func(x, y int) int { return x + y },
	)
	if err != nil || sum != 5050 {
		t.Errorf("Reduce() = %v, %v", sum, err)
	}
}

func TestZerosAndRand(t *testing.T) {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 3)
	defer pool.Close()
	z, err := darray.Zeros[int](ctx, pool, 7)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(z.Gather()) != "[0 0 0 0 0 0 0]" {
		t.Errorf("Zeros gathered %v", z.Gather())
	}
	r1, err := darray.Rand(ctx, pool, 50, 42)
	if err != nil {
		t.Fatal(err)
	}
	r2, _ := darray.Rand(ctx, pool, 50, 42)
	if !slices.Equal(r1.Gather(), r2.Gather()) {
		t.Error("Rand is not reproducible for equal seeds")
	}
	for _, x := range r1.Gather() {
		if x < 0 || x >= 1 {
			t.Fatalf("value %v outside [0, 1)", x)
		}
	}
}

func TestMapKeepsPartition(t *testing.T) {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 2)
	defer pool.Close()
	d, _ := darray.New(ctx, pool, 5, func(i int) int { return i })
	strs, err := darray.Map(ctx, d, func(x int) string { return fmt.Sprint("#", x) })
	if err != nil {
		t.Fatal(err)
	}
	if strs.Partition().Range(2) != d.Partition().Range(2) {
		t.Error("Map changed the partition")
	}
	if fmt.Sprint(strs.Gather()) != "[#0 #1 #2 #3 #4]" {
		t.Errorf("Map gathered %v", strs.Gather())
	}
}

func TestEmptyArray(t *testing.T) {
	ctx := context.Background()
	pool := cluster.NewPool(ctx, 3)
	defer pool.Close()
	d, err := darray.Distribute(ctx, pool, []int{})
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 0 || len(d.Gather()) != 0 {
		t.Errorf("empty array has %v elements", d.Len())
	}
}
