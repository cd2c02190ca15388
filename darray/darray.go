/*
Package darray provides arrays whose index range is partitioned across
the workers of a cluster.Pool.

Every worker owns one contiguous chunk of a DArray. Chunks are built on
their owning worker and are never modified afterwards; operations that
transform an array run on the owners and produce a new DArray with the
same partition. The elements are only collected into one contiguous slice
when Gather is called.
*/
package darray

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/exascience/parlab/cluster"
)

// A DArray is a distributed array of T.
type DArray[T any] struct {
	pool      *cluster.Pool
	partition Partition
	chunks    [][]T
}

// build asks every worker to produce its own chunk and waits for all of
// them.
func build[T any](
	ctx context.Context,
	pool *cluster.Pool,
	partition Partition,
	chunk func(ctx context.Context, worker int, r Range) ([]T, error),
) (*DArray[T], error) {
	futures := make([]*cluster.Future, partition.Workers())
	for i := range futures {
		worker := i + 1
		r := partition.Range(worker)
		futures[i] = pool.RemoteCall(worker, func(ctx context.Context, worker int) (interface{}, error) {
			return chunk(ctx, worker, r)
		})
	}
	d := &DArray[T]{pool: pool, partition: partition, chunks: make([][]T, len(futures))}
	for i, future := range futures {
		c, err := cluster.FetchAs[[]T](ctx, future)
		if err != nil {
			return nil, fmt.Errorf("darray: building chunk of worker %d: %w", i+1, err)
		}
		if len(c) != partition.Range(i+1).Len() {
			return nil, fmt.Errorf("darray: worker %d built %d elements, want %d", i+1, len(c), partition.Range(i+1).Len())
		}
		d.chunks[i] = c
	}
	return d, nil
}

// New creates a DArray of n elements across all workers of pool. Each
// worker computes init for the indices it owns.
func New[T any](ctx context.Context, pool *cluster.Pool, n int, init func(i int) T) (*DArray[T], error) {
	return build(ctx, pool, NewPartition(n, pool.Size()),
		func(_ context.Context, _ int, r Range) ([]T, error) {
			chunk := make([]T, r.Len())
			for i := range chunk {
				chunk[i] = init(r.Low + i)
			}
			return chunk, nil
		})
}

// Zeros creates a DArray of n zero values.
func Zeros[T any](ctx context.Context, pool *cluster.Pool, n int) (*DArray[T], error) {
	return build(ctx, pool, NewPartition(n, pool.Size()),
		func(_ context.Context, _ int, r Range) ([]T, error) {
			return make([]T, r.Len()), nil
		})
}

// Rand creates a DArray of n values drawn uniformly from [0, 1). Every
// worker draws from its own generator, seeded from seed and its id.
func Rand(ctx context.Context, pool *cluster.Pool, n int, seed uint64) (*DArray[float64], error) {
	return build(ctx, pool, NewPartition(n, pool.Size()),
		func(_ context.Context, worker int, r Range) ([]float64, error) {
			rng := rand.New(rand.NewPCG(seed, uint64(worker)))
			chunk := make([]float64, r.Len())
			for i := range chunk {
				chunk[i] = rng.Float64()
			}
			return chunk, nil
		})
}

// Distribute copies xs into a DArray, sending each worker a copy of the
// chunk it owns.
func Distribute[T any](ctx context.Context, pool *cluster.Pool, xs []T) (*DArray[T], error) {
	partition := NewPartition(len(xs), pool.Size())
	chunks := make([][]T, partition.Workers())
	for i := range chunks {
		r := partition.Range(i + 1)
		chunks[i] = slices.Clone(xs[r.Low:r.High])
	}
	return build(ctx, pool, partition,
		func(_ context.Context, worker int, _ Range) ([]T, error) {
			return chunks[worker-1], nil
		})
}

// Len returns the number of elements.
func (d *DArray[T]) Len() int {
	return d.partition.Len()
}

// Partition returns the partition of d.
func (d *DArray[T]) Partition() Partition {
	return d.partition
}

// LocalPart returns a copy of the chunk owned by the given worker.
func (d *DArray[T]) LocalPart(worker int) []T {
	d.partition.Range(worker)
	return slices.Clone(d.chunks[worker-1])
}

// At returns the element at index i.
func (d *DArray[T]) At(i int) T {
	owner := d.partition.Owner(i)
	return d.chunks[owner-1][i-d.partition.Range(owner).Low]
}

// Gather collects all chunks into one contiguous slice.
func (d *DArray[T]) Gather() []T {
	result := make([]T, 0, d.Len())
	for _, chunk := range d.chunks {
		result = append(result, chunk...)
	}
	return result
}

// Map applies f to every element of d on the owning workers and returns a
// new DArray with the same partition.
func Map[T, R any](ctx context.Context, d *DArray[T], f func(x T) R) (*DArray[R], error) {
	return build(ctx, d.pool, d.partition,
		func(_ context.Context, worker int, _ Range) ([]R, error) {
			chunk := d.chunks[worker-1]
			result := make([]R, len(chunk))
			for i, x := range chunk {
				result[i] = f(x)
			}
			return result, nil
		})
}

// Reduce applies f to the chunk of every worker on that worker, and then
// combines the partial results from left to right.
func Reduce[T, R any](ctx context.Context, d *DArray[T], f func(chunk []T) R, combine func(x, y R) R) (result R, err error) {
	futures := make([]*cluster.Future, d.partition.Workers())
	for i := range futures {
		futures[i] = d.pool.RemoteCall(i+1, func(_ context.Context, worker int) (interface{}, error) {
			return f(d.chunks[worker-1]), nil
		})
	}
	for i, future := range futures {
		partial, ferr := cluster.FetchAs[R](ctx, future)
		if ferr != nil {
			return result, fmt.Errorf("darray: reducing chunk of worker %d: %w", i+1, ferr)
		}
		if i == 0 {
			result = partial
		} else {
			result = combine(result, partial)
		}
	}
	return
}
