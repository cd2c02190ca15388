package cluster

import (
	"context"

	"github.com/exascience/parlab/internal"
)

// PMap applies f to every element of xs on the workers of p, sending the
// elements round-robin, and returns the results in the order of xs. It
// returns the error of the left-most failed call.
func PMap[T, R any](ctx context.Context, p *Pool, xs []T, f func(ctx context.Context, x T) (R, error)) ([]R, error) {
	futures := make([]*Future, len(xs))
	for i, x := range xs {
		futures[i] = p.Spawn(func(ctx context.Context, _ int) (interface{}, error) {
			return f(ctx, x)
		})
	}
	results := make([]R, len(xs))
	var err error
	for i, future := range futures {
		r, ferr := FetchAs[R](ctx, future)
		if ferr != nil {
			if err == nil {
				err = ferr
			}
			continue
		}
		results[i] = r
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Reduce partitions the half-open interval [0, n) into one contiguous
// range per worker, evaluates f for each range on its owning worker, and
// combines the partial results from left to right once all of them have
// arrived. It returns the first error in worker order.
func Reduce[R any](
	ctx context.Context,
	p *Pool,
	n int,
	f func(ctx context.Context, low, high int) (R, error),
	combine func(x, y R) R,
) (result R, err error) {
	futures := make([]*Future, p.Size())
	for i := range futures {
		low, high := internal.Bounds(n, len(futures), i)
		futures[i] = p.RemoteCall(i+1, func(ctx context.Context, _ int) (interface{}, error) {
			return f(ctx, low, high)
		})
	}
	partials := make([]R, len(futures))
	for i, future := range futures {
		if partials[i], err = FetchAs[R](ctx, future); err != nil {
			return result, err
		}
	}
	result = partials[0]
	for _, partial := range partials[1:] {
		result = combine(result, partial)
	}
	return
}
