// Package montecarlo provides Monte Carlo estimation of pi and random
// walks.
//
// Every parallel variant gives each unit of work its own random stream,
// derived from a seed and the index of the unit, so no generator is ever
// shared between goroutines. For a fixed seed and partition, the results
// are reproducible.
package montecarlo

import (
	"context"
	"math/rand/v2"
	"runtime"

	"github.com/shopspring/decimal"

	"github.com/exascience/parlab/cluster"
	"github.com/exascience/parlab/internal"
	"github.com/exascience/parlab/parallel"
)

// NewRand returns a generator for the stream identified by seed and
// stream.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Trials draws n points uniformly from the unit square and returns how
// many of them fall inside the quarter unit circle.
func Trials(rng *rand.Rand, n int) (inside int) {
	for i := 0; i < n; i++ {
		x, y := rng.Float64(), rng.Float64()
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return
}

// EstimatePi returns 4·inside/total. It returns 0 if total is 0.
func EstimatePi(inside, total int) float64 {
	if total == 0 {
		return 0
	}
	return 4 * float64(inside) / float64(total)
}

// Estimate runs total trials on a single stream and returns the estimate.
func Estimate(total int, seed uint64) float64 {
	return EstimatePi(Trials(NewRand(seed, 0), total), total)
}

// partialTrials runs the trials of batch i out of batches, on the stream
// of that batch.
func partialTrials(total, batches, i int, seed uint64) int {
	low, high := internal.Bounds(total, batches, i)
	return Trials(NewRand(seed, uint64(i)), high-low)
}

// EstimatePiParallel splits total trials into the given number of batches,
// runs the batches in parallel, and sums the partial counts. It returns the
// estimate and the number of points inside the circle.
//
// If batches <= 0, one batch per logical CPU is used.
func EstimatePiParallel(total, batches int, seed uint64) (float64, int) {
	if batches <= 0 {
		batches = runtime.GOMAXPROCS(0)
	}
	inside := parallel.IntSum(0, batches, batches, func(low, high int) (inside int) {
		for i := low; i < high; i++ {
			inside += partialTrials(total, batches, i, seed)
		}
		return
	})
	return EstimatePi(inside, total), inside
}

// EstimatePiDistributed splits total trials across the workers of pool,
// one contiguous share per worker, and sums the partial counts once every
// worker has reported.
func EstimatePiDistributed(ctx context.Context, pool *cluster.Pool, total int, seed uint64) (float64, int, error) {
	inside, err := cluster.Reduce(ctx, pool, total,
		func(_ context.Context, low, high int) (int, error) {
			return Trials(NewRand(seed, uint64(low)), high-low), nil
		},
		func(x, y int) int { return x + y },
	)
	if err != nil {
		return 0, 0, err
	}
	return EstimatePi(inside, total), inside, nil
}

// ExactRatio returns 4·inside/total as a decimal rounded to the given
// number of places, for printing estimates beyond float64 precision. It
// returns zero if total is 0.
func ExactRatio(inside, total int64, places int32) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(4 * inside).DivRound(decimal.NewFromInt(total), places)
}
