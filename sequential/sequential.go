// Package sequential provides sequential implementations of the
// functions provided by the parallel package. Batches are formed exactly
// as in package parallel, but invoked one after the other in the current
// goroutine, which makes this package the serial baseline for timing
// comparisons and a reference for testing.
package sequential

import (
	"fmt"

	"github.com/exascience/parlab"
	"github.com/exascience/parlab/internal"
)

// Do receives zero or more thunks and executes them sequentially.
func Do(thunks ...parlab.Thunk) {
	for _, thunk := range thunks {
		thunk()
	}
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f parlab.RangeFunc) {
	var recur func(int, int, int)
	recur = func(low, high, n int) {
		switch {
		case n == 1:
			f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				f(low, high)
				return
			}
			recur(low, mid, half)
			recur(mid, high, n-half)
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeReduce receives a range, a batch count n, a range reducer
// reduce, and a pair reducer pair, divides the range into batches, and
// invokes the range reducer for each of these batches sequentially,
// combining the results with the pair reducer in the same tree shape as
// parallel.RangeReduce.
//
// RangeReduce panics if high < low, or if n < 0.
func RangeReduce[T any](
	low, high, n int,
	reduce func(low, high int) T,
	pair func(x, y T) T,
) T {
	var recur func(int, int, int) T
	recur = func(low, high, n int) T {
		switch {
		case n == 1:
			return reduce(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return reduce(low, high)
			}
			left := recur(low, mid, half)
			right := recur(mid, high, n-half)
			return pair(left, right)
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// IntSum is RangeReduce with + as the pair reducer.
func IntSum(low, high, n int, reduce func(low, high int) int) int {
	return RangeReduce(low, high, n, reduce, func(x, y int) int { return x + y })
}

// Float64Sum is RangeReduce with + as the pair reducer.
func Float64Sum(low, high, n int, reduce func(low, high int) float64) float64 {
	return RangeReduce(low, high, n, reduce, func(x, y float64) float64 { return x + y })
}
