// Package parallel provides functions for expressing parallel
// algorithms.
//
// Every function here divides its work in halves recursively, runs one
// half in a new goroutine and the other in the current one, and only
// returns when both halves have terminated. Work items never share an
// accumulator: results are combined after the halves have joined.
package parallel

import (
	"fmt"
	"sync"

	"github.com/exascience/parlab"
	"github.com/exascience/parlab/internal"
)

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated.
//
// If one or more thunks panic, the corresponding goroutines recover
// the panics, and Do eventually panics with the left-most
// recovered panic value.
func Do(thunks ...parlab.Thunk) {
	switch len(thunks) {
	case 0:
		return
	case 1:
		thunks[0]()
		return
	}
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	half := len(thunks) / 2
	go func() {
		defer func() {
			p = recover()
			wg.Done()
		}()
		Do(thunks[half:]...)
	}()
	Do(thunks[:half]...)
	wg.Wait()
	if p != nil {
		panic(internal.WrapPanic(p))
	}
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// The range is specified by a low and high integer, with low <=
// high. The batches are determined by dividing up the size of the
// range (high - low) by n. If n is 0, a reasonable default is used
// that takes runtime.GOMAXPROCS(0) into account.
//
// Batches are disjoint, so f may write to the elements of a
// preallocated slice at the indices of its batch without locking.
//
// Range panics if high < low, or if n < 0. If one or more range
// function invocations panic, Range eventually panics with the
// left-most recovered panic value.
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
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = recover()
					wg.Done()
				}()
				recur(mid, high, n-half)
			}()
			recur(low, mid, half)
			wg.Wait()
			if p != nil {
				panic(internal.WrapPanic(p))
			}
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeReduce receives a range, a batch count n, a range reducer
// reduce, and a pair reducer pair, divides the range into batches, and
// invokes the range reducer for each of these batches in parallel,
// covering the half-open interval from low to high. The results of the
// range reducer invocations are then combined by repeated invocations
// of the pair reducer, always with the left result as the first
// argument.
//
// Batches are formed the same way as in Range, so the shape of the
// combination tree depends on n. For floating-point sums this means
// the result may differ in the last bits from a sequential sum.
//
// RangeReduce panics if high < low, or if n < 0. If one or more reducer
// invocations panic, RangeReduce eventually panics with the left-most
// recovered panic value.
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
			var right T
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = recover()
					wg.Done()
				}()
				right = recur(mid, high, n-half)
			}()
			left := recur(low, mid, half)
			wg.Wait()
			if p != nil {
				panic(internal.WrapPanic(p))
			}
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
