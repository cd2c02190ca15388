package parallel_test

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/exascience/parlab/parallel"
	"github.com/exascience/parlab/sequential"
)

func ExampleDo() {
	var fib func(int) int
	fib = func(n int) int {
		if n < 2 {
			return n
		}
		return fib(n-1) + fib(n-2)
	}

	var parallelFib func(int) int
	parallelFib = func(n int) int {
		if n < 20 {
			return fib(n)
		}
		var n1, n2 int
		parallel.Do(
			func() { n1 = parallelFib(n - 1) },
			func() { n2 = parallelFib(n - 2) },
		)
		return n1 + n2
	}

	fmt.Println(parallelFib(30))

	// Output:
	// 832040
}

func ExampleRange() {
	squares := make([]int, 10)
	parallel.Range(0, len(squares), 0, func(low, high int) {
		for i := low; i < high; i++ {
			squares[i] = i * i
		}
	})
	fmt.Println(squares)

	// Output:
	// [0 1 4 9 16 25 36 49 64 81]
}

func numDivisors(n int) int {
	return parallel.IntSum(
		1, n+1, runtime.GOMAXPROCS(0),
		func(low, high int) int {
			var sum int
			for i := low; i < high; i++ {
				if (n % i) == 0 {
					sum++
				}
			}
			return sum
		},
	)
}

func ExampleIntSum() {
	fmt.Println(numDivisors(12))

	// Output:
	// 6
}

func ExampleRangeReduce() {
	findPrimes := func(n int) []int {
		return parallel.RangeReduce(
			2, n, 4*runtime.GOMAXPROCS(0),
			func(low, high int) []int {
				var slice []int
				for i := low; i < high; i++ {
					if numDivisors(i) == 2 {
						slice = append(slice, i)
					}
				}
				return slice
			},
			func(x, y []int) []int {
				return append(x, y...)
			},
		)
	}

	fmt.Println(findPrimes(20))

	// Output:
	// [2 3 5 7 11 13 17 19]
}

func ExampleFloat64Sum() {
	f := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sum := parallel.Float64Sum(0, len(f), runtime.GOMAXPROCS(0), func(low, high int) float64 {
		var sum float64
		for i := low; i < high; i++ {
			sum += f[i]
		}
		return sum
	})
	fmt.Println(sum)

	// Output:
	// 55
}

func TestRangeCoversEveryIndexOnce(t *testing.T) {
	for _, size := range []int{0, 1, 7, 100, 1013} {
		for _, n := range []int{0, 1, 2, 3, 16, 5000} {
			visits := make([]int32, size)
			parallel.Range(0, size, n, func(low, high int) {
				if low > high {
					t.Errorf("inverted batch %v:%v", low, high)
				}
				for i := low; i < high; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			for i, v := range visits {
				if v != 1 {
					t.Fatalf("size %v, n %v: index %v visited %v times", size, n, i, v)
				}
			}
		}
	}
}

func TestRangeReduceMatchesSequential(t *testing.T) {
	reduce := func(low, high int) int {
		var sum int
		for i := low; i < high; i++ {
			sum += i * i
		}
		return sum
	}
	for _, n := range []int{0, 1, 5, 64} {
		par := parallel.IntSum(0, 10000, n, reduce)
		seq := sequential.IntSum(0, 10000, n, reduce)
		if par != seq {
			t.Errorf("n %v: parallel %v, sequential %v", n, par, seq)
		}
	}
}

func TestRangePanicPropagates(t *testing.T) {
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected a panic")
		}
		if !strings.Contains(fmt.Sprint(p), "boom at 99") {
			t.Errorf("unexpected panic value %v", p)
		}
	}()
	parallel.Range(0, 100, 8, func(low, high int) {
		if high == 100 {
			panic(fmt.Sprintf("boom at %v", high-1))
		}
	})
}

func TestRangeInvalidBatchCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a negative batch count")
		}
	}()
	parallel.Range(0, 10, -1, func(int, int) {})
}
