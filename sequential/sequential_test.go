package sequential_test

import (
	"fmt"
	"testing"

	"github.com/exascience/parlab/sequential"
)

func ExampleRange() {
	sequential.Range(0, 10, 3, func(low, high int) {
		fmt.Println(low, high)
	})

	// Output:
	// 0 4
	// 4 7
	// 7 10
}

func TestDoRunsInOrder(t *testing.T) {
	var order []int
	sequential.Do(
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
		func() { order = append(order, 3) },
	)
	if fmt.Sprint(order) != "[1 2 3]" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestFloat64SumEmptyRange(t *testing.T) {
	sum := sequential.Float64Sum(5, 5, 0, func(low, high int) float64 {
		return float64(high - low)
	})
	if sum != 0 {
		t.Errorf("expected 0, got %v", sum)
	}
}
