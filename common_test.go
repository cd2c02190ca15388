package parlab_test

import (
	"fmt"
	"testing"

	"github.com/exascience/parlab"
	"github.com/exascience/parlab/parallel"
	"github.com/exascience/parlab/sequential"
)

func TestRangersCoverTheSameBatches(t *testing.T) {
	for _, ranger := range []parlab.Ranger{parallel.Range, sequential.Range} {
		covered := make([]int, 17)
		ranger(0, len(covered), 4, func(low, high int) {
			for i := low; i < high; i++ {
				covered[i]++
			}
		})
		for i, c := range covered {
			if c != 1 {
				t.Errorf("index %v covered %v times", i, c)
			}
		}
	}
}

func TestThunks(t *testing.T) {
	var a, b int
	thunks := []parlab.Thunk{
		func() { a = 1 },
		func() { b = 2 },
	}
	parallel.Do(thunks...)
	if fmt.Sprint(a, b) != "1 2" {
		t.Errorf("got %v %v", a, b)
	}
	a, b = 0, 0
	sequential.Do(thunks...)
	if fmt.Sprint(a, b) != "1 2" {
		t.Errorf("got %v %v", a, b)
	}
}
