package darray

import (
	"fmt"
	"sort"

	"github.com/exascience/parlab/internal"
)

// A Range is a half-open index range [Low, High).
type Range struct {
	Low, High int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.High - r.Low
}

// A Partition maps each worker id to the contiguous index range it owns.
// The ranges are ordered by worker id, are disjoint, and together cover
// [0, Len()).
type Partition struct {
	ranges []Range
}

// NewPartition splits size indices across workers ids 1..workers, giving
// each worker a contiguous range whose length differs from the others by
// at most one.
func NewPartition(size, workers int) Partition {
	ranges := make([]Range, workers)
	for i := range ranges {
		low, high := internal.Bounds(size, workers, i)
		ranges[i] = Range{low, high}
	}
	return Partition{ranges}
}

// Len returns the total number of indices.
func (p Partition) Len() int {
	if len(p.ranges) == 0 {
		return 0
	}
	return p.ranges[len(p.ranges)-1].High
}

// Workers returns the number of workers in the partition.
func (p Partition) Workers() int {
	return len(p.ranges)
}

// Range returns the range owned by the given worker.
func (p Partition) Range(worker int) Range {
	if (worker < 1) || (worker > len(p.ranges)) {
		panic(fmt.Sprintf("invalid worker id: %v", worker))
	}
	return p.ranges[worker-1]
}

// Owner returns the id of the worker that owns index i.
func (p Partition) Owner(i int) int {
	if (i < 0) || (i >= p.Len()) {
		panic(fmt.Sprintf("index out of range: %v", i))
	}
	return sort.Search(len(p.ranges), func(k int) bool { return p.ranges[k].High > i }) + 1
}
