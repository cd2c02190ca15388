package parlab

type (
	// A Thunk is a function that neither receives nor returns any
	// parameters.
	Thunk func()

	// A RangeFunc is a function that receives a range from low to high,
	// with 0 <= low <= high.
	RangeFunc func(low, high int)

	// A Ranger divides the half-open interval from low to high into n
	// batches and invokes f once per batch. parallel.Range and
	// sequential.Range are both Rangers, so a kernel written against a
	// Ranger runs either way without a second copy of its loop body.
	Ranger func(low, high, n int, f RangeFunc)
)
