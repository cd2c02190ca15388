// Package bench times sequential and parallel variants of a kernel and
// reports the speedup and throughput.
//
// Kernels are called directly. A panic in a kernel propagates to the
// caller of Compare.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"
)

// A Case describes one comparison.
type Case struct {
	Name string

	// Ops is the number of operations one run of a variant performs,
	// for example the number of strikes priced or trials drawn.
	Ops int

	// Prime, if not nil, is called once before any timing, so that
	// one-time setup costs are not measured. Priming typically runs the
	// kernel on an empty input.
	Prime func()

	Serial   func()
	Parallel func()
}

// A Result holds the timings of one comparison.
type Result struct {
	Name     string
	Ops      int
	Serial   time.Duration
	Parallel time.Duration
}

// Measure returns the wall time taken by f.
func Measure(f func()) time.Duration {
	start := time.Now()
	f()
	return time.Since(start)
}

// Compare primes the case if requested, then runs the serial variant once
// and the parallel variant once, timing each.
func Compare(c Case) Result {
	if c.Prime != nil {
		glog.V(1).Infof("%s: priming", c.Name)
		c.Prime()
	}
	r := Result{Name: c.Name, Ops: c.Ops}
	r.Serial = Measure(c.Serial)
	glog.V(1).Infof("%s: serial run took %v", c.Name, r.Serial)
	r.Parallel = Measure(c.Parallel)
	glog.V(1).Infof("%s: parallel run took %v", c.Name, r.Parallel)
	return r
}

// Speedup returns the serial time divided by the parallel time, or 0 if
// the parallel time is 0.
func (r Result) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Serial) / float64(r.Parallel)
}

// Throughput returns the operations per second of the parallel run, or 0
// if the parallel time is 0.
func (r Result) Throughput() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Parallel.Seconds()
}

var (
	nameColor    = color.New(color.Bold)
	speedupColor = color.New(color.FgGreen)
	slowerColor  = color.New(color.FgRed)
)

// Print writes a one-line summary of r to w.
func (r Result) Print(w io.Writer) error {
	speedup := speedupColor
	if r.Speedup() < 1 {
		speedup = slowerColor
	}
	_, err := fmt.Fprintf(w, "%s: serial %v, parallel %v, speedup %s, throughput %.3g ops/s\n",
		nameColor.Sprint(r.Name),
		r.Serial.Round(time.Microsecond),
		r.Parallel.Round(time.Microsecond),
		speedup.Sprintf("%.2fx", r.Speedup()),
		r.Throughput(),
	)
	return err
}
