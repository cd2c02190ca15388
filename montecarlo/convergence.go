package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/exascience/parlab/parallel"
)

// A Summary describes repeated independent pi estimates.
type Summary struct {
	Runs     int
	Trials   int     // trials per run
	Mean     float64 // mean of the estimates
	StdDev   float64 // sample standard deviation of the estimates, 0 for fewer than 2 runs
	AbsError float64 // |Mean - π|
}

// Convergence performs runs independent estimates of trials trials each,
// in parallel, and summarises them.
func Convergence(runs, trials int, seed uint64) Summary {
	estimates := make([]float64, runs)
	parallel.Range(0, runs, 0, func(low, high int) {
		for run := low; run < high; run++ {
			estimates[run] = EstimatePi(Trials(NewRand(seed, uint64(run)), trials), trials)
		}
	})
	s := Summary{Runs: runs, Trials: trials}
	if runs > 0 {
		s.Mean, s.StdDev = stat.MeanStdDev(estimates, nil)
		if runs < 2 {
			s.StdDev = 0
		}
		s.AbsError = math.Abs(s.Mean - math.Pi)
	}
	return s
}
