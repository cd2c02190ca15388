package montecarlo

import (
	"math/rand/v2"

	"github.com/exascience/parlab/parallel"
)

// Step returns +1 or -1 with equal probability.
func Step(rng *rand.Rand) int {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Walk returns the trajectory of a random walk of the given number of
// steps that starts at 0. The trajectory includes the origin, so it has
// steps+1 positions. Every position depends on the previous one, so a
// single walk is always generated sequentially.
func Walk(rng *rand.Rand, steps int) []int {
	trajectory := make([]int, steps+1)
	for i := 1; i <= steps; i++ {
		trajectory[i] = trajectory[i-1] + Step(rng)
	}
	return trajectory
}

// FinalPosition returns the last position of a random walk without keeping
// its trajectory.
func FinalPosition(rng *rand.Rand, steps int) (position int) {
	for i := 0; i < steps; i++ {
		position += Step(rng)
	}
	return
}

// Walks generates the trajectories of independent walkers in parallel.
// Walker w draws from the stream (seed, w).
func Walks(walkers, steps int, seed uint64) [][]int {
	trajectories := make([][]int, walkers)
	parallel.Range(0, walkers, 0, func(low, high int) {
		for w := low; w < high; w++ {
			trajectories[w] = Walk(NewRand(seed, uint64(w)), steps)
		}
	})
	return trajectories
}

// FinalPositions returns the final position of each of the given number
// of independent walkers, computed in parallel. Walker w draws from the
// same stream as in Walks, so its result equals the last position of the
// corresponding trajectory.
func FinalPositions(walkers, steps int, seed uint64) []int {
	positions := make([]int, walkers)
	parallel.Range(0, walkers, 0, func(low, high int) {
		for w := low; w < high; w++ {
			positions[w] = FinalPosition(NewRand(seed, uint64(w)), steps)
		}
	})
	return positions
}
