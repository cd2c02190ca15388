// Package parlab provides parallel building blocks and the small numeric
// kernels used to demonstrate them. Go is primarily designed for concurrent
// programming, but the same goroutines and channels also serve
// embarrassingly parallel work well, and the packages here show how a
// sequential kernel becomes a parallel one without changing its results.
//
// Parlab provides the following subpackages:
//
// parlab/parallel provides functions for executing thunks, range functions,
// and reducers over ranges in parallel.
//
// parlab/sequential provides sequential implementations of the functions
// from parlab/parallel, for reference runs and timing baselines.
//
// parlab/task provides lightweight tasks with explicit completion handles,
// and bounded channels for handing values between them.
//
// parlab/cluster provides a pool of isolated workers that accept remote
// calls and return futures.
//
// parlab/darray provides arrays whose index range is partitioned across the
// workers of a pool.
//
// parlab/finance provides the normal distribution helper and the
// Black-Scholes put pricing kernel.
//
// parlab/montecarlo provides pi estimation and random walks.
//
// parlab/bench times serial and parallel variants of a kernel and reports
// speedup and throughput.
//
// parlab/chart renders random walk trajectories as line charts.
package parlab
