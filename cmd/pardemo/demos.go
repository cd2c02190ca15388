package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"gonum.org/v1/plot/vg"

	"github.com/exascience/parlab/bench"
	"github.com/exascience/parlab/chart"
	"github.com/exascience/parlab/cluster"
	"github.com/exascience/parlab/darray"
	"github.com/exascience/parlab/finance"
	"github.com/exascience/parlab/internal/config"
	"github.com/exascience/parlab/montecarlo"
	"github.com/exascience/parlab/task"
)

var value = color.New(color.FgYellow).SprintFunc()

func runCDF(_ context.Context, _ *config.Config) error {
	xs := []float64{-3, -1, 0, 1, 1.96, 3}
	for i, p := range finance.NormCDFs(xs) {
		fmt.Printf("Φ(%5.2f) = %s\n", xs[i], value(fmt.Sprintf("%.6f", p)))
	}
	return nil
}

func runBlackScholes(_ context.Context, cfg *config.Config) error {
	bs := cfg.BlackScholes
	strikes := finance.Strikes(bs.Strikes, bs.StrikeLow, bs.StrikeHigh)
	var serial, parallel []float64
	r := bench.Compare(bench.Case{
		Name: "blackscholes",
		Ops:  len(strikes),
		Prime: func() {
			finance.PutPrices(bs.Spot, nil, bs.Rate, bs.Volatility, bs.Time)
			finance.PutPricesParallel(bs.Spot, nil, bs.Rate, bs.Volatility, bs.Time)
		},
		Serial: func() {
			serial = finance.PutPrices(bs.Spot, strikes, bs.Rate, bs.Volatility, bs.Time)
		},
		Parallel: func() {
			parallel = finance.PutPricesParallel(bs.Spot, strikes, bs.Rate, bs.Volatility, bs.Time)
		},
	})
	if err := r.Print(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("checksum serial %s, parallel %s\n",
		value(fmt.Sprintf("%.6f", finance.Checksum(serial))),
		value(fmt.Sprintf("%.6f", finance.ParallelChecksum(parallel))))
	return nil
}

func runPi(ctx context.Context, cfg *config.Config) error {
	trials := cfg.Pi.Trials
	var serial, parallel float64
	var inside int
	r := bench.Compare(bench.Case{
		Name: "pi",
		Ops:  trials,
		Prime: func() {
			montecarlo.Estimate(0, cfg.Seed)
			montecarlo.EstimatePiParallel(0, cfg.Pi.Batches, cfg.Seed)
		},
		Serial: func() {
			serial = montecarlo.Estimate(trials, cfg.Seed)
		},
		Parallel: func() {
			parallel, inside = montecarlo.EstimatePiParallel(trials, cfg.Pi.Batches, cfg.Seed)
		},
	})
	if err := r.Print(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("serial estimate %s, parallel estimate %s (exact ratio %s)\n",
		value(fmt.Sprintf("%.8f", serial)),
		value(fmt.Sprintf("%.8f", parallel)),
		montecarlo.ExactRatio(int64(inside), int64(trials), 12))

	pool := cluster.NewPool(ctx, cfg.Workers)
	start := time.Now()
	estimate, _, err := montecarlo.EstimatePiDistributed(ctx, pool, trials, cfg.Seed)
	if cerr := pool.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("distributed estimate: %w", err)
	}
	fmt.Printf("distributed estimate %s on %d workers in %v\n",
		value(fmt.Sprintf("%.8f", estimate)), cfg.Workers, time.Since(start))

	s := montecarlo.Convergence(cfg.Pi.Runs, cfg.Pi.RunTrials, cfg.Seed)
	fmt.Printf("%d runs of %d trials: mean %s, stddev %.6f, |mean-π| %.6f\n",
		s.Runs, s.Trials, value(fmt.Sprintf("%.6f", s.Mean)), s.StdDev, s.AbsError)
	return nil
}

func runWalk(_ context.Context, cfg *config.Config) error {
	w := cfg.Walk
	walks := montecarlo.Walks(w.Walkers, w.Steps, cfg.Seed)
	for i, walk := range walks {
		fmt.Printf("walker %d ends at %s\n", i+1, value(walk[len(walk)-1]))
	}

	finals := montecarlo.FinalPositions(w.Walkers, w.Steps, cfg.Seed)
	var sq float64
	for _, x := range finals {
		sq += float64(x * x)
	}
	if len(finals) > 0 {
		fmt.Printf("root mean square distance %.2f (expected about %.2f)\n",
			math.Sqrt(sq/float64(len(finals))), math.Sqrt(float64(w.Steps)))
	}

	title := fmt.Sprintf("%d random walks of %d steps", w.Walkers, w.Steps)
	if w.Image != "" {
		if err := chart.Save(w.Image, title, walks, 8*vg.Inch, 5*vg.Inch); err != nil {
			return err
		}
		glog.Infof("wrote %s", w.Image)
	}
	if w.HTML != "" {
		f, err := os.Create(w.HTML)
		if err != nil {
			return err
		}
		err = chart.WriteHTML(f, title, walks)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		glog.Infof("wrote %s", w.HTML)
	}
	return nil
}

func runTasks(ctx context.Context, _ *config.Config) error {
	t := task.New(ctx, func(ctx context.Context) (int, error) {
		if err := task.Sleep(ctx, 50*time.Millisecond); err != nil {
			return 0, err
		}
		return 42, nil
	})
	fmt.Println("task is", t.State())
	t.Schedule()
	time.Sleep(10 * time.Millisecond)
	fmt.Println("task is", t.State())
	result, err := t.Wait()
	if err != nil {
		return err
	}
	fmt.Println("task is", t.State(), "with result", value(result))

	failing := task.Spawn(ctx, func(context.Context) (struct{}, error) {
		return struct{}{}, errors.New("deliberate failure")
	})
	_, err = failing.Wait()
	fmt.Println("failing task is", failing.State(), "with error:", err)

	ch, producer := task.Produce(ctx, 2, func(ctx context.Context, ch *task.Channel[string]) error {
		for _, msg := range []string{"start", "2", "4", "6", "8", "stop"} {
			if err := ch.Put(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	for msg := range ch.All(ctx) {
		fmt.Println("consumed", msg)
	}
	if _, err := producer.Wait(); err != nil {
		return err
	}

	g := task.NewGroup(ctx)
	squares := make([]int, 5)
	for i := range squares {
		g.Go(func(context.Context) error {
			squares[i] = i * i
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println("squares", squares)
	return nil
}

func runCluster(ctx context.Context, cfg *config.Config) (err error) {
	pool := cluster.NewPool(ctx, cfg.Workers)
	defer func() {
		if cerr := pool.Close(); err == nil {
			err = cerr
		}
	}()
	fmt.Println("workers", pool.Workers())

	last := pool.Workers()[pool.Size()-1]
	future := pool.RemoteCall(last, func(_ context.Context, worker int) (interface{}, error) {
		return fmt.Sprintf("hello from worker %d", worker), nil
	})
	greeting, err := cluster.FetchAs[string](ctx, future)
	if err != nil {
		return err
	}
	fmt.Println(greeting)

	bs := cfg.BlackScholes
	params := finance.Params{Spot: bs.Spot, Rate: bs.Rate, Volatility: bs.Volatility, Time: bs.Time}
	strikes := finance.Strikes(5, bs.StrikeLow, bs.StrikeHigh)
	puts, err := cluster.PMap(ctx, pool, strikes, func(_ context.Context, k float64) (float64, error) {
		return params.Put(k), nil
	})
	if err != nil {
		return err
	}
	for i, k := range strikes {
		fmt.Printf("put(%.1f) = %s\n", k, value(fmt.Sprintf("%.6f", puts[i])))
	}

	const n = 1000000
	sum, err := cluster.Reduce(ctx, pool, n,
		func(_ context.Context, low, high int) (int, error) {
			s := 0
			for i := low; i < high; i++ {
				s += i
			}
			return s, nil
		},
		func(x, y int) int { return x + y })
	if err != nil {
		return err
	}
	fmt.Printf("sum of [0, %d) = %s\n", n, value(sum))
	return nil
}

func runDArray(ctx context.Context, cfg *config.Config) (err error) {
	pool := cluster.NewPool(ctx, cfg.Workers)
	defer func() {
		if cerr := pool.Close(); err == nil {
			err = cerr
		}
	}()

	xs := make([]int, 10)
	for i := range xs {
		xs[i] = i + 1
	}
	d, err := darray.Distribute(ctx, pool, xs)
	if err != nil {
		return err
	}
	p := d.Partition()
	for id := 1; id <= p.Workers(); id++ {
		fmt.Println("worker", id, "owns", p.Range(id), d.LocalPart(id))
	}
	doubled, err := darray.Map(ctx, d, func(x int) int { return 2 * x })
	if err != nil {
		return err
	}
	fmt.Println("doubled", doubled.Gather())

	r, err := darray.Rand(ctx, pool, 100000, cfg.Seed)
	if err != nil {
		return err
	}
	total, err := darray.Reduce(ctx, r,
		func(chunk []float64) float64 {
			s := 0.0
			for _, x := range chunk {
				s += x
			}
			return s
		},
		func(x, y float64) float64 { return x + y })
	if err != nil {
		return err
	}
	fmt.Printf("mean of %d uniform values %s\n", r.Len(), value(fmt.Sprintf("%.4f", total/float64(r.Len()))))
	return nil
}
