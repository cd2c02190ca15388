// Command pardemo runs the parallelism demonstrations one after another
// and prints timings, speedups and checksums.
//
// Usage:
//
//	pardemo [-config file] [-demos cdf,blackscholes,pi,walk,tasks,cluster,darray]
//
// Settings not given in the configuration file may be overridden with
// PARDEMO_* environment variables, for example PARDEMO_PI_TRIALS=1000000.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"

	"github.com/exascience/parlab/internal/config"
)

type demo struct {
	name string
	run  func(ctx context.Context, cfg *config.Config) error
}

var demos = []demo{
	{"cdf", runCDF},
	{"blackscholes", runBlackScholes},
	{"pi", runPi},
	{"walk", runWalk},
	{"tasks", runTasks},
	{"cluster", runCluster},
	{"darray", runDArray},
}

var heading = color.New(color.FgCyan, color.Bold)

func names() string {
	var all []string
	for _, d := range demos {
		all = append(all, d.name)
	}
	return strings.Join(all, ",")
}

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON configuration file")
	selected := flag.String("demos", names(), "comma-separated list of demonstrations to run")
	image := flag.String("png", "", "write the random walk chart to this image file")
	html := flag.String("html", "", "write the random walk chart to this HTML file")
	_ = flag.Set("alsologtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatal(err)
	}
	if *image != "" {
		cfg.Walk.Image = *image
	}
	if *html != "" {
		cfg.Walk.HTML = *html
	}

	wanted := make(map[string]bool)
	for _, name := range strings.Split(*selected, ",") {
		if name = strings.TrimSpace(name); name != "" {
			wanted[name] = true
		}
	}
	for name := range wanted {
		if !known(name) {
			glog.Fatalf("unknown demonstration %q (known: %s)", name, names())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	glog.Infof("running with %d workers, seed %d", cfg.Workers, cfg.Seed)
	for _, d := range demos {
		if !wanted[d.name] {
			continue
		}
		heading.Printf("== %s ==\n", d.name)
		if err := d.run(ctx, cfg); err != nil {
			glog.Errorf("%s: %v", d.name, err)
			glog.Flush()
			os.Exit(1)
		}
		fmt.Println()
	}
}

func known(name string) bool {
	for _, d := range demos {
		if d.name == name {
			return true
		}
	}
	return false
}
