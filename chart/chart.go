// Package chart renders random walk trajectories as line charts of
// position against step index, either as an image through gonum/plot or
// as an interactive HTML page through go-echarts.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func seriesName(i int) string {
	return fmt.Sprintf("walker %d", i+1)
}

// Save draws one line per trajectory and writes the chart to path. The
// image format is chosen from the file extension (for example .png, .svg
// or .pdf).
func Save(path, title string, trajectories [][]int, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "position"
	for i, trajectory := range trajectories {
		xys := make(plotter.XYs, len(trajectory))
		for step, position := range trajectory {
			xys[step].X = float64(step)
			xys[step].Y = float64(position)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("chart: %s: %w", seriesName(i), err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(seriesName(i), line)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("chart: saving %s: %w", path, err)
	}
	return nil
}

// WriteHTML renders one line per trajectory as an HTML page to w.
func WriteHTML(w io.Writer, title string, trajectories [][]int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "position"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	var steps int
	for _, trajectory := range trajectories {
		steps = max(steps, len(trajectory))
	}
	xAxis := make([]int, steps)
	for i := range xAxis {
		xAxis[i] = i
	}
	line.SetXAxis(xAxis)
	for i, trajectory := range trajectories {
		data := make([]opts.LineData, len(trajectory))
		for step, position := range trajectory {
			data[step] = opts.LineData{Value: position}
		}
		line.AddSeries(seriesName(i), data)
	}
	return line.Render(w)
}
