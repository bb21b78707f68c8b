// Package report renders analyzer.Result streams for humans: a plain
// text summary, and a go-echarts bar chart of deviation per Result label.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
	"github.com/aoindustries/aoserv-cluster/pkg/sink"
)

// Collect runs the analyzer at floor and returns every Result it
// produced, in evaluation order.
func Collect(cfg *cluster.Configuration, floor analyzer.AlertLevel) []analyzer.Result {
	cs := &sink.CollectingSink{}
	analyzer.Analyze(cfg, floor, cs.Accept)
	return cs.Results
}

// WriteText prints one line per Result to w: level, label, deviation.
func WriteText(w io.Writer, results []analyzer.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "[%s] %s (deviation %.3f)\n", r.Level, r.Label, r.Deviation); err != nil {
			return err
		}
	}
	return nil
}

// PlotDeviation renders a bar chart of the largest-magnitude deviation
// seen per label and writes it as HTML to outputPath.
func PlotDeviation(results []analyzer.Result, title string, outputPath string) error {
	if len(results) == 0 {
		return fmt.Errorf("report: no results to plot")
	}

	worst := make(map[string]float64)
	for _, r := range results {
		if cur, ok := worst[r.Label]; !ok || abs(r.Deviation) > abs(cur) {
			worst[r.Label] = r.Deviation
		}
	}
	labels := make([]string, 0, len(worst))
	for l := range worst {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithXAxisOpts(opts.XAxis{Name: "rule result"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "deviation"}),
	)

	data := make([]opts.BarData, len(labels))
	for i, l := range labels {
		data[i] = opts.BarData{Value: worst[l]}
	}
	bar.SetXAxis(labels).AddSeries("deviation", data)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", outputPath, err)
	}
	defer f.Close()

	return bar.Render(f)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
