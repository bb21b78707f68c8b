package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/report"
)

func TestWriteTextFormatsEachResult(t *testing.T) {
	results := []analyzer.Result{
		{Label: "Available RAM: dom0a", Deviation: 0.25, Level: analyzer.AlertCritical},
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, results); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "CRITICAL") || !strings.Contains(out, "dom0a") || !strings.Contains(out, "0.250") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPlotDeviationWritesFile(t *testing.T) {
	results := []analyzer.Result{
		{Label: "dom0a", Deviation: 0.25, Level: analyzer.AlertCritical},
		{Label: "dom0b", Deviation: -0.1, Level: analyzer.AlertLow},
	}
	path := filepath.Join(t.TempDir(), "deviation.html")
	if err := report.PlotDeviation(results, "test", path); err != nil {
		t.Fatalf("PlotDeviation: %v", err)
	}
}

func TestPlotDeviationRejectsEmptyResults(t *testing.T) {
	if err := report.PlotDeviation(nil, "test", filepath.Join(t.TempDir(), "out.html")); err == nil {
		t.Fatalf("expected an error for empty results")
	}
}
