package sink_test

import (
	"testing"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/sink"
)

func TestCountingSinkCountsAtOrAboveThreshold(t *testing.T) {
	cs := &sink.CountingSink{Threshold: analyzer.AlertMedium}
	results := []analyzer.Result{
		{Level: analyzer.AlertNone},
		{Level: analyzer.AlertLow},
		{Level: analyzer.AlertMedium},
		{Level: analyzer.AlertCritical},
	}
	for _, r := range results {
		if !cs.Accept(r) {
			t.Fatalf("CountingSink must never stop early")
		}
	}
	if cs.Count != 2 {
		t.Fatalf("Count = %d, want 2", cs.Count)
	}
}

func TestWeightingSinkSumsConfiguredWeights(t *testing.T) {
	ws := &sink.WeightingSink{Weights: map[analyzer.AlertLevel]float64{
		analyzer.AlertLow:      4,
		analyzer.AlertMedium:   8,
		analyzer.AlertHigh:     16,
		analyzer.AlertCritical: 1024,
	}}
	for _, r := range []analyzer.Result{
		{Level: analyzer.AlertNone},
		{Level: analyzer.AlertLow},
		{Level: analyzer.AlertCritical},
	} {
		ws.Accept(r)
	}
	if ws.Total != 1028 {
		t.Fatalf("Total = %v, want 1028", ws.Total)
	}
}

func TestCollectingSinkPreservesOrder(t *testing.T) {
	cs := &sink.CollectingSink{}
	cs.Accept(analyzer.Result{Label: "a"})
	cs.Accept(analyzer.Result{Label: "b"})
	if len(cs.Results) != 2 || cs.Results[0].Label != "a" || cs.Results[1].Label != "b" {
		t.Fatalf("unexpected order: %+v", cs.Results)
	}
}

func TestStopAtSinkStopsOnFirstMatch(t *testing.T) {
	ss := &sink.StopAtSink{Threshold: analyzer.AlertHigh}
	calls := 0
	for _, r := range []analyzer.Result{
		{Level: analyzer.AlertLow},
		{Level: analyzer.AlertHigh},
		{Level: analyzer.AlertCritical},
	} {
		calls++
		if !ss.Accept(r) {
			break
		}
	}
	if calls != 2 {
		t.Fatalf("stopped after %d calls, want 2", calls)
	}
	if !ss.Found || ss.First.Level != analyzer.AlertHigh {
		t.Fatalf("unexpected First: %+v", ss.First)
	}
}
