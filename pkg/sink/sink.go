// Package sink provides a handful of reusable analyzer.Sink adapters:
// counting violations, weighting them, and collecting them for later
// inspection. None of these hold search-wide state — each is built fresh
// per Analyze call, in keeping with the no-shared-mutable-accumulator
// rule spelled out for heuristics in pkg/heuristic.
package sink

import "github.com/aoindustries/aoserv-cluster/pkg/analyzer"

// CountingSink counts every Result at or above threshold. Never stops
// early: a caller wanting the total violation count must see every
// Result, not just the first.
type CountingSink struct {
	Threshold analyzer.AlertLevel
	Count     int
}

func (s *CountingSink) Accept(r analyzer.Result) bool {
	if r.Level >= s.Threshold {
		s.Count++
	}
	return true
}

// WeightingSink sums a caller-supplied per-level weight across every
// Result, the same shape pkg/heuristic's Exponential heuristic folds
// over, exposed here as a standalone reusable accumulator for reporting.
type WeightingSink struct {
	Weights map[analyzer.AlertLevel]float64
	Total   float64
}

func (s *WeightingSink) Accept(r analyzer.Result) bool {
	s.Total += s.Weights[r.Level]
	return true
}

// CollectingSink retains every Result it sees, in arrival order, for
// later inspection by a report renderer or a test assertion.
type CollectingSink struct {
	Results []analyzer.Result
}

func (s *CollectingSink) Accept(r analyzer.Result) bool {
	s.Results = append(s.Results, r)
	return true
}

// StopAtSink stops as soon as it sees a Result at or above threshold,
// recording the first such Result. It suits callers that only care
// whether any violation at a given severity exists, not how many.
type StopAtSink struct {
	Threshold analyzer.AlertLevel
	Found     bool
	First     analyzer.Result
}

func (s *StopAtSink) Accept(r analyzer.Result) bool {
	if r.Level >= s.Threshold {
		s.Found = true
		s.First = r
		return false
	}
	return true
}
