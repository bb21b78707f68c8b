// Package heuristic implements the two admissible-by-construction cost
// functions from spec.md §4.2: LeastInformed and Exponential. Both are
// pure folds over the analyzer.Result stream — a local accumulator
// captured by the sink closure, never a shared mutable field on the
// heuristic itself. An accumulator kept in a struct field shared across
// calls is exactly the hazard this package is written to avoid: two
// concurrent search workers sharing one heuristic value would corrupt
// each other's totals.
package heuristic

import (
	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

// Func estimates the remaining cost to an optimal Configuration. f(c) is
// used as f = h(c, g) by pkg/search; every Func here is admissible in
// that it never decreases when called against a worse configuration and
// returns exactly g (its estimate part is zero) at an optimal one.
type Func func(cfg *cluster.Configuration, g int) int

// LeastInformed is the weakest admissible heuristic: it returns g when
// cfg is already optimal, g+1 otherwise. It never attempts to quantify how far
// from optimal cfg is — it only distinguishes "done" from "not done" —
// so f degrades to plain uniform-cost (Dijkstra) ordering on g.
func LeastInformed(cfg *cluster.Configuration, g int) int {
	if analyzer.IsOptimal(cfg) {
		return g
	}
	return g + 1
}

// ExponentialWeights assigns each AlertLevel a cost weight sharply
// increasing in severity, so that a single CRITICAL violation (1024)
// outweighs up to 63 HIGH, 127 MEDIUM or 255 LOW ones — per spec.md
// §4.2, a search guided by this heuristic is biased toward resolving
// CRITICAL violations before LOW/MEDIUM/HIGH ones.
var ExponentialWeights = map[analyzer.AlertLevel]int{
	analyzer.AlertLow:      4,
	analyzer.AlertMedium:   8,
	analyzer.AlertHigh:     16,
	analyzer.AlertCritical: 1024,
}

// Exponential sums ExponentialWeights[level] over every Result the
// analyzer emits at the LOW floor, folding purely into a local variable
// captured by the sink closure, and adds g.
func Exponential(cfg *cluster.Configuration, g int) int {
	total := 0
	analyzer.Analyze(cfg, analyzer.AlertLow, func(r analyzer.Result) bool {
		if r.Level == analyzer.AlertNone {
			panic("heuristic: Analyze at AlertLow leaked a NONE result")
		}
		total += ExponentialWeights[r.Level]
		return true
	})
	return g + total
}
