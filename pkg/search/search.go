// Package search implements the A*-style best-first driver from
// spec.md §4.4: a frontier of Configurations ordered by f = h(c, g),
// ties broken by smaller g then a stable generation counter, a closed
// set keyed by Configuration.Fingerprint, cooperative cancellation
// checked once per expansion, and an optional cap on expanded nodes.
package search

import (
	"container/heap"
	"context"

	"k8s.io/klog/v2"
	"k8s.io/utils/sets"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
	"github.com/aoindustries/aoserv-cluster/pkg/heuristic"
	"github.com/aoindustries/aoserv-cluster/pkg/move"
)

// Outcome classifies how Optimize concluded.
type Outcome int

const (
	// OutcomeFound reports a path to an optimal Configuration.
	OutcomeFound Outcome = iota
	// OutcomeExhausted reports the frontier emptied with no optimal
	// Configuration found — a normal outcome, not an error.
	OutcomeExhausted
	// OutcomeCancelled reports the caller's cancellation token fired.
	OutcomeCancelled
	// OutcomeNodeCapReached reports Options.NodeCap was hit before an
	// optimal Configuration was found.
	OutcomeNodeCapReached
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNodeCapReached:
		return "node-cap-reached"
	default:
		return "unknown"
	}
}

// Options configures one Optimize call. The zero value is usable:
// Optimize calls SetDefaults, which promotes an unset MinLevel to
// AlertLow. DefaultOptions returns the same defaults explicitly.
type Options struct {
	// MinLevel is the goal-test floor: a Configuration is optimal when
	// the analyzer reports nothing at or above MinLevel. Spec.md §4.4
	// recommends LOW.
	MinLevel analyzer.AlertLevel
	// NodeCap bounds the number of expansions; 0 means unbounded.
	NodeCap int
	// ExcludedDom0s, if non-nil, are hostnames move.SuccessorsExcluding
	// must never propose as a new secondary target.
	ExcludedDom0s sets.Set[string]
}

// DefaultOptions returns the spec-recommended defaults: goal test at
// the LOW floor, no node cap.
func DefaultOptions() Options {
	o := Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills any zero-valued field with its spec-recommended
// default. MinLevel's zero value is AlertNone, which is not a usable
// default (every Configuration would immediately look non-optimal at
// the LOW floor's tighter AlertNone equivalent) so SetDefaults promotes
// an unset MinLevel to AlertLow explicitly.
func (o *Options) SetDefaults() {
	if o.MinLevel == analyzer.AlertNone {
		o.MinLevel = analyzer.AlertLow
	}
}

// Validate reports whether Options is internally consistent.
func (o Options) Validate() error {
	if o.MinLevel < analyzer.AlertNone || o.MinLevel > analyzer.AlertCritical {
		return errInvalidMinLevel
	}
	if o.NodeCap < 0 {
		return errNegativeNodeCap
	}
	return nil
}

// Result is what Optimize returns.
type Result struct {
	Outcome Outcome
	// Path is the sequence of Configurations from initial to optimal,
	// inclusive, set only when Outcome == OutcomeFound.
	Path []*cluster.Configuration
	// ExpandedNodes is the number of Configurations dequeued and
	// expanded, regardless of outcome.
	ExpandedNodes int
}

type frontierEntry struct {
	cfg        *cluster.Configuration
	f          int
	generation int
	index      int // heap.Interface bookkeeping
}

// priorityQueue orders by f ascending, ties broken by smaller g (read
// off the Configuration directly) then by generation ascending, which
// is exactly insertion order — giving a stable tie-break.
type priorityQueue []*frontierEntry

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.cfg.Depth() != b.cfg.Depth() {
		return a.cfg.Depth() < b.cfg.Depth()
	}
	return a.generation < b.generation
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x any) {
	e := x.(*frontierEntry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return e
}

// Optimize runs A* from initial using h as the cost function, returning
// the first optimal Configuration dequeued or one of the non-success
// outcomes. ctx is checked once per expansion; cancelling it yields
// OutcomeCancelled with no partial path.
func Optimize(ctx context.Context, initial *cluster.Configuration, h heuristic.Func, opts Options) Result {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		panic(err) // programmer error: caller built Options by hand incorrectly
	}

	pq := &priorityQueue{}
	heap.Init(pq)
	generation := 0
	push := func(cfg *cluster.Configuration) {
		f := h(cfg, cfg.Depth())
		heap.Push(pq, &frontierEntry{cfg: cfg, f: f, generation: generation})
		generation++
	}
	push(initial)

	closed := make(map[string]bool)
	expanded := 0

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			klog.V(2).InfoS("search cancelled", "expanded", expanded)
			return Result{Outcome: OutcomeCancelled, ExpandedNodes: expanded}
		default:
		}

		if opts.NodeCap > 0 && expanded >= opts.NodeCap {
			klog.V(2).InfoS("search hit node cap", "cap", opts.NodeCap, "expanded", expanded)
			return Result{Outcome: OutcomeNodeCapReached, ExpandedNodes: expanded}
		}

		entry := heap.Pop(pq).(*frontierEntry)
		cfg := entry.cfg

		if closed[cfg.Fingerprint()] {
			continue
		}
		closed[cfg.Fingerprint()] = true
		expanded++

		if isGoal(cfg, opts.MinLevel) {
			klog.V(2).InfoS("search found optimal configuration", "expanded", expanded, "depth", cfg.Depth())
			return Result{Outcome: OutcomeFound, Path: reconstructPath(cfg), ExpandedNodes: expanded}
		}

		for _, succ := range move.SuccessorsExcluding(cfg, opts.ExcludedDom0s) {
			if closed[succ.Fingerprint()] {
				continue
			}
			push(succ)
		}
	}

	klog.V(2).InfoS("search exhausted frontier", "expanded", expanded)
	return Result{Outcome: OutcomeExhausted, ExpandedNodes: expanded}
}

// isGoal reports whether cfg triggers nothing at or above floor.
func isGoal(cfg *cluster.Configuration, floor analyzer.AlertLevel) bool {
	optimal := true
	analyzer.Analyze(cfg, floor, func(r analyzer.Result) bool {
		optimal = false
		return false
	})
	return optimal
}

// reconstructPath walks parent pointers from cfg back to the initial
// Configuration (nil parent) and returns them in forward order.
func reconstructPath(cfg *cluster.Configuration) []*cluster.Configuration {
	var reversed []*cluster.Configuration
	for c := cfg; c != nil; c = c.Parent() {
		reversed = append(reversed, c)
	}
	path := make([]*cluster.Configuration, len(reversed))
	for i, c := range reversed {
		path[len(reversed)-1-i] = c
	}
	return path
}
