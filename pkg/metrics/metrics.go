// Package metrics instruments search.Optimize runs for Prometheus
// scraping: nodes expanded, runs by outcome, plan length, and wall-clock
// duration. Frontier size is not recorded.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aoindustries/aoserv-cluster/pkg/search"
)

// Collector holds the metrics for one clusteranalyzer process. Callers
// construct one Collector and Register it once with their registry.
type Collector struct {
	nodesExpanded prometheus.Counter
	planLength    prometheus.Histogram
	duration      prometheus.Histogram
	outcomeTotal  *prometheus.CounterVec
}

// NewCollector builds an unregistered Collector.
func NewCollector() *Collector {
	return &Collector{
		nodesExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clusteranalyzer_search_nodes_expanded_total",
			Help: "Total number of Configurations expanded across all search.Optimize runs.",
		}),
		planLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clusteranalyzer_search_plan_length",
			Help:    "Number of moves in the returned plan, for runs that found one.",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clusteranalyzer_search_duration_seconds",
			Help:    "Wall-clock duration of a search.Optimize run.",
			Buckets: prometheus.DefBuckets,
		}),
		outcomeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clusteranalyzer_search_outcome_total",
			Help: "Count of search.Optimize runs by outcome.",
		}, []string{"outcome"}),
	}
}

// Register registers every metric with reg, wrapping the first failure
// encountered.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{c.nodesExpanded, c.planLength, c.duration, c.outcomeTotal} {
		if err := reg.Register(collector); err != nil {
			return fmt.Errorf("metrics: registering collector: %w", err)
		}
	}
	return nil
}

// ObserveRun records one completed search.Optimize call.
func (c *Collector) ObserveRun(result search.Result, elapsed time.Duration) {
	c.nodesExpanded.Add(float64(result.ExpandedNodes))
	c.duration.Observe(elapsed.Seconds())
	c.outcomeTotal.WithLabelValues(result.Outcome.String()).Inc()
	if result.Outcome == search.OutcomeFound {
		c.planLength.Observe(float64(len(result.Path) - 1))
	}
}
