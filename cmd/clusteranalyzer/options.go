package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/utils/sets"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
)

// Options holds every clusteranalyzer flag. The zero value is invalid;
// AddFlags registers each flag with its default, and Validate checks the
// parsed values.
type Options struct {
	TopologyPath string
	PlanPath     string
	PlanOutPath  string
	ReportHTML   string

	MinLevel string
	Heuristic string
	NodeCap   int

	MetricsAddr   string
	OTLPEndpoint  string
	OTLPInsecure  bool

	ExcludeDom0 []string
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.TopologyPath, "topology", "", "path to a ClusterTopology YAML document (required)")
	fs.StringVar(&o.PlanPath, "plan", "", "path to a PlacementPlan YAML document giving the initial placement (required)")
	fs.StringVar(&o.PlanOutPath, "plan-out", "", "path to write the resulting PlacementPlan YAML document (required)")
	fs.StringVar(&o.ReportHTML, "report-html", "", "optional path to write a per-result-label deviation chart")

	fs.StringVar(&o.MinLevel, "min-level", "LOW", "goal-test floor: NONE, LOW, MEDIUM, HIGH, or CRITICAL")
	fs.StringVar(&o.Heuristic, "heuristic", "exponential", "search heuristic: least-informed or exponential")
	fs.IntVar(&o.NodeCap, "node-cap", 0, "maximum Configurations to expand; 0 means unbounded")

	fs.StringVar(&o.MetricsAddr, "metrics-addr", "", "optional address to serve Prometheus /metrics on, e.g. :9090")
	fs.StringVar(&o.OTLPEndpoint, "otlp-endpoint", "", "optional OTLP/gRPC collector endpoint for tracing the search")
	fs.BoolVar(&o.OTLPInsecure, "otlp-insecure", false, "dial the OTLP endpoint without TLS")

	fs.StringSliceVar(&o.ExcludeDom0, "exclude-dom0", nil, "Dom0 hostnames the move generator must not use as a new secondary target")
}

func (o *Options) Validate() error {
	if o.TopologyPath == "" {
		return fmt.Errorf("--topology is required")
	}
	if o.PlanPath == "" {
		return fmt.Errorf("--plan is required")
	}
	if o.PlanOutPath == "" {
		return fmt.Errorf("--plan-out is required")
	}
	if _, err := parseMinLevel(o.MinLevel); err != nil {
		return err
	}
	switch o.Heuristic {
	case "least-informed", "exponential":
	default:
		return fmt.Errorf("--heuristic must be least-informed or exponential, got %q", o.Heuristic)
	}
	if o.NodeCap < 0 {
		return fmt.Errorf("--node-cap must be >= 0")
	}
	excluded := sets.New(o.ExcludeDom0...)
	if excluded.Len() != len(o.ExcludeDom0) {
		return fmt.Errorf("--exclude-dom0 contains a duplicate hostname")
	}
	return nil
}

func parseMinLevel(s string) (analyzer.AlertLevel, error) {
	switch s {
	case "NONE":
		return analyzer.AlertNone, nil
	case "LOW":
		return analyzer.AlertLow, nil
	case "MEDIUM":
		return analyzer.AlertMedium, nil
	case "HIGH":
		return analyzer.AlertHigh, nil
	case "CRITICAL":
		return analyzer.AlertCritical, nil
	default:
		return analyzer.AlertNone, fmt.Errorf("--min-level: unrecognized level %q", s)
	}
}
