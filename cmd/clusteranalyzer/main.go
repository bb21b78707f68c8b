// Command clusteranalyzer loads a ClusterTopology and an initial
// PlacementPlan, runs search.Optimize to find a Configuration with no
// outstanding analyzer.Result at or above --min-level, and writes the
// resulting plan back out.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"
	"k8s.io/utils/sets"

	v1alpha1 "github.com/aoindustries/aoserv-cluster/pkg/apis/topology/v1alpha1"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
	"github.com/aoindustries/aoserv-cluster/pkg/heuristic"
	"github.com/aoindustries/aoserv-cluster/pkg/metrics"
	"github.com/aoindustries/aoserv-cluster/pkg/report"
	"github.com/aoindustries/aoserv-cluster/pkg/search"
	"github.com/aoindustries/aoserv-cluster/pkg/topology"
	"sigs.k8s.io/yaml"
)

func main() {
	logsOptions := logs.NewOptions()

	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "clusteranalyzer",
		Short: "Finds a legal DomU placement plan with no outstanding constraint violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logsOptions.ValidateAndApply(nil); err != nil {
				return err
			}
			defer logs.FlushLogs()
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	opts.AddFlags(cmd.Flags())
	logsOptions.AddFlags(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		klog.ErrorS(err, "clusteranalyzer failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	minLevel, err := parseMinLevel(opts.MinLevel)
	if err != nil {
		return err
	}

	c, err := topology.LoadClusterTopology(opts.TopologyPath)
	if err != nil {
		return err
	}

	initial, err := loadInitialConfiguration(opts.PlanPath, c)
	if err != nil {
		return err
	}

	h := heuristic.LeastInformed
	if opts.Heuristic == "exponential" {
		h = heuristic.Exponential
	}

	var collector *metrics.Collector
	if opts.MetricsAddr != "" {
		collector = metrics.NewCollector()
		if err := collector.Register(prometheus.DefaultRegisterer); err != nil {
			return err
		}
		go serveMetrics(opts.MetricsAddr)
	}

	if opts.OTLPEndpoint != "" {
		shutdown, err := installTracing(ctx, opts.OTLPEndpoint, opts.OTLPInsecure)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	tracer := otel.Tracer("clusteranalyzer")
	ctx, span := tracer.Start(ctx, "search.Optimize")
	defer span.End()

	searchOpts := search.Options{
		MinLevel:      minLevel,
		NodeCap:       opts.NodeCap,
		ExcludedDom0s: sets.New(opts.ExcludeDom0...),
	}

	start := time.Now()
	result := search.Optimize(ctx, initial, h, searchOpts)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("expanded_nodes", result.ExpandedNodes),
	)

	if collector != nil {
		collector.ObserveRun(result, elapsed)
	}

	klog.InfoS("search finished", "outcome", result.Outcome, "expandedNodes", result.ExpandedNodes, "elapsed", elapsed)

	final := initial
	if result.Outcome == search.OutcomeFound {
		final = result.Path[len(result.Path)-1]
	}

	if opts.ReportHTML != "" {
		results := report.Collect(final, minLevel)
		if len(results) > 0 {
			if err := report.PlotDeviation(results, "clusteranalyzer", opts.ReportHTML); err != nil {
				return err
			}
		}
	}

	return writePlan(opts.PlanOutPath, opts.TopologyPath, result, final)
}

func loadInitialConfiguration(planPath string, c *cluster.Cluster) (*cluster.Configuration, error) {
	data, err := os.ReadFile(planPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", planPath, err)
	}
	var doc v1alpha1.PlacementPlan
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", planPath, err)
	}
	placements := topology.ToPlacements(doc.Spec.InitialPlacements)
	return cluster.NewConfiguration(nil, c, nil, 0, placements)
}

func writePlan(path, topologyRef string, result search.Result, final *cluster.Configuration) error {
	doc := &v1alpha1.PlacementPlan{
		Spec: v1alpha1.PlacementPlanSpec{
			ClusterTopologyRef: topologyRef,
		},
		Status: v1alpha1.PlacementPlanStatus{
			Outcome:       result.Outcome.String(),
			ExpandedNodes: result.ExpandedNodes,
		},
	}
	for _, cfg := range result.Path {
		if cfg.Move() != nil {
			doc.Status.Moves = append(doc.Status.Moves, cfg.Move().Describe())
		}
	}
	names := final.DomUHostnames()
	placements := make([]cluster.DomUPlacement, 0, len(names))
	for _, name := range names {
		p, _ := final.Placement(name)
		placements = append(placements, *p)
	}
	doc.Status.FinalPlacements = topology.FromPlacements(placements)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		klog.ErrorS(err, "metrics server exited")
	}
}

func installTracing(ctx context.Context, endpoint string, insecureDial bool) (func(context.Context) error, error) {
	dialOpts := []grpc.DialOption{}
	if insecureDial {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(dialOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("building OTLP exporter: %w", err)
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName("clusteranalyzer"),
	))
	if err != nil {
		return nil, fmt.Errorf("building OTLP resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
