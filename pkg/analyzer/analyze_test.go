package analyzer_test

import (
	"testing"

	"github.com/aoindustries/aoserv-cluster/pkg/analyzer"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

func dom0Spec(hostname string, ramMiB, cores int) cluster.Dom0Spec {
	return cluster.Dom0Spec{
		Hostname:              hostname,
		RAMMiB:                ramMiB,
		ProcessorType:         cluster.ProcessorTypeXeon,
		ProcessorArchitecture: cluster.ArchitectureX86_64,
		ProcessorSpeedMHz:     2400,
		ProcessorCores:        cores,
		SupportsHVM:           true,
	}
}

func TestAnalyzeOptimalPlacementReportsNothing(t *testing.T) {
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{dom0Spec("dom0a", 16384, 4)}, []cluster.DomUSpec{
		{Hostname: "domU1", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 1, ProcessorWeight: 512, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: -1},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	cfg, err := cluster.NewConfiguration(nil, c, nil, 0, []cluster.DomUPlacement{
		{DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a"},
	})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	if !analyzer.IsOptimal(cfg) {
		t.Fatalf("expected optimal configuration")
	}
}

func TestAnalyzeAvailableRAMOvercommit(t *testing.T) {
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{dom0Spec("dom0a", 16384, 4)}, []cluster.DomUSpec{
		{Hostname: "domU1", PrimaryRAMMiB: 20480, SecondaryRAMMiB: -1, RequiredCores: 1, ProcessorWeight: 512, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: -1},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	cfg, err := cluster.NewConfiguration(nil, c, nil, 0, []cluster.DomUPlacement{
		{DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a"},
	})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}

	var got *analyzer.Result
	analyzer.Analyze(cfg, analyzer.AlertLow, func(r analyzer.Result) bool {
		if r.Level == analyzer.AlertCritical {
			got = &r
			return false
		}
		return true
	})
	if got == nil {
		t.Fatalf("expected a CRITICAL result")
	}
	if got.Deviation != 0.25 {
		t.Fatalf("deviation = %v, want 0.25", got.Deviation)
	}
}

func TestAnalyzeProcessorCoresShortfall(t *testing.T) {
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{dom0Spec("dom0a", 16384, 2)}, []cluster.DomUSpec{
		{Hostname: "domU1", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 4, ProcessorWeight: 512, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: -1},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	cfg, err := cluster.NewConfiguration(nil, c, nil, 0, []cluster.DomUPlacement{
		{DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a"},
	})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}

	var got *analyzer.Result
	analyzer.Analyze(cfg, analyzer.AlertLow, func(r analyzer.Result) bool {
		if r.Level == analyzer.AlertMedium {
			got = &r
			return false
		}
		return true
	})
	if got == nil {
		t.Fatalf("expected a MEDIUM result")
	}
	if got.Deviation != 0.5 {
		t.Fatalf("deviation = %v, want 0.5", got.Deviation)
	}
}

func TestAnalyzeFloorSkipsLowerSeverityRules(t *testing.T) {
	// min processor type violation (rule 3, max LOW) should never surface
	// once the floor is raised above LOW, even though the configuration
	// also has no higher-severity violation to otherwise stop at.
	lowType := cluster.ProcessorTypeI7
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{dom0Spec("dom0a", 16384, 4)}, []cluster.DomUSpec{
		{
			Hostname: "domU1", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 1,
			ProcessorWeight: 512, MinProcessorType: &lowType, MinProcessorArch: cluster.ArchitectureX86_64,
			MinProcessorSpeedMHz: -1,
		},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	cfg, err := cluster.NewConfiguration(nil, c, nil, 0, []cluster.DomUPlacement{
		{DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a"},
	})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}

	var lowSeen bool
	analyzer.Analyze(cfg, analyzer.AlertLow, func(r analyzer.Result) bool {
		if r.Level == analyzer.AlertLow {
			lowSeen = true
		}
		return true
	})
	if !lowSeen {
		t.Fatalf("expected a LOW result at floor LOW")
	}

	analyzer.Analyze(cfg, analyzer.AlertMedium, func(r analyzer.Result) bool {
		if r.Level == analyzer.AlertLow {
			t.Fatalf("LOW result leaked through MEDIUM floor")
		}
		return true
	})
}

func TestAnalyzeSinkStopsImmediately(t *testing.T) {
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{dom0Spec("dom0a", 16384, 4)}, []cluster.DomUSpec{
		{Hostname: "domU1", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 1, ProcessorWeight: 512, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: -1},
		{Hostname: "domU2", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 1, ProcessorWeight: 512, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: -1},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	cfg, err := cluster.NewConfiguration(nil, c, nil, 0, []cluster.DomUPlacement{
		{DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a"},
		{DomUHostname: "domU2", PrimaryDom0Hostname: "dom0a"},
	})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}

	calls := 0
	analyzer.Analyze(cfg, analyzer.AlertNone, func(r analyzer.Result) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Fatalf("sink invoked %d times, want exactly 1 after returning false", calls)
	}
}
