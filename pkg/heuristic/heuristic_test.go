package heuristic_test

import (
	"testing"

	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
	"github.com/aoindustries/aoserv-cluster/pkg/heuristic"
)

func optimalConfig(t *testing.T) *cluster.Configuration {
	t.Helper()
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{
		{Hostname: "dom0a", RAMMiB: 16384, ProcessorType: cluster.ProcessorTypeXeon, ProcessorArchitecture: cluster.ArchitectureX86_64, ProcessorSpeedMHz: 2400, ProcessorCores: 4, SupportsHVM: true},
	}, []cluster.DomUSpec{
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
	return cfg
}

func overcommittedConfig(t *testing.T) *cluster.Configuration {
	t.Helper()
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{
		{Hostname: "dom0a", RAMMiB: 16384, ProcessorType: cluster.ProcessorTypeXeon, ProcessorArchitecture: cluster.ArchitectureX86_64, ProcessorSpeedMHz: 2400, ProcessorCores: 4, SupportsHVM: true},
	}, []cluster.DomUSpec{
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
	return cfg
}

func TestLeastInformedZeroWhenOptimal(t *testing.T) {
	cfg := optimalConfig(t)
	if got := heuristic.LeastInformed(cfg, 3); got != 3 {
		t.Fatalf("LeastInformed = %d, want 3 (g, h=0)", got)
	}
}

func TestLeastInformedOneWhenNotOptimal(t *testing.T) {
	cfg := overcommittedConfig(t)
	if got := heuristic.LeastInformed(cfg, 3); got != 4 {
		t.Fatalf("LeastInformed = %d, want 4 (g+1)", got)
	}
}

func TestExponentialDominatesOnCritical(t *testing.T) {
	cfg := overcommittedConfig(t)
	got := heuristic.Exponential(cfg, 0)
	if got < heuristic.ExponentialWeights[4] {
		t.Fatalf("Exponential = %d, want at least the CRITICAL weight", got)
	}
}

func TestExponentialZeroOnOptimal(t *testing.T) {
	cfg := optimalConfig(t)
	if got := heuristic.Exponential(cfg, 5); got != 5 {
		t.Fatalf("Exponential = %d, want 5 (g, no violations)", got)
	}
}

func TestExponentialIsPureAcrossRepeatedCalls(t *testing.T) {
	cfg := overcommittedConfig(t)
	first := heuristic.Exponential(cfg, 0)
	second := heuristic.Exponential(cfg, 0)
	if first != second {
		t.Fatalf("Exponential not pure: %d != %d across repeated calls", first, second)
	}
}
