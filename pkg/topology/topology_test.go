package topology_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
	"github.com/aoindustries/aoserv-cluster/pkg/topology"
)

func sampleCluster(t *testing.T) *cluster.Cluster {
	t.Helper()
	minType := cluster.ProcessorTypeCore2
	c, err := cluster.NewCluster("test", []cluster.Dom0Spec{
		{
			Hostname: "dom0a", RAMMiB: 16384, ProcessorType: cluster.ProcessorTypeXeon,
			ProcessorArchitecture: cluster.ArchitectureX86_64, ProcessorSpeedMHz: 2400, ProcessorCores: 4, SupportsHVM: true,
			Disks: []cluster.Dom0DiskSpec{{Device: "/dev/sda", Speed: 7200}},
		},
	}, []cluster.DomUSpec{
		{
			Hostname: "domU1", PrimaryRAMMiB: 4096, SecondaryRAMMiB: -1, RequiredCores: 1, ProcessorWeight: 512,
			MinProcessorType: &minType, MinProcessorArch: cluster.ArchitectureX86_64, MinProcessorSpeedMHz: 1800,
			Disks: []cluster.DomUDiskSpec{{Device: "xvda", Extents: 100, MinSpeed: 5400, Weight: 256}},
		},
	})
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	return c
}

func TestFromClusterThenToClusterRoundTrips(t *testing.T) {
	c := sampleCluster(t)
	doc := topology.FromCluster(c)
	roundTripped, err := topology.ToCluster(doc)
	if err != nil {
		t.Fatalf("ToCluster: %v", err)
	}

	original, _ := c.Dom0("dom0a")
	back, ok := roundTripped.Dom0("dom0a")
	if !ok {
		t.Fatalf("round-tripped cluster missing dom0a")
	}
	if diff := cmp.Diff(original.ProcessorType(), back.ProcessorType()); diff != "" {
		t.Fatalf("processor type mismatch (-want +got):\n%s", diff)
	}
	if back.RAMMiB() != original.RAMMiB() {
		t.Fatalf("RAMMiB = %d, want %d", back.RAMMiB(), original.RAMMiB())
	}

	domU, ok := roundTripped.DomU("domU1")
	if !ok {
		t.Fatalf("round-tripped cluster missing domU1")
	}
	minType, has := domU.MinProcessorType()
	if !has || minType != cluster.ProcessorTypeCore2 {
		t.Fatalf("MinProcessorType = (%v, %v), want (Core2, true)", minType, has)
	}
}

func TestToClusterRejectsUnknownProcessorType(t *testing.T) {
	c := sampleCluster(t)
	doc := topology.FromCluster(c)
	doc.Spec.Dom0s[0].ProcessorType = "Quantum"
	if _, err := topology.ToCluster(doc); err == nil {
		t.Fatalf("expected an error for an unrecognized processor type")
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	placements := []cluster.DomUPlacement{
		{
			DomUHostname: "domU1", PrimaryDom0Hostname: "dom0a",
			Disks: []cluster.DomUDiskPlacement{
				{Device: "xvda", Primary: []cluster.PhysicalVolume{{Dom0Hostname: "dom0a", Device: "/dev/sda", Extents: 100}}},
			},
		},
	}
	docs := topology.FromPlacements(placements)
	back := topology.ToPlacements(docs)
	if diff := cmp.Diff(placements, back); diff != "" {
		t.Fatalf("placements did not round-trip (-want +got):\n%s", diff)
	}
}
