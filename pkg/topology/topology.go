// Package topology converts between the on-disk
// pkg/apis/topology/v1alpha1 document types and the in-memory
// pkg/cluster model, and loads/saves documents as YAML via
// sigs.k8s.io/yaml.
package topology

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	v1alpha1 "github.com/aoindustries/aoserv-cluster/pkg/apis/topology/v1alpha1"
	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

// LoadClusterTopology reads a ClusterTopology document from path and
// builds the Cluster it describes.
func LoadClusterTopology(path string) (*cluster.Cluster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("topology: reading %s: %w", path, err)
	}
	var doc v1alpha1.ClusterTopology
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("topology: parsing %s: %w", path, err)
	}
	return ToCluster(&doc)
}

// SaveClusterTopology encodes c as a ClusterTopology document and writes
// it to path.
func SaveClusterTopology(path string, c *cluster.Cluster) error {
	doc := FromCluster(c)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("topology: encoding cluster: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("topology: writing %s: %w", path, err)
	}
	return nil
}

// ToCluster validates and converts a ClusterTopology document into a
// Cluster, surfacing any malformed enum string as an error rather than
// silently defaulting to Unknown.
func ToCluster(doc *v1alpha1.ClusterTopology) (*cluster.Cluster, error) {
	dom0Specs := make([]cluster.Dom0Spec, len(doc.Spec.Dom0s))
	for i, d := range doc.Spec.Dom0s {
		procType, err := parseProcessorType(d.ProcessorType)
		if err != nil {
			return nil, fmt.Errorf("topology: dom0 %q: %w", d.Hostname, err)
		}
		procArch, err := parseProcessorArchitecture(d.ProcessorArchitecture)
		if err != nil {
			return nil, fmt.Errorf("topology: dom0 %q: %w", d.Hostname, err)
		}
		disks := make([]cluster.Dom0DiskSpec, len(d.Disks))
		for j, disk := range d.Disks {
			disks[j] = cluster.Dom0DiskSpec{Device: disk.Device, Speed: disk.Speed}
		}
		dom0Specs[i] = cluster.Dom0Spec{
			Hostname:              d.Hostname,
			RAMMiB:                d.RAMMiB,
			ProcessorType:         procType,
			ProcessorArchitecture: procArch,
			ProcessorSpeedMHz:     d.ProcessorSpeedMHz,
			ProcessorCores:        d.ProcessorCores,
			SupportsHVM:           d.SupportsHVM,
			Disks:                 disks,
		}
	}

	domUSpecs := make([]cluster.DomUSpec, len(doc.Spec.DomUs))
	for i, u := range doc.Spec.DomUs {
		minArch, err := parseProcessorArchitecture(u.MinProcessorArch)
		if err != nil {
			return nil, fmt.Errorf("topology: domU %q: %w", u.Hostname, err)
		}
		var minType *cluster.ProcessorType
		if u.MinProcessorType != "" {
			t, err := parseProcessorType(u.MinProcessorType)
			if err != nil {
				return nil, fmt.Errorf("topology: domU %q: %w", u.Hostname, err)
			}
			minType = &t
		}
		disks := make([]cluster.DomUDiskSpec, len(u.Disks))
		for j, disk := range u.Disks {
			disks[j] = cluster.DomUDiskSpec{
				Device:   disk.Device,
				Extents:  disk.Extents,
				MinSpeed: disk.MinSpeed,
				Weight:   disk.Weight,
			}
		}
		domUSpecs[i] = cluster.DomUSpec{
			Hostname:             u.Hostname,
			PrimaryRAMMiB:        u.PrimaryRAMMiB,
			SecondaryRAMMiB:      u.SecondaryRAMMiB,
			RequiredCores:        u.RequiredCores,
			ProcessorWeight:      u.ProcessorWeight,
			MinProcessorType:     minType,
			MinProcessorArch:     minArch,
			MinProcessorSpeedMHz: u.MinProcessorSpeedMHz,
			RequiresHVM:          u.RequiresHVM,
			Disks:                disks,
		}
	}

	return cluster.NewCluster(doc.Spec.ClusterName, dom0Specs, domUSpecs)
}

// FromCluster encodes c as a ClusterTopology document.
func FromCluster(c *cluster.Cluster) *v1alpha1.ClusterTopology {
	doc := &v1alpha1.ClusterTopology{
		Spec: v1alpha1.ClusterTopologySpec{ClusterName: c.Name()},
	}
	for _, d := range c.Dom0s() {
		disks := make([]v1alpha1.Dom0Disk, 0, len(d.Disks()))
		for _, disk := range d.Disks() {
			disks = append(disks, v1alpha1.Dom0Disk{Device: disk.Device(), Speed: disk.Speed()})
		}
		doc.Spec.Dom0s = append(doc.Spec.Dom0s, v1alpha1.Dom0{
			Hostname:              d.Hostname(),
			RAMMiB:                d.RAMMiB(),
			ProcessorType:         d.ProcessorType().String(),
			ProcessorArchitecture: d.ProcessorArchitecture().String(),
			ProcessorSpeedMHz:     d.ProcessorSpeedMHz(),
			ProcessorCores:        d.ProcessorCores(),
			SupportsHVM:           d.SupportsHVM(),
			Disks:                 disks,
		})
	}
	for _, u := range c.DomUs() {
		disks := make([]v1alpha1.DomUDisk, 0, len(u.Disks()))
		for _, disk := range u.Disks() {
			disks = append(disks, v1alpha1.DomUDisk{
				Device:   disk.Device(),
				Extents:  disk.Extents(),
				MinSpeed: disk.MinSpeed(),
				Weight:   disk.Weight(),
			})
		}
		minType := ""
		if t, ok := u.MinProcessorType(); ok {
			minType = t.String()
		}
		doc.Spec.DomUs = append(doc.Spec.DomUs, v1alpha1.DomU{
			Hostname:             u.Hostname(),
			PrimaryRAMMiB:        u.PrimaryRAMMiB(),
			SecondaryRAMMiB:      u.SecondaryRAMMiB(),
			RequiredCores:        u.RequiredCores(),
			ProcessorWeight:      u.ProcessorWeight(),
			MinProcessorType:     minType,
			MinProcessorArch:     u.MinProcessorArchitecture().String(),
			MinProcessorSpeedMHz: u.MinProcessorSpeedMHz(),
			RequiresHVM:          u.RequiresHVM(),
			Disks:                disks,
		})
	}
	return doc
}

// ToPlacements converts document-form DomUPlacements into their
// cluster package equivalents.
func ToPlacements(docs []v1alpha1.DomUPlacement) []cluster.DomUPlacement {
	out := make([]cluster.DomUPlacement, len(docs))
	for i, p := range docs {
		disks := make([]cluster.DomUDiskPlacement, len(p.Disks))
		for j, d := range p.Disks {
			disks[j] = cluster.DomUDiskPlacement{
				Device:    d.Device,
				Primary:   toPVs(d.Primary),
				Secondary: toPVs(d.Secondary),
			}
		}
		out[i] = cluster.DomUPlacement{
			DomUHostname:          p.DomUHostname,
			PrimaryDom0Hostname:   p.PrimaryDom0Hostname,
			SecondaryDom0Hostname: p.SecondaryDom0Hostname,
			Disks:                 disks,
		}
	}
	return out
}

// FromPlacements converts cluster package DomUPlacements into their
// document-form equivalents.
func FromPlacements(placements []cluster.DomUPlacement) []v1alpha1.DomUPlacement {
	out := make([]v1alpha1.DomUPlacement, len(placements))
	for i, p := range placements {
		disks := make([]v1alpha1.DomUDiskPlacement, len(p.Disks))
		for j, d := range p.Disks {
			disks[j] = v1alpha1.DomUDiskPlacement{
				Device:    d.Device,
				Primary:   fromPVs(d.Primary),
				Secondary: fromPVs(d.Secondary),
			}
		}
		out[i] = v1alpha1.DomUPlacement{
			DomUHostname:          p.DomUHostname,
			PrimaryDom0Hostname:   p.PrimaryDom0Hostname,
			SecondaryDom0Hostname: p.SecondaryDom0Hostname,
			Disks:                 disks,
		}
	}
	return out
}

func toPVs(docs []v1alpha1.PhysicalVolume) []cluster.PhysicalVolume {
	if docs == nil {
		return nil
	}
	out := make([]cluster.PhysicalVolume, len(docs))
	for i, pv := range docs {
		out[i] = cluster.PhysicalVolume{Dom0Hostname: pv.Dom0Hostname, Device: pv.Device, Extents: pv.Extents}
	}
	return out
}

func fromPVs(pvs []cluster.PhysicalVolume) []v1alpha1.PhysicalVolume {
	if pvs == nil {
		return nil
	}
	out := make([]v1alpha1.PhysicalVolume, len(pvs))
	for i, pv := range pvs {
		out[i] = v1alpha1.PhysicalVolume{Dom0Hostname: pv.Dom0Hostname, Device: pv.Device, Extents: pv.Extents}
	}
	return out
}

func parseProcessorType(s string) (cluster.ProcessorType, error) {
	for t := cluster.ProcessorTypeUnknown; t <= cluster.ProcessorTypeI7; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return cluster.ProcessorTypeUnknown, fmt.Errorf("unrecognized processor type %q", s)
}

func parseProcessorArchitecture(s string) (cluster.ProcessorArchitecture, error) {
	for a := cluster.ArchitectureUnknown; a <= cluster.ArchitectureX86_64; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return cluster.ArchitectureUnknown, fmt.Errorf("unrecognized processor architecture %q", s)
}
