// Package move implements the three move kinds from spec.md §4.3: swap
// a DomU's primary and secondary Dom0, reassign a DomU's secondary Dom0,
// and migrate a DomUDisk's secondary physical-volume layout onto a
// different Dom0Disk. Successor generation is deterministic: candidates
// are always produced in a fixed (DomU hostname, then Dom0/disk
// hostname) order, so A* tie-breaking on generation order is
// reproducible across runs. Structurally invalid candidates — the ones
// cluster.NewConfiguration would reject — are filtered out here, before
// they ever reach the analyzer.
package move

import (
	"fmt"
	"sort"

	"k8s.io/utils/sets"

	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

// SwapPrimarySecondary exchanges a single DomU's primary and secondary
// Dom0, and the primary/secondary role of every one of its disks' PVs.
type SwapPrimarySecondary struct {
	DomUHostname string
}

func (m SwapPrimarySecondary) Describe() string {
	return fmt.Sprintf("swap primary/secondary for %s", m.DomUHostname)
}

// ReassignSecondary retargets a single DomU's secondary Dom0 to a
// different host, carrying its secondary disk PVs' device paths over
// unchanged (a candidate is filtered out if the new host lacks a
// matching device).
type ReassignSecondary struct {
	DomUHostname      string
	NewSecondaryDom0  string
}

func (m ReassignSecondary) Describe() string {
	return fmt.Sprintf("reassign secondary of %s to %s", m.DomUHostname, m.NewSecondaryDom0)
}

// MigrateSecondaryDiskPV consolidates a single DomUDisk's secondary
// extents onto one different Dom0Disk of the same secondary host.
type MigrateSecondaryDiskPV struct {
	DomUHostname string
	Device       string
	TargetDisk   string
}

func (m MigrateSecondaryDiskPV) Describe() string {
	return fmt.Sprintf("migrate secondary PV of %s disk %s to %s", m.DomUHostname, m.Device, m.TargetDisk)
}

// Successors returns every structurally valid Configuration reachable
// from cfg by exactly one move, in deterministic order: all
// SwapPrimarySecondary candidates (by DomU hostname), then all
// ReassignSecondary candidates (by DomU hostname, then candidate Dom0
// hostname), then all MigrateSecondaryDiskPV candidates (by DomU
// hostname, then disk device, then candidate target disk).
func Successors(cfg *cluster.Configuration) []*cluster.Configuration {
	return SuccessorsExcluding(cfg, nil)
}

// SuccessorsExcluding behaves like Successors, but never proposes
// excludedDom0s as the new secondary host for ReassignSecondary
// candidates — e.g. hosts the operator has flagged as draining or
// otherwise unavailable for new failover placements. Swap and
// MigrateSecondaryDiskPV candidates are not filtered: a migration stays
// on the DomU's current secondary host even when that host is excluded.
func SuccessorsExcluding(cfg *cluster.Configuration, excludedDom0s sets.Set[string]) []*cluster.Configuration {
	var out []*cluster.Configuration
	out = append(out, swapCandidates(cfg)...)
	out = append(out, reassignCandidates(cfg, excludedDom0s)...)
	out = append(out, migrateCandidates(cfg)...)
	return out
}

func swapCandidates(cfg *cluster.Configuration) []*cluster.Configuration {
	var out []*cluster.Configuration
	c := cfg.Cluster()
	for _, domUHostname := range cfg.DomUHostnames() {
		p, _ := cfg.Placement(domUHostname)
		domU, ok := c.DomU(domUHostname)
		if !ok || !domU.HasSecondary() || p.SecondaryDom0Hostname == "" {
			continue
		}

		swapped := cluster.DomUPlacement{
			DomUHostname:          domUHostname,
			PrimaryDom0Hostname:   p.SecondaryDom0Hostname,
			SecondaryDom0Hostname: p.PrimaryDom0Hostname,
			Disks:                 swapDiskRoles(p.Disks),
		}
		cfgOut, err := applyPlacement(cfg, SwapPrimarySecondary{DomUHostname: domUHostname}, swapped)
		if err == nil {
			out = append(out, cfgOut)
		}
	}
	return out
}

func swapDiskRoles(disks []cluster.DomUDiskPlacement) []cluster.DomUDiskPlacement {
	out := make([]cluster.DomUDiskPlacement, len(disks))
	for i, d := range disks {
		out[i] = cluster.DomUDiskPlacement{
			Device:    d.Device,
			Primary:   d.Secondary,
			Secondary: d.Primary,
		}
	}
	return out
}

func reassignCandidates(cfg *cluster.Configuration, excludedDom0s sets.Set[string]) []*cluster.Configuration {
	var out []*cluster.Configuration
	c := cfg.Cluster()
	for _, domUHostname := range cfg.DomUHostnames() {
		p, _ := cfg.Placement(domUHostname)
		domU, ok := c.DomU(domUHostname)
		if !ok || !domU.HasSecondary() || p.SecondaryDom0Hostname == "" {
			continue
		}

		for _, candidate := range c.Dom0s() {
			if candidate.Hostname() == p.PrimaryDom0Hostname || candidate.Hostname() == p.SecondaryDom0Hostname {
				continue
			}
			if excludedDom0s.Has(candidate.Hostname()) {
				continue
			}
			retargeted := cluster.DomUPlacement{
				DomUHostname:          domUHostname,
				PrimaryDom0Hostname:   p.PrimaryDom0Hostname,
				SecondaryDom0Hostname: candidate.Hostname(),
				Disks:                 retargetSecondaryHost(p.Disks, candidate.Hostname()),
			}
			cfgOut, err := applyPlacement(cfg, ReassignSecondary{DomUHostname: domUHostname, NewSecondaryDom0: candidate.Hostname()}, retargeted)
			if err == nil {
				out = append(out, cfgOut)
			}
		}
	}
	return out
}

func retargetSecondaryHost(disks []cluster.DomUDiskPlacement, newHost string) []cluster.DomUDiskPlacement {
	out := make([]cluster.DomUDiskPlacement, len(disks))
	for i, d := range disks {
		secondary := make([]cluster.PhysicalVolume, len(d.Secondary))
		for j, pv := range d.Secondary {
			secondary[j] = cluster.PhysicalVolume{Dom0Hostname: newHost, Device: pv.Device, Extents: pv.Extents}
		}
		out[i] = cluster.DomUDiskPlacement{Device: d.Device, Primary: d.Primary, Secondary: secondary}
	}
	return out
}

func migrateCandidates(cfg *cluster.Configuration) []*cluster.Configuration {
	var out []*cluster.Configuration
	c := cfg.Cluster()
	for _, domUHostname := range cfg.DomUHostnames() {
		p, _ := cfg.Placement(domUHostname)
		domU, ok := c.DomU(domUHostname)
		if !ok || !domU.HasSecondary() || p.SecondaryDom0Hostname == "" {
			continue
		}
		secondaryDom0, ok := c.Dom0(p.SecondaryDom0Hostname)
		if !ok {
			continue
		}

		devices := make([]string, len(p.Disks))
		for i, d := range p.Disks {
			devices[i] = d.Device
		}
		sort.Strings(devices)

		for _, device := range devices {
			var diskPlacement *cluster.DomUDiskPlacement
			for i := range p.Disks {
				if p.Disks[i].Device == device {
					diskPlacement = &p.Disks[i]
					break
				}
			}
			domUDisk, ok := domU.Disk(device)
			if !ok || diskPlacement == nil {
				continue
			}
			currentDevices := map[string]bool{}
			for _, pv := range diskPlacement.Secondary {
				currentDevices[pv.Device] = true
			}

			for _, targetDisk := range secondaryDom0.Disks() {
				if currentDevices[targetDisk.Device()] {
					continue
				}
				newDisks := make([]cluster.DomUDiskPlacement, len(p.Disks))
				copy(newDisks, p.Disks)
				for i := range newDisks {
					if newDisks[i].Device == device {
						newDisks[i] = cluster.DomUDiskPlacement{
							Device:  device,
							Primary: diskPlacement.Primary,
							Secondary: []cluster.PhysicalVolume{
								{Dom0Hostname: secondaryDom0.Hostname(), Device: targetDisk.Device(), Extents: domUDisk.Extents()},
							},
						}
					}
				}
				retargeted := cluster.DomUPlacement{
					DomUHostname:          domUHostname,
					PrimaryDom0Hostname:   p.PrimaryDom0Hostname,
					SecondaryDom0Hostname: p.SecondaryDom0Hostname,
					Disks:                 newDisks,
				}
				cfgOut, err := applyPlacement(cfg, MigrateSecondaryDiskPV{DomUHostname: domUHostname, Device: device, TargetDisk: targetDisk.Device()}, retargeted)
				if err == nil {
					out = append(out, cfgOut)
				}
			}
		}
	}
	return out
}

// applyPlacement rebuilds the full placement set for cfg with one
// DomU's placement replaced by updated, then constructs the successor
// Configuration. Invalid candidates (the structural invariants of §3)
// are reported back to the caller to be silently dropped, per spec.md
// §4.3's "filter out structurally invalid candidates before they reach
// the analyzer."
func applyPlacement(cfg *cluster.Configuration, m cluster.Move, updated cluster.DomUPlacement) (*cluster.Configuration, error) {
	names := cfg.DomUHostnames()
	placements := make([]cluster.DomUPlacement, 0, len(names))
	for _, name := range names {
		if name == updated.DomUHostname {
			placements = append(placements, updated)
			continue
		}
		p, _ := cfg.Placement(name)
		placements = append(placements, *p)
	}
	return cluster.NewConfiguration(cfg, cfg.Cluster(), m, cfg.Depth()+1, placements)
}
