package cluster

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PhysicalVolume is a contiguous range of extents on a specific Dom0Disk
// consumed by a DomUDisk.
type PhysicalVolume struct {
	Dom0Hostname string
	Device       string
	Extents      int
}

// DomUDiskPlacement records where a single DomUDisk's primary and (if any)
// secondary extents are physically placed.
type DomUDiskPlacement struct {
	Device    string
	Primary   []PhysicalVolume
	Secondary []PhysicalVolume
}

// DomUPlacement is the full placement decision for one DomU: its chosen
// primary and (optional) secondary Dom0, and the physical layout of every
// one of its disks.
type DomUPlacement struct {
	DomUHostname        string
	PrimaryDom0Hostname string
	// SecondaryDom0Hostname is "" when the DomU has no secondary RAM
	// reservation.
	SecondaryDom0Hostname string
	Disks                 []DomUDiskPlacement
}

// Move describes the transition that produced a Configuration, for path
// reconstruction and reporting. Concrete move types live in package move;
// this package only needs their textual description.
type Move interface {
	Describe() string
}

// Configuration is an immutable placement decision over a Cluster's DomUs.
type Configuration struct {
	clusterRef *Cluster
	parent     *Configuration
	move       Move
	depth      int

	placements map[string]*DomUPlacement // domU hostname -> placement

	// Precomputed reverse indices, built once at construction, so the
	// analyzer (invoked on the order of billions of times over a search
	// run) never has to rescan every DomU to answer "who is primary on
	// this Dom0".
	primaryOn   map[string][]string          // dom0 hostname -> domU hostnames, sorted
	secondaryOn map[string][]string          // dom0 hostname -> domU hostnames, sorted
	diskUsage   map[diskKey][]DiskUsageEntry // (dom0 hostname, device) -> entries

	fingerprint string
}

type diskKey struct {
	dom0Hostname string
	device       string
}

// DiskUsageEntry records one DomUDisk's use of a specific Dom0Disk,
// either through its primary or secondary physical-volume configuration.
type DiskUsageEntry struct {
	DomUHostname string
	Device       string
	Extents      int
	IsPrimary    bool
}

// Cluster returns the initial Cluster this Configuration was built over.
func (c *Configuration) Cluster() *Cluster { return c.clusterRef }

// Parent returns the Configuration this one was derived from, or nil for
// the initial Configuration of a search.
func (c *Configuration) Parent() *Configuration { return c.parent }

// Move returns the move that produced this Configuration, or nil for the
// initial Configuration.
func (c *Configuration) Move() Move { return c.move }

// Depth is g: the integer edge count from the initial Configuration.
func (c *Configuration) Depth() int { return c.depth }

// Fingerprint is a canonical, stable-across-runs encoding of the
// placement tuple, suitable as a closed-set and hash-map key.
func (c *Configuration) Fingerprint() string { return c.fingerprint }

// Equal reports whether two Configurations represent the same placement
// tuple. Per spec §4.4, equality is defined over the full placement
// tuple, and Fingerprint is defined so that Equal(a,b) iff
// a.Fingerprint() == b.Fingerprint().
func (c *Configuration) Equal(other *Configuration) bool {
	if other == nil {
		return false
	}
	return c.fingerprint == other.fingerprint
}

// DomUHostnames returns every DomU hostname with a placement, sorted.
func (c *Configuration) DomUHostnames() []string {
	names := make([]string, 0, len(c.placements))
	for n := range c.placements {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Placement returns the full placement record for a DomU.
func (c *Configuration) Placement(domUHostname string) (*DomUPlacement, bool) {
	p, ok := c.placements[domUHostname]
	return p, ok
}

// PrimaryOn returns, sorted, the hostnames of every DomU whose primary
// Dom0 is the given host.
func (c *Configuration) PrimaryOn(dom0Hostname string) []string {
	return c.primaryOn[dom0Hostname]
}

// SecondaryOn returns, sorted, the hostnames of every DomU whose
// secondary Dom0 is the given host and which has a non-negative
// secondary RAM reservation.
func (c *Configuration) SecondaryOn(dom0Hostname string) []string {
	return c.secondaryOn[dom0Hostname]
}

// DiskUsage returns every DomUDisk placement (primary or secondary) that
// has at least one physical volume on the given Dom0Disk.
func (c *Configuration) DiskUsage(dom0Hostname, device string) []DiskUsageEntry {
	return c.diskUsage[diskKey{dom0Hostname, device}]
}

// NewConfiguration validates placements against cluster and the §3
// structural invariants, and builds an immutable Configuration.
func NewConfiguration(parent *Configuration, clusterRef *Cluster, move Move, depth int, placements []DomUPlacement) (*Configuration, error) {
	if clusterRef == nil {
		return nil, fmt.Errorf("%w: nil cluster", ErrInvalidSpec)
	}

	placementMap := make(map[string]*DomUPlacement, len(placements))
	primaryOn := make(map[string][]string)
	secondaryOn := make(map[string][]string)
	diskUsage := make(map[diskKey][]DiskUsageEntry)

	for i := range placements {
		p := placements[i]
		domU, ok := clusterRef.DomU(p.DomUHostname)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomU, p.DomUHostname)
		}
		if _, dup := placementMap[p.DomUHostname]; dup {
			return nil, fmt.Errorf("%w: duplicate placement for domU %q", ErrInvalidSpec, p.DomUHostname)
		}

		if p.PrimaryDom0Hostname == "" {
			return nil, fmt.Errorf("%w: domU %q", ErrMissingPrimary, p.DomUHostname)
		}
		primaryDom0, ok := clusterRef.Dom0(p.PrimaryDom0Hostname)
		if !ok {
			return nil, fmt.Errorf("%w: %q (primary for domU %q)", ErrUnknownDom0, p.PrimaryDom0Hostname, p.DomUHostname)
		}

		hasSecondary := domU.HasSecondary() && p.SecondaryDom0Hostname != ""
		if p.SecondaryDom0Hostname != "" {
			if p.SecondaryDom0Hostname == p.PrimaryDom0Hostname {
				return nil, fmt.Errorf("%w: domU %q", ErrPrimaryEqualsSecondary, p.DomUHostname)
			}
			if _, ok := clusterRef.Dom0(p.SecondaryDom0Hostname); !ok {
				return nil, fmt.Errorf("%w: %q (secondary for domU %q)", ErrUnknownDom0, p.SecondaryDom0Hostname, p.DomUHostname)
			}
		}

		seenDevices := make(map[string]bool, len(p.Disks))
		for _, dp := range p.Disks {
			domUDisk, ok := domU.Disk(dp.Device)
			if !ok {
				return nil, fmt.Errorf("%w: domU %q disk %q", ErrUnknownDisk, p.DomUHostname, dp.Device)
			}
			if seenDevices[dp.Device] {
				return nil, fmt.Errorf("%w: duplicate disk placement %q for domU %q", ErrInvalidSpec, dp.Device, p.DomUHostname)
			}
			seenDevices[dp.Device] = true

			primarySum, primaryHosts, err := validatePVs(clusterRef, dp.Primary)
			if err != nil {
				return nil, fmt.Errorf("domU %q disk %q primary: %w", p.DomUHostname, dp.Device, err)
			}
			if primarySum != domUDisk.Extents() {
				return nil, fmt.Errorf("%w: domU %q disk %q primary has %d extents, want %d", ErrExtentMismatch, p.DomUHostname, dp.Device, primarySum, domUDisk.Extents())
			}

			var secondaryHosts map[string]bool
			if hasSecondary {
				secondarySum, hosts, err := validatePVs(clusterRef, dp.Secondary)
				if err != nil {
					return nil, fmt.Errorf("domU %q disk %q secondary: %w", p.DomUHostname, dp.Device, err)
				}
				if secondarySum != domUDisk.Extents() {
					return nil, fmt.Errorf("%w: domU %q disk %q secondary has %d extents, want %d", ErrExtentMismatch, p.DomUHostname, dp.Device, secondarySum, domUDisk.Extents())
				}
				secondaryHosts = hosts

				for host := range hosts {
					if primaryHosts[host] {
						return nil, fmt.Errorf("%w: domU %q disk %q", ErrSamePVHost, p.DomUHostname, dp.Device)
					}
				}
			}

			for _, pv := range dp.Primary {
				diskUsage[diskKey{pv.Dom0Hostname, pv.Device}] = append(diskUsage[diskKey{pv.Dom0Hostname, pv.Device}], DiskUsageEntry{
					DomUHostname: p.DomUHostname,
					Device:       dp.Device,
					Extents:      pv.Extents,
					IsPrimary:    true,
				})
			}
			if hasSecondary {
				for _, pv := range dp.Secondary {
					diskUsage[diskKey{pv.Dom0Hostname, pv.Device}] = append(diskUsage[diskKey{pv.Dom0Hostname, pv.Device}], DiskUsageEntry{
						DomUHostname: p.DomUHostname,
						Device:       dp.Device,
						Extents:      pv.Extents,
						IsPrimary:    false,
					})
				}
			}
			_ = secondaryHosts
		}

		stored := p
		placementMap[p.DomUHostname] = &stored

		primaryOn[p.PrimaryDom0Hostname] = append(primaryOn[p.PrimaryDom0Hostname], p.DomUHostname)
		if hasSecondary {
			secondaryOn[p.SecondaryDom0Hostname] = append(secondaryOn[p.SecondaryDom0Hostname], p.DomUHostname)
		}
		_ = primaryDom0
	}

	for host := range primaryOn {
		sort.Strings(primaryOn[host])
	}
	for host := range secondaryOn {
		sort.Strings(secondaryOn[host])
	}
	for k := range diskUsage {
		entries := diskUsage[k]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].DomUHostname != entries[j].DomUHostname {
				return entries[i].DomUHostname < entries[j].DomUHostname
			}
			return entries[i].Device < entries[j].Device
		})
	}

	cfg := &Configuration{
		clusterRef:  clusterRef,
		parent:      parent,
		move:        move,
		depth:       depth,
		placements:  placementMap,
		primaryOn:   primaryOn,
		secondaryOn: secondaryOn,
		diskUsage:   diskUsage,
	}
	cfg.fingerprint = computeFingerprint(clusterRef.Name(), placementMap)
	return cfg, nil
}

func validatePVs(clusterRef *Cluster, pvs []PhysicalVolume) (int, map[string]bool, error) {
	sum := 0
	hosts := make(map[string]bool)
	for _, pv := range pvs {
		dom0, ok := clusterRef.Dom0(pv.Dom0Hostname)
		if !ok {
			return 0, nil, fmt.Errorf("%w: %q", ErrUnknownDom0, pv.Dom0Hostname)
		}
		if _, ok := dom0.Disk(pv.Device); !ok {
			return 0, nil, fmt.Errorf("%w: dom0 %q disk %q", ErrUnknownDisk, pv.Dom0Hostname, pv.Device)
		}
		sum += pv.Extents
		hosts[pv.Dom0Hostname] = true
	}
	return sum, hosts, nil
}

// computeFingerprint builds a canonical byte encoding of the placement
// tuple and hashes it. The encoding is deterministic: DomU hostnames,
// disk devices and physical volumes are sorted here before they are
// written, and every numeric field is written with a fixed base-10
// formatting.
func computeFingerprint(clusterName string, placements map[string]*DomUPlacement) string {
	domUNames := make([]string, 0, len(placements))
	for n := range placements {
		domUNames = append(domUNames, n)
	}
	sort.Strings(domUNames)

	var b strings.Builder
	b.WriteString(clusterName)
	b.WriteByte('\n')
	for _, name := range domUNames {
		p := placements[name]
		b.WriteString(name)
		b.WriteByte('|')
		b.WriteString(p.PrimaryDom0Hostname)
		b.WriteByte('|')
		b.WriteString(p.SecondaryDom0Hostname)
		b.WriteByte('\n')

		disks := append([]DomUDiskPlacement(nil), p.Disks...)
		sort.Slice(disks, func(i, j int) bool { return disks[i].Device < disks[j].Device })
		for _, dp := range disks {
			b.WriteString("  ")
			b.WriteString(dp.Device)
			b.WriteByte('\n')
			writePVs(&b, "p", dp.Primary)
			writePVs(&b, "s", dp.Secondary)
		}
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writePVs(b *strings.Builder, tag string, pvs []PhysicalVolume) {
	sorted := append([]PhysicalVolume(nil), pvs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Dom0Hostname != sorted[j].Dom0Hostname {
			return sorted[i].Dom0Hostname < sorted[j].Dom0Hostname
		}
		return sorted[i].Device < sorted[j].Device
	})
	for _, pv := range sorted {
		b.WriteString("    ")
		b.WriteString(tag)
		b.WriteByte(':')
		b.WriteString(pv.Dom0Hostname)
		b.WriteByte('/')
		b.WriteString(pv.Device)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(pv.Extents))
		b.WriteByte('\n')
	}
}
