package analyzer

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

// ruleMaxLevel is the highest AlertLevel each numbered rule can ever
// produce. Analyze uses this table to skip a rule's computation entirely
// when the caller's floor is already above anything the rule could
// report — a performance contract, not merely a convenience filter.
var ruleMaxLevel = [...]AlertLevel{
	1:  AlertCritical,
	2:  AlertHigh,
	3:  AlertLow,
	4:  AlertCritical,
	5:  AlertLow,
	6:  AlertMedium,
	7:  AlertMedium,
	8:  AlertCritical,
	9:  AlertMedium,
	10: AlertMedium,
}

// emitter wraps a Sink with the floor filter and the "never call again
// once the sink says stop" contract, so rule bodies never have to
// reimplement either concern.
type emitter struct {
	sink     Sink
	floor    AlertLevel
	stopped  bool
}

// emit delivers r to the sink if r.Level is at or above the floor, and
// reports whether evaluation should continue.
func (e *emitter) emit(r Result) bool {
	if e.stopped {
		return false
	}
	if r.Level < e.floor {
		return true
	}
	if !e.sink(r) {
		e.stopped = true
		return false
	}
	return true
}

// Analyze evaluates every applicable rule against cfg in the fixed order
// from spec.md §4.1 — rules 1 through 8 per Dom0 (in Dom0 hostname
// order), then rules 9 and 10 per Dom0Disk — streaming each Result to
// sink. Analyze stops as soon as sink returns false, or once every
// applicable rule has been evaluated. Rules whose maximum possible
// AlertLevel falls below minLevel are skipped without being computed.
func Analyze(cfg *cluster.Configuration, minLevel AlertLevel, sink Sink) {
	e := &emitter{sink: sink, floor: minLevel}
	c := cfg.Cluster()

	for _, dom0 := range c.Dom0s() {
		if minLevel <= ruleMaxLevel[1] && !rule1AvailableRAM(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[2] && !rule2AllocatedSecondaryRAM(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[3] && !rule3ProcessorType(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[4] && !rule4ProcessorArchitecture(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[5] && !rule5ProcessorSpeed(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[6] && !rule6ProcessorCores(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[7] && !rule7AvailableProcessorWeight(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[8] && !rule8RequiresHVM(cfg, dom0, e) {
			return
		}
		if minLevel <= ruleMaxLevel[9] || minLevel <= ruleMaxLevel[10] {
			for _, disk := range dom0.Disks() {
				if minLevel <= ruleMaxLevel[9] && !rule9AvailableDiskWeight(cfg, dom0, disk, e) {
					return
				}
				if minLevel <= ruleMaxLevel[10] && !rule10DiskSpeed(cfg, dom0, disk, e) {
					return
				}
			}
		}
	}
}

// IsOptimal reports whether cfg triggers no rule above NONE, evaluated
// at the LOW floor (the least permissive floor that still surfaces
// every defined rule).
func IsOptimal(cfg *cluster.Configuration) bool {
	optimal := true
	Analyze(cfg, AlertLow, func(r Result) bool {
		if r.Level > AlertNone {
			optimal = false
			return false
		}
		return true
	})
	return optimal
}

func mustDomU(c *cluster.Cluster, hostname string) *cluster.DomU {
	domU, ok := c.DomU(hostname)
	if !ok {
		panic(fmt.Sprintf("analyzer: configuration references unknown domU %q", hostname))
	}
	return domU
}

// domUContext names one DomU contributing to a per-Dom0 rule, and
// whether its role on that Dom0 is primary or (qualifying) secondary.
type domUContext struct {
	hostname  string
	isPrimary bool
}

// contributingDomUs returns, sorted, every DomU hostname that is either
// primary on dom0Hostname or a qualifying secondary (secondary_ram != -1)
// there, together with whether that DomU's role here is primary.
func contributingDomUs(cfg *cluster.Configuration, dom0Hostname string) []domUContext {
	roles := make(map[string]bool) // hostname -> isPrimary
	for _, h := range cfg.PrimaryOn(dom0Hostname) {
		roles[h] = true
	}
	for _, h := range cfg.SecondaryOn(dom0Hostname) {
		if _, already := roles[h]; !already {
			roles[h] = false
		}
	}
	names := make([]string, 0, len(roles))
	for h := range roles {
		names = append(names, h)
	}
	sortStrings(names)

	out := make([]domUContext, len(names))
	for i, h := range names {
		out[i] = domUContext{hostname: h, isPrimary: roles[h]}
	}
	return out
}

// rule1AvailableRAM: free = dom0.ram - sum(primary ram of DomUs placed
// here). CRITICAL when free < 0. Deviation = -free/installed.
func rule1AvailableRAM(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	allocated := 0
	for _, h := range cfg.PrimaryOn(dom0.Hostname()) {
		allocated += mustDomU(c, h).PrimaryRAMMiB()
	}
	free := dom0.RAMMiB() - allocated
	level := AlertNone
	if free < 0 {
		level = AlertCritical
	}
	deviation := 0.0
	if dom0.RAMMiB() > 0 {
		deviation = -float64(free) / float64(dom0.RAMMiB())
	}
	klog.V(4).InfoS("rule1 available RAM", "dom0", dom0.Hostname(), "free", free, "level", level)
	return e.emit(Result{
		Label:     fmt.Sprintf("Available RAM: %s", dom0.Hostname()),
		Deviation: deviation,
		Level:     level,
		Payload:   IntPayload(free),
	})
}

// rule2AllocatedSecondaryRAM: for every other Dom0 (origin) that has at
// least one DomU secondaried on dom0, check whether dom0's free primary
// RAM could absorb the secondary_ram of every DomU failing over from
// that origin in a single failover. HIGH when it could not.
func rule2AllocatedSecondaryRAM(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()

	originHosts := make(map[string]bool)
	for _, h := range cfg.SecondaryOn(dom0.Hostname()) {
		placement, _ := cfg.Placement(h)
		originHosts[placement.PrimaryDom0Hostname] = true
	}
	origins := make([]string, 0, len(originHosts))
	for h := range originHosts {
		origins = append(origins, h)
	}
	sortStrings(origins)

	ownPrimary := 0
	for _, h := range cfg.PrimaryOn(dom0.Hostname()) {
		ownPrimary += mustDomU(c, h).PrimaryRAMMiB()
	}
	freePrimary := dom0.RAMMiB() - ownPrimary

	for _, origin := range origins {
		s := 0
		for _, h := range cfg.SecondaryOn(dom0.Hostname()) {
			placement, _ := cfg.Placement(h)
			if placement.PrimaryDom0Hostname == origin {
				s += mustDomU(c, h).SecondaryRAMMiB()
			}
		}
		level := AlertNone
		if s > freePrimary {
			level = AlertHigh
		}
		deviation := 0.0
		if dom0.RAMMiB() > 0 {
			deviation = float64(s-freePrimary) / float64(dom0.RAMMiB())
		}
		klog.V(4).InfoS("rule2 allocated secondary RAM", "dom0", dom0.Hostname(), "origin", origin, "secondary", s, "freePrimary", freePrimary, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Allocated secondary RAM: %s absorbs %s", dom0.Hostname(), origin),
			Deviation: deviation,
			Level:     level,
			Payload:   IntPayload(freePrimary - s),
		}) {
			return false
		}
	}
	return true
}

// rule3ProcessorType: skipped for a DomU with no minimum processor type.
// LOW when dom0's processor type is below the DomU's minimum.
func rule3ProcessorType(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	for _, ctx := range contributingDomUs(cfg, dom0.Hostname()) {
		domU := mustDomU(c, ctx.hostname)
		minType, has := domU.MinProcessorType()
		if !has {
			continue
		}
		level := AlertNone
		if dom0.ProcessorType() < minType {
			level = AlertLow
		}
		deviation := 0.0
		if level != AlertNone {
			deviation = float64(minType - dom0.ProcessorType())
		}
		klog.V(5).InfoS("rule3 processor type", "dom0", dom0.Hostname(), "domU", ctx.hostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Processor type: %s/%s", dom0.Hostname(), ctx.hostname),
			Deviation: deviation,
			Level:     level,
			Payload:   ProcessorTypePayload(minType),
		}) {
			return false
		}
	}
	return true
}

// rule4ProcessorArchitecture: always computed (architecture is always
// required). CRITICAL when dom0 is the primary and below the minimum
// architecture, HIGH when dom0 is only the secondary.
func rule4ProcessorArchitecture(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	for _, ctx := range contributingDomUs(cfg, dom0.Hostname()) {
		domU := mustDomU(c, ctx.hostname)
		level := AlertNone
		if dom0.ProcessorArchitecture() < domU.MinProcessorArchitecture() {
			if ctx.isPrimary {
				level = AlertCritical
			} else {
				level = AlertHigh
			}
		}
		deviation := 0.0
		if level != AlertNone {
			deviation = 1.0
		}
		klog.V(5).InfoS("rule4 processor architecture", "dom0", dom0.Hostname(), "domU", ctx.hostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Processor architecture: %s/%s", dom0.Hostname(), ctx.hostname),
			Deviation: deviation,
			Level:     level,
			Payload:   ProcessorArchitecturePayload(domU.MinProcessorArchitecture()),
		}) {
			return false
		}
	}
	return true
}

// rule5ProcessorSpeed: skipped when the DomU has no minimum speed. LOW
// when dom0's speed is below the minimum, deviation = (min-actual)/min.
func rule5ProcessorSpeed(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	for _, ctx := range contributingDomUs(cfg, dom0.Hostname()) {
		domU := mustDomU(c, ctx.hostname)
		if !domU.HasMinProcessorSpeed() {
			continue
		}
		min := domU.MinProcessorSpeedMHz()
		level := AlertNone
		deviation := 0.0
		if dom0.ProcessorSpeedMHz() < min {
			level = AlertLow
			deviation = float64(min-dom0.ProcessorSpeedMHz()) / float64(min)
		}
		klog.V(5).InfoS("rule5 processor speed", "dom0", dom0.Hostname(), "domU", ctx.hostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Processor speed: %s/%s", dom0.Hostname(), ctx.hostname),
			Deviation: deviation,
			Level:     level,
			Payload:   IntPayload(dom0.ProcessorSpeedMHz()),
		}) {
			return false
		}
	}
	return true
}

// rule6ProcessorCores: skipped when the DomU does not require cores
// (required_cores < 0). MEDIUM when dom0 physically has fewer cores than
// required, deviation = (required-actual)/required.
func rule6ProcessorCores(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	for _, ctx := range contributingDomUs(cfg, dom0.Hostname()) {
		domU := mustDomU(c, ctx.hostname)
		required := domU.RequiredCores()
		if required < 0 {
			continue
		}
		level := AlertNone
		deviation := 0.0
		if dom0.ProcessorCores() < required {
			level = AlertMedium
			if required > 0 {
				deviation = float64(required-dom0.ProcessorCores()) / float64(required)
			}
		}
		klog.V(5).InfoS("rule6 processor cores", "dom0", dom0.Hostname(), "domU", ctx.hostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Processor cores: %s/%s", dom0.Hostname(), ctx.hostname),
			Deviation: deviation,
			Level:     level,
			Payload:   IntPayload(dom0.ProcessorCores()),
		}) {
			return false
		}
	}
	return true
}

// rule7AvailableProcessorWeight: free = dom0.cores*1024 - sum(primary
// DomU's required_cores * processor_weight). MEDIUM when free < 0.
func rule7AvailableProcessorWeight(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	total := dom0.ProcessorWeightTotal()
	allocated := 0
	for _, h := range cfg.PrimaryOn(dom0.Hostname()) {
		domU := mustDomU(c, h)
		allocated += domU.RequiredCores() * domU.ProcessorWeight()
	}
	free := total - allocated
	level := AlertNone
	if free < 0 {
		level = AlertMedium
	}
	deviation := 0.0
	if total > 0 {
		deviation = -float64(free) / float64(total)
	}
	klog.V(4).InfoS("rule7 available processor weight", "dom0", dom0.Hostname(), "free", free, "level", level)
	return e.emit(Result{
		Label:     fmt.Sprintf("Available processor weight: %s", dom0.Hostname()),
		Deviation: deviation,
		Level:     level,
		Payload:   IntPayload(free),
	})
}

// rule8RequiresHVM: CRITICAL when dom0 is the primary and does not
// support HVM for a DomU that requires it, HIGH when dom0 is only the
// secondary.
func rule8RequiresHVM(cfg *cluster.Configuration, dom0 *cluster.Dom0, e *emitter) bool {
	c := cfg.Cluster()
	for _, ctx := range contributingDomUs(cfg, dom0.Hostname()) {
		domU := mustDomU(c, ctx.hostname)
		level := AlertNone
		if domU.RequiresHVM() && !dom0.SupportsHVM() {
			if ctx.isPrimary {
				level = AlertCritical
			} else {
				level = AlertHigh
			}
		}
		deviation := 0.0
		if level != AlertNone {
			deviation = 1.0
		}
		klog.V(5).InfoS("rule8 requires HVM", "dom0", dom0.Hostname(), "domU", ctx.hostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Requires HVM: %s/%s", dom0.Hostname(), ctx.hostname),
			Deviation: deviation,
			Level:     level,
			Payload:   BoolPayload(domU.RequiresHVM()),
		}) {
			return false
		}
	}
	return true
}

// rule9AvailableDiskWeight: free = 1024 - sum(distinct DomUDisk weight
// placed, counted once per DomUDisk, regardless of how many physical
// volumes it has on this disk). MEDIUM when free < 0.
func rule9AvailableDiskWeight(cfg *cluster.Configuration, dom0 *cluster.Dom0, disk *cluster.Dom0Disk, e *emitter) bool {
	c := cfg.Cluster()
	seen := make(map[string]bool)
	allocated := 0
	for _, entry := range cfg.DiskUsage(dom0.Hostname(), disk.Device()) {
		key := entry.DomUHostname + "/" + entry.Device
		if seen[key] {
			continue
		}
		seen[key] = true
		domU := mustDomU(c, entry.DomUHostname)
		domUDisk, ok := domU.Disk(entry.Device)
		if !ok {
			panic(fmt.Sprintf("analyzer: domU %q references unknown disk %q", entry.DomUHostname, entry.Device))
		}
		allocated += domUDisk.Weight()
	}
	free := 1024 - allocated
	level := AlertNone
	if free < 0 {
		level = AlertMedium
	}
	klog.V(4).InfoS("rule9 available disk weight", "dom0", dom0.Hostname(), "disk", disk.Device(), "free", free, "level", level)
	return e.emit(Result{
		Label:     fmt.Sprintf("Available disk weight: %s/%s", dom0.Hostname(), disk.Device()),
		Deviation: -float64(free) / 1024.0,
		Level:     level,
		Payload:   IntPayload(free),
	})
}

// rule10DiskSpeed: for every DomUDisk with at least one physical volume
// on this disk, MEDIUM when the disk's speed is below the DomUDisk's
// minimum, with deviation = too-slow extents / total extents.
func rule10DiskSpeed(cfg *cluster.Configuration, dom0 *cluster.Dom0, disk *cluster.Dom0Disk, e *emitter) bool {
	c := cfg.Cluster()

	type group struct {
		domUHostname string
		device       string
		extents      int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, entry := range cfg.DiskUsage(dom0.Hostname(), disk.Device()) {
		key := entry.DomUHostname + "/" + entry.Device
		g, ok := groups[key]
		if !ok {
			g = &group{domUHostname: entry.DomUHostname, device: entry.Device}
			groups[key] = g
			order = append(order, key)
		}
		g.extents += entry.Extents
	}
	sortStrings(order)

	for _, key := range order {
		g := groups[key]
		domU := mustDomU(c, g.domUHostname)
		domUDisk, ok := domU.Disk(g.device)
		if !ok {
			panic(fmt.Sprintf("analyzer: domU %q references unknown disk %q", g.domUHostname, g.device))
		}

		level := AlertNone
		tooSlowExtents := 0
		if domUDisk.HasMinSpeed() && disk.Speed() < domUDisk.MinSpeed() {
			level = AlertMedium
			tooSlowExtents = g.extents
		}
		deviation := 0.0
		if domUDisk.Extents() > 0 {
			deviation = float64(tooSlowExtents) / float64(domUDisk.Extents())
		}
		klog.V(5).InfoS("rule10 disk speed", "dom0", dom0.Hostname(), "disk", disk.Device(), "domU", g.domUHostname, "level", level)
		if !e.emit(Result{
			Label:     fmt.Sprintf("Disk speed: %s/%s -> %s/%s", dom0.Hostname(), disk.Device(), g.domUHostname, g.device),
			Deviation: deviation,
			Level:     level,
			Payload:   IntPayload(disk.Speed()),
		}) {
			return false
		}
	}
	return true
}
