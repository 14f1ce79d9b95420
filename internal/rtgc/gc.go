// Package rtgc implements the stop-the-world mark-sweep collector over the
// tracked-object set: clear marks, mark from the global-root registry and
// every mutator's shadow stack, sweep everything left unmarked (unless
// pinned), then retune the next collection threshold. Grounded on
// original_source/runtime/src/gc.c.
package rtgc

import (
	"math"

	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// MinThreshold and GrowthFactor are the collector's two tuning constants.
// They are package vars, not consts, so tests can override them the way
// original_source/runtime/src/gc.c's RT_GC_MIN_THRESHOLD_BYTES and
// RT_GC_GROWTH_NUM/DEN are compile-time constants there but are exercised
// here as overridable state for deterministic threshold tests.
var (
	MinThreshold uint64 = 64 * 1024
	GrowthFactor uint64 = 2
)

// Stats mirrors rt_gc_get_stats's output fields.
type Stats struct {
	AllocatedBytes      uint64
	LiveBytes           uint64
	TrackedObjectCount  uint64
	NextGCThreshold     uint64
	CollectionsRun      uint64
}

// Collector owns the tracked-object set and the byte/object counters the
// allocator consults before every allocation. A production reimplementation
// is free to back the tracked set
// with a hash set rather than a flat list; Go's native map gives that for
// free.
type Collector struct {
	globals *rtroot.GlobalRoots
	tracked map[rtdesc.Obj]struct{}

	allocatedBytes     uint64
	trackedObjectCount uint64
	nextGCThreshold    uint64
	collectionsRun     uint64
}

// New returns a collector with an empty tracked set and the initial
// threshold set to MinThreshold.
func New(globals *rtroot.GlobalRoots) *Collector {
	return &Collector{
		globals:         globals,
		tracked:         make(map[rtdesc.Obj]struct{}),
		nextGCThreshold: MinThreshold,
	}
}

// Track registers obj, freshly allocated with sizeBytes total (header +
// payload), as a tracked object. Called by rtalloc once per allocation.
func (c *Collector) Track(obj rtdesc.Obj, sizeBytes uint64) {
	c.tracked[obj] = struct{}{}
	c.allocatedBytes = saturatingAdd(c.allocatedBytes, sizeBytes)
	c.trackedObjectCount = saturatingAdd64(c.trackedObjectCount, 1)
}

// MaybeCollect runs a collection if allocating upcomingBytes more would
// cross nextGCThreshold. Called unconditionally by rtalloc.Alloc before
// every allocation, per the allocator contract and the Open Question
// resolution recorded in SPEC_FULL.md.
func (c *Collector) MaybeCollect(ts *rtroot.ThreadState, upcomingBytes uint64) {
	if saturatingAdd(c.allocatedBytes, upcomingBytes) >= c.nextGCThreshold {
		c.Collect(ts)
	}
}

// Collect runs one full stop-the-world mark-sweep cycle: clear every
// tracked object's mark bit, mark everything reachable from the global-root
// registry and ts's shadow stack, sweep every unmarked, unpinned object out
// of the tracked set, then retune nextGCThreshold from the live-byte count.
func (c *Collector) Collect(ts *rtroot.ThreadState) {
	c.clearMarks()
	c.markRoots(ts)
	c.sweep()
	c.retune()
	c.collectionsRun++
}

func (c *Collector) clearMarks() {
	for obj := range c.tracked {
		rtdesc.HeaderOf(obj).ClearMark()
	}
}

func (c *Collector) markRoots(ts *rtroot.ThreadState) {
	c.globals.Walk(func(slot *rtdesc.Ref) {
		c.markSlot(slot)
	})
	rtroot.Walk(ts, func(slot *rtdesc.Ref) {
		c.markSlot(slot)
	})
}

// markSlot marks the object slot points to (if any) and recurses through
// its outgoing references, unless it is already marked. Objects reachable
// via a slot that is not a member of the tracked set (a stack-local value
// that was never passed through rtalloc.Alloc) are silently ignored,
// matching the original's "ignore non-member pointers" defensiveness.
func (c *Collector) markSlot(slot *rtdesc.Ref) {
	if slot == nil {
		return
	}
	obj := *slot
	c.markObj(obj)
}

func (c *Collector) markObj(obj rtdesc.Obj) {
	if obj == nil {
		return
	}
	if _, tracked := c.tracked[obj]; !tracked {
		return
	}
	h := rtdesc.HeaderOf(obj)
	if h.Marked() {
		return
	}
	h.SetMark()
	rtdesc.TraceRefs(obj, func(slot *rtdesc.Ref) {
		if slot == nil {
			return
		}
		c.markObj(*slot)
	})
}

func (c *Collector) sweep() {
	var live uint64
	for obj := range c.tracked {
		h := rtdesc.HeaderOf(obj)
		if !h.Marked() && !h.Pinned() {
			delete(c.tracked, obj)
			continue
		}
		h.ClearMark()
		live = saturatingAdd(live, h.Size)
	}
	c.allocatedBytes = live
	c.trackedObjectCount = uint64(len(c.tracked))
}

// retune recomputes nextGCThreshold from the surviving live-byte total, per
// next = max(MinThreshold, live * GrowthFactor).
func (c *Collector) retune() {
	scaled := saturatingMul(c.allocatedBytes, GrowthFactor)
	if scaled < MinThreshold {
		scaled = MinThreshold
	}
	c.nextGCThreshold = scaled
}

// Stats returns a snapshot of the collector's counters.
func (c *Collector) Stats() Stats {
	return Stats{
		AllocatedBytes:     c.allocatedBytes,
		LiveBytes:          c.allocatedBytes,
		TrackedObjectCount: c.trackedObjectCount,
		NextGCThreshold:    c.nextGCThreshold,
		CollectionsRun:     c.collectionsRun,
	}
}

// Reset clears all collector state back to its initial, post-New values.
// Exercised by tests that need a clean slate between scenarios.
func (c *Collector) Reset() {
	c.tracked = make(map[rtdesc.Obj]struct{})
	c.allocatedBytes = 0
	c.trackedObjectCount = 0
	c.nextGCThreshold = MinThreshold
	c.collectionsRun = 0
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func saturatingAdd64(a, b uint64) uint64 { return saturatingAdd(a, b) }

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}
