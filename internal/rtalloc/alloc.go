// Package rtalloc implements the allocator contract: ask
// the collector whether a collection is warranted, obtain zeroed storage
// for the object, retry once after a forced collection on simulated
// exhaustion, and register the result with the collector's tracked set.
package rtalloc

import (
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// HostAlloc simulates the host allocator's ability to satisfy a request of
// n bytes (header + payload). Go's own allocator cannot be made to fail on
// demand from user code, so OOM is modeled through this hook: tests
// override it to force the "first attempt fails, forced collection still
// fails" path, which must stay observable. Production code leaves it at
// its default, always-succeeds value.
var HostAlloc func(n uint64) bool = func(uint64) bool { return true }

// Alloc implements rt_alloc_obj. obj must be a freshly zero-valued Go value
// of the concrete object type (e.g. &StrObj{}); Alloc fills in obj's header
// (type, size, flags) and registers it with gc's tracked set. totalBytes is
// the full object size (the fixed header contribution plus any variable
// payload), used for threshold accounting and the simulated OOM retry.
func Alloc(ts *rtroot.ThreadState, gc *rtgc.Collector, typ *rtdesc.TypeDesc, obj rtdesc.Obj, totalBytes uint64) {
	if typ == nil {
		rtpanic.Fail("rt_alloc_obj: type descriptor is null")
	}

	gc.MaybeCollect(ts, totalBytes)

	if !HostAlloc(totalBytes) {
		gc.Collect(ts)
		if !HostAlloc(totalBytes) {
			rtpanic.OutOfMemory()
		}
	}

	h := rtdesc.HeaderOf(obj)
	h.Type = typ
	h.Size = totalBytes
	h.Flags = 0

	gc.Track(obj, totalBytes)
}
