// Package rtroot implements the shadow-stack root protocol: per-call root
// frames threaded as a linked list off a thread's state, plus a global-root
// registry for references that outlive any single frame (statics, boxed
// constants). It is grounded on original_source/runtime/src/runtime.c's
// RtRootFrame/RtThreadState/push_roots/pop_roots family - the one copy of
// that machinery the original does not duplicate.
package rtroot

import (
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
)

// RootFrame is one activation's set of root slots, threaded to the
// previous frame so the collector can walk the whole shadow stack from the
// innermost frame outward.
type RootFrame struct {
	prev  *RootFrame
	slots []rtdesc.Ref
}

// RootFrameInit gives frame slotCount root slots, all nil, and unlinks it;
// PushRoots then makes it the top of ts's shadow stack. slotCount must match
// the number of root slots the enclosing function reserved. Calling RootFrameInit twice on the same
// frame value without an intervening PopRoots is a root-discipline
// violation.
func RootFrameInit(ts *ThreadState, frame *RootFrame, slotCount int) {
	if frame == nil {
		rtpanic.RootDiscipline("rt_root_frame_init: frame is null")
	}
	if frame.slots != nil {
		rtpanic.RootDiscipline("rt_root_frame_init: frame already initialized")
	}
	frame.slots = make([]rtdesc.Ref, slotCount)
	frame.prev = nil
}

// PushRoots links frame onto ts's shadow stack as the new innermost frame.
// It must be called exactly once per frame, after RootFrameInit, before any
// safepoint in the owning activation.
func PushRoots(ts *ThreadState, frame *RootFrame) {
	if frame == nil {
		rtpanic.RootDiscipline("rt_push_roots: frame is null")
	}
	frame.prev = ts.rootsTop
	ts.rootsTop = frame
}

// PopRoots unlinks ts's innermost frame, which must be frame - shadow-stack
// discipline is strict LIFO, matching a single generated function's
// prologue/epilogue pairing. Popping anything but the current top is a
// root-discipline violation.
func PopRoots(ts *ThreadState, frame *RootFrame) {
	if ts.rootsTop != frame {
		rtpanic.RootDiscipline("rt_pop_roots: frame is not the innermost root frame")
	}
	ts.rootsTop = frame.prev
	frame.prev = nil
	frame.slots = nil
}

// SlotStore writes ref into frame's slot at index, after a bounds check.
func SlotStore(frame *RootFrame, index int, ref rtdesc.Ref) {
	if index < 0 || index >= len(frame.slots) {
		rtpanic.RootDiscipline("rt_root_slot_store: slot index out of bounds")
	}
	frame.slots[index] = ref
}

// SlotLoad reads frame's slot at index, after a bounds check.
func SlotLoad(frame *RootFrame, index int) rtdesc.Ref {
	if index < 0 || index >= len(frame.slots) {
		rtpanic.RootDiscipline("rt_root_slot_load: slot index out of bounds")
	}
	return frame.slots[index]
}

// SlotAddr returns the address of frame's slot at index, for callers (the
// collector) that need to mutate a slot found live without copying it out
// and back in.
func SlotAddr(frame *RootFrame, index int) *rtdesc.Ref {
	if index < 0 || index >= len(frame.slots) {
		rtpanic.RootDiscipline("root slot index out of bounds")
	}
	return &frame.slots[index]
}

// Walk calls visit once for every root frame on ts's shadow stack, from the
// innermost frame outward, and for every slot within each frame.
func Walk(ts *ThreadState, visit func(slot *rtdesc.Ref)) {
	for f := ts.rootsTop; f != nil; f = f.prev {
		for i := range f.slots {
			visit(&f.slots[i])
		}
	}
}
