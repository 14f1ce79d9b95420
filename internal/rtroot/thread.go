package rtroot

import (
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
)

// ThreadState is the single mutator thread's runtime state: the top of its
// shadow stack and, for diagnostics, the top of its trace-frame stack. The
// runtime's concurrency model is single-threaded; one ThreadState
// is created at rt_init and lives for the process, matching
// original_source/runtime/src/runtime.c's single static RtThreadState.
type ThreadState struct {
	rootsTop  *RootFrame
	traceTop  *rtpanic.TraceFrame
}

// NewThreadState returns a freshly initialized thread state with an empty
// shadow stack, as rt_init's thread-state setup does.
func NewThreadState() *ThreadState {
	return &ThreadState{}
}

// RootsTop returns the innermost root frame, or nil if the shadow stack is
// empty.
func (ts *ThreadState) RootsTop() *RootFrame { return ts.rootsTop }

// PushTrace pushes a diagnostic trace frame, independent of the shadow
// stack, used for panic location reporting (rtpanic).
func (ts *ThreadState) PushTrace(tf *rtpanic.TraceFrame) {
	tf.SetPrev(ts.traceTop)
	ts.traceTop = tf
}

// PopTrace pops the innermost diagnostic trace frame.
func (ts *ThreadState) PopTrace() {
	if ts.traceTop != nil {
		ts.traceTop = ts.traceTop.Prev()
	}
}

// TraceTop returns the innermost diagnostic trace frame, or nil.
func (ts *ThreadState) TraceTop() *rtpanic.TraceFrame { return ts.traceTop }

// GlobalRoots is the process-wide registry of root slots outside any
// activation's shadow stack: module-level statics and boxed constants that
// must survive collections run while no frame referencing them is live.
type GlobalRoots struct {
	slots map[*rtdesc.Ref]struct{}
}

// NewGlobalRoots returns an empty global-root registry.
func NewGlobalRoots() *GlobalRoots {
	return &GlobalRoots{slots: make(map[*rtdesc.Ref]struct{})}
}

// Register adds slot to the registry. A null slot is fatal; registering the
// same slot twice is idempotent and leaves exactly one registration.
func (g *GlobalRoots) Register(slot *rtdesc.Ref) {
	if slot == nil {
		rtpanic.RootDiscipline("rt_gc_register_global_root: slot is null")
	}
	g.slots[slot] = struct{}{}
}

// Unregister removes slot from the registry. Unregistering a slot that was
// never registered is a silent no-op.
func (g *GlobalRoots) Unregister(slot *rtdesc.Ref) {
	delete(g.slots, slot)
}

// Walk calls visit once for every registered global root slot.
func (g *GlobalRoots) Walk(visit func(slot *rtdesc.Ref)) {
	for slot := range g.slots {
		visit(slot)
	}
}
