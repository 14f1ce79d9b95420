package rtdesc

// TypeFlags mirrors the original RT_TYPE_FLAG_* bitset.
type TypeFlags uint32

const (
	// FlagHasRefs marks a type whose instances may hold outgoing references
	// the collector must trace.
	FlagHasRefs TypeFlags = 1 << iota
	// FlagVariableSize marks a type whose instances carry a trailing
	// variable-length payload (Str, Vec storage, StrBuf, arrays).
	FlagVariableSize
	// FlagLeaf marks a type that never holds outgoing references; its
	// Trace is always nil and PointerSlots always empty.
	FlagLeaf
)

// TraceFn visits every outgoing reference slot of obj, calling mark once
// per slot. It is the Go analogue of the original trace_fn(void* obj,
// void (*mark)(void** slot)) signature; the "slot" here is the address of a
// Ref-typed field rather than a raw void**, since Go has no portable way to
// take the address of an arbitrary byte offset.
type TraceFn func(obj Obj, mark func(slot *Ref))

// TypeDesc is the runtime type descriptor every object header points to. It
// corresponds byte-for-byte in spirit (not layout - Go objects are not laid
// out by hand) to the original RtType.
type TypeDesc struct {
	ID             uint32
	Flags          TypeFlags
	ABIVersion     uint32
	AlignBytes     uint32
	FixedSizeBytes uint64
	DebugName      string

	// Trace, if non-nil, takes precedence over PointerSlots - matching the
	// spec invariant that an explicit trace function always wins when both
	// are present.
	Trace TraceFn

	// PointerSlots is the fallback tracing mechanism for types with a fixed
	// set of reference-typed fields and no custom Trace: each entry returns
	// the address of one such field. This is the safe, memory-checked
	// adaptation of the original's pointer_offsets byte-offset table, which
	// cannot be expressed directly without unsafe in a language without
	// manual layout control.
	PointerSlots []func(Obj) *Ref
}

// HasRefs reports whether instances of t may hold outgoing references.
func (t *TypeDesc) HasRefs() bool {
	return t.Flags&FlagHasRefs != 0
}

// IsVariableSize reports whether instances of t carry a trailing payload
// whose length is not implied by t alone.
func (t *TypeDesc) IsVariableSize() bool {
	return t.Flags&FlagVariableSize != 0
}

// IsLeaf reports whether instances of t never hold outgoing references.
func (t *TypeDesc) IsLeaf() bool {
	return t.Flags&FlagLeaf != 0
}

// TraceRefs calls mark once for every outgoing reference slot held by obj,
// preferring obj's type's Trace function over its PointerSlots table.
func TraceRefs(obj Obj, mark func(slot *Ref)) {
	td := TypeOf(obj)
	if td == nil {
		return
	}
	if td.Trace != nil {
		td.Trace(obj, mark)
		return
	}
	for _, slotFn := range td.PointerSlots {
		mark(slotFn(obj))
	}
}
