// Package rtdesc defines the object and type-descriptor model shared by
// every heap value the runtime manages: the header every tracked object
// carries, the type-descriptor table that drives tracing, and the Obj/Ref
// vocabulary used by the root protocol (rtroot) and the collector (rtgc).
package rtdesc

// GCFlags holds per-object collector state. It corresponds to the "flags"
// word of the object header.
type GCFlags uint32

const (
	// FlagMarked is set by the collector's mark phase and cleared at the
	// start of every collection.
	FlagMarked GCFlags = 1 << iota
	// FlagPinned exempts an object from sweeping regardless of mark state.
	FlagPinned
)

// Header is the fixed portion every heap object carries. Concrete object
// types embed Base (below), which embeds Header, so Header is always the
// first thing allocated for an object - the Go-level analogue of the
// C runtime's leading RtObjHeader field.
type Header struct {
	Type  *TypeDesc
	Size  uint64
	Flags GCFlags
}

func (h *Header) Marked() bool  { return h.Flags&FlagMarked != 0 }
func (h *Header) Pinned() bool  { return h.Flags&FlagPinned != 0 }
func (h *Header) SetMark()      { h.Flags |= FlagMarked }
func (h *Header) ClearMark()    { h.Flags &^= FlagMarked }
func (h *Header) Pin()          { h.Flags |= FlagPinned }

// Obj is satisfied by every tracked heap value. The method is unexported so
// that only types embedding Base (in this package or any other, via Go's
// method-promotion rule) can implement it - the same sealed-interface idiom
// internal/types uses for its Type/Object interfaces (aType/aObject).
type Obj interface {
	gcHeader() *Header
}

// Ref is the type stored in a root slot or a tracked field: either nil (the
// null reference) or a pointer to some tracked Obj. It is an alias rather
// than a distinct type so that any Obj value can be stored in a Ref slot
// without an explicit conversion, mirroring the way the original runtime
// treats every heap pointer as a bare void*.
type Ref = Obj

// Base is embedded by every concrete object type to acquire an Obj identity
// and a Header. It plays the role of the leading RtObjHeader member in the
// original layout.
type Base struct {
	hdr Header
}

func (b *Base) gcHeader() *Header { return &b.hdr }

// Header returns the object's header for callers outside this package that
// need to inspect or mutate it (rtalloc, rtgc).
func (b *Base) Header() *Header { return &b.hdr }

// HeaderOf returns o's header, or nil if o is the null reference.
func HeaderOf(o Obj) *Header {
	if o == nil {
		return nil
	}
	return o.gcHeader()
}

// TypeOf returns o's type descriptor, or nil if o is the null reference.
func TypeOf(o Obj) *TypeDesc {
	h := HeaderOf(o)
	if h == nil {
		return nil
	}
	return h.Type
}
