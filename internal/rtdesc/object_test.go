package rtdesc

import "testing"

type leafObj struct {
	Base
	Value int64
}

func TestHeaderMarkPin(t *testing.T) {
	var h Header
	if h.Marked() || h.Pinned() {
		t.Fatal("fresh header must be unmarked and unpinned")
	}
	h.SetMark()
	if !h.Marked() {
		t.Fatal("SetMark did not set the marked bit")
	}
	h.ClearMark()
	if h.Marked() {
		t.Fatal("ClearMark did not clear the marked bit")
	}
	h.Pin()
	if !h.Pinned() {
		t.Fatal("Pin did not set the pinned bit")
	}
	// Pinned must survive ClearMark, since they are independent bits.
	h.SetMark()
	h.ClearMark()
	if !h.Pinned() {
		t.Fatal("ClearMark must not clear the pinned bit")
	}
}

func TestHeaderOfAndTypeOfNilObject(t *testing.T) {
	if HeaderOf(nil) != nil {
		t.Fatal("HeaderOf(nil) must return nil")
	}
	if TypeOf(nil) != nil {
		t.Fatal("TypeOf(nil) must return nil")
	}
}

func TestHeaderOfReturnsSameHeaderAsObj(t *testing.T) {
	o := &leafObj{Value: 42}
	typ := &TypeDesc{ID: 1, Flags: FlagLeaf, DebugName: "leafObj"}
	o.Header().Type = typ
	o.Header().Size = 24

	if HeaderOf(o).Type != typ {
		t.Fatal("HeaderOf did not return the object's own header")
	}
	if TypeOf(o) != typ {
		t.Fatal("TypeOf did not return the object's type descriptor")
	}
}
