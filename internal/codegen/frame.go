package codegen

import (
	"fmt"

	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/ssa"
)

// frame describes one function's stack layout. v0.1 codegen performs no
// register allocation: every SSA value that produces a result gets a
// permanent home for its whole lifetime, computed once up front. Ref-typed
// values (anything the collector must trace - Str, ref T) live in root-
// frame slots so the shadow-stack walk sees every live reference at every
// safepoint without the compiler needing call-site liveness analysis; this
// is the "homed in a root slot permanently" simplification a stage-0, no-
// register-allocator implementation is free to make in place of precise
// spill placement. Every other value type lives in an ordinary stack slot.
//
// All offsets are byte counts below rbp: value v's stack slot is at
// [rbp-stackSlot[v.ID]].
type frame struct {
	stackSlot  map[ssa.ID]int64
	rootSlot   map[ssa.ID]int
	rootCount  int
	localsSize int64

	// rootFrameBase is the offset below rbp of the RootFrame header's first
	// byte; the slots array follows immediately after the header.
	rootFrameBase int64
	// r12SaveOffset is where the prologue stashes the caller's r12 so the
	// epilogue can restore it with a plain mov rather than a push/pop pair;
	// folding the save into the frame keeps rsp 16-aligned across every call
	// the function body makes.
	r12SaveOffset int64
	totalSize     int64 // 16-byte-aligned total frame size
}

// rootFrameHeaderBytes is the size of the RootFrame struct's fixed fields
// (prev pointer + slot count) preceding its slots array, mirroring
// rtroot.RootFrame's shape.
const rootFrameHeaderBytes = 16

func buildFrame(fn *ssa.Func) *frame {
	fr := &frame{
		stackSlot: make(map[ssa.ID]int64),
		rootSlot:  make(map[ssa.ID]int),
	}

	var offset int64
	for _, b := range fn.Blocks {
		for _, v := range b.Values {
			if v.Type == nil {
				continue
			}
			if isRefType(v.Type) {
				fr.rootSlot[v.ID] = fr.rootCount
				fr.rootCount++
				continue
			}
			offset += slotSize(v.Type)
			fr.stackSlot[v.ID] = offset
		}
	}
	fr.localsSize = offset
	fr.r12SaveOffset = offset + rtabi.SizePtr
	fr.rootFrameBase = fr.r12SaveOffset + rootFrameHeaderBytes
	fr.totalSize = align16(fr.rootFrameBase + int64(fr.rootCount)*rtabi.SizePtr)
	return fr
}

// slotOffset returns the rbp-relative byte offset of root slot index.
func (fr *frame) slotOffset(index int) int64 {
	return fr.rootFrameBase + int64(index+1)*rtabi.SizePtr
}

// headerOffset returns the rbp-relative byte offset of the RootFrame
// struct's first field (the "prev" pointer), the address codegen passes to
// rt_root_frame_init/rt_push_roots/rt_pop_roots.
func (fr *frame) headerOffset() int64 {
	return fr.rootFrameBase
}

func align16(n int64) int64 {
	return (n + 15) &^ 15
}

// addr returns the rbp-relative memory operand holding v's value, whether
// v is homed in an ordinary stack slot or a root-frame slot - both are
// plain 8-byte memory locations from the instruction encoder's point of
// view.
func (fr *frame) addr(v *ssa.Value) string {
	if idx, ok := fr.rootSlot[v.ID]; ok {
		return rbpOperand(fr.slotOffset(idx))
	}
	return rbpOperand(fr.stackSlot[v.ID])
}

func rbpOperand(offset int64) string {
	if offset == 0 {
		return "[rbp]"
	}
	return fmt.Sprintf("[rbp-%d]", offset)
}
