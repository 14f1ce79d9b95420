package codegen

import (
	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/types"
)

// isRefType reports whether t is a GC-managed reference type - the only
// category of value homed in a root-frame slot rather than an ordinary
// stack slot.
func isRefType(t types.Type) bool {
	return types.IsGCManaged(t)
}

func isFloatType(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && (b.Kind() == types.Double || b.Kind() == types.UntypedFloat)
}

func isBoolType(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && (b.Kind() == types.Bool || b.Kind() == types.UntypedBool)
}

func isIntType(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}
	switch b.Kind() {
	case types.I64, types.U64, types.U8, types.UntypedInt:
		return true
	}
	return false
}

// elementKind returns the rtabi kind tag ("i64", "u64", "u8", "bool",
// "double", "ref") a builtin op's Aux field carries for t, used to look up
// the matching rt_array_<kind>_*/rt_box_<kind>_* entry point pair.
func elementKind(t types.Type) string {
	if t == nil {
		return ""
	}
	if isRefType(t) {
		return "ref"
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return ""
	}
	switch b.Kind() {
	case types.I64, types.UntypedInt:
		return "i64"
	case types.U64:
		return "u64"
	case types.U8:
		return "u8"
	case types.Bool, types.UntypedBool:
		return "bool"
	case types.Double, types.UntypedFloat:
		return "double"
	}
	return ""
}

// argClass returns the SysV register class codegen must marshal a value of
// type t through when passing it to a call.
func argClass(t types.Type) rtabi.ArgClass {
	if isFloatType(t) {
		return rtabi.ArgFloat
	}
	return rtabi.ArgInt
}

// slotSize returns the number of bytes a non-ref value of type t occupies
// in its home stack slot. Every scalar we support is pointer-sized or
// smaller; v0.1 codegen always reserves a full 8-byte slot, trading a
// little stack space for uniform addressing.
func slotSize(t types.Type) int64 {
	return 8
}
