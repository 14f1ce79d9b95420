// Package rtbuiltin implements the runtime's built-in heap types: Str, the
// Box family, primitive and reference arrays, Vec, and StrBuf. Grounded on
// original_source/runtime/src/{str,box,array,vec,strbuf}.c, adapted from
// fixed-layout C structs with trailing flexible arrays to Go structs
// embedding rtdesc.Base with an ordinary slice field for the payload.
package rtbuiltin

import (
	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/rtalloc"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// TypeStr is Str's type descriptor: a leaf, variable-size type with no
// outgoing references, matching rt_type_str_desc.
var TypeStr = &rtdesc.TypeDesc{
	ID:             0x53545201,
	Flags:          rtdesc.FlagLeaf | rtdesc.FlagVariableSize,
	ABIVersion:     rtabi.ABIVersion,
	AlignBytes:     rtabi.AlignU8,
	FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8,
	DebugName:      "Str",
}

// StrObj is an immutable byte string.
type StrObj struct {
	rtdesc.Base
	Bytes []byte
}

func requireStr(obj rtdesc.Obj, api string) *StrObj {
	if obj == nil {
		rtpanic.NullDeref(api)
	}
	s, ok := obj.(*StrObj)
	if !ok || rtdesc.TypeOf(obj) != TypeStr {
		rtpanic.TypeMismatch(api, "Str")
	}
	return s
}

// StrFromBytes allocates a new Str copying data.
func StrFromBytes(ts *rtroot.ThreadState, gc *rtgc.Collector, data []byte) *StrObj {
	s := &StrObj{Bytes: append([]byte(nil), data...)}
	total := rtabi.ObjHeaderSizeBytes + 8 + uint64(len(data))
	rtalloc.Alloc(ts, gc, TypeStr, s, total)
	return s
}

// StrFromChar allocates a new one-byte Str, per
// original_source/runtime/src/str.c's rt_str_from_char.
func StrFromChar(ts *rtroot.ThreadState, gc *rtgc.Collector, ch uint8) *StrObj {
	return StrFromBytes(ts, gc, []byte{ch})
}

// StrLen returns s's length in bytes.
func StrLen(obj rtdesc.Obj) uint64 {
	s := requireStr(obj, "rt_str_len")
	return uint64(len(s.Bytes))
}

// StrGetU8 returns the byte at index, panicking on out-of-range index.
func StrGetU8(obj rtdesc.Obj, index int64) uint8 {
	s := requireStr(obj, "rt_str_get_u8")
	if index < 0 || uint64(index) >= uint64(len(s.Bytes)) {
		rtpanic.OutOfBounds("rt_str_get_u8")
	}
	return s.Bytes[index]
}

// StrBytes returns obj's underlying bytes for output, panicking if obj is
// not a Str.
func StrBytes(obj rtdesc.Obj) []byte {
	return requireStr(obj, "rt_println_str").Bytes
}

// StrSlice returns a new independent Str holding the bytes in
// [start, end), per original_source/runtime/src/str.c's rt_str_slice.
func StrSlice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *StrObj {
	s := requireStr(obj, "rt_str_slice")
	n := int64(len(s.Bytes))
	if start < 0 || end < start || end > n {
		rtpanic.BadSliceRange("rt_str_slice")
	}
	return StrFromBytes(ts, gc, s.Bytes[start:end])
}
