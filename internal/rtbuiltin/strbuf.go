package rtbuiltin

import (
	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/rtalloc"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// StrBuf is a fixed-capacity mutable byte buffer, laid out with its bytes
// inline in the object rather than behind a second tracked object - the
// resolution of the open question about divergent strbuf.c layouts
// recorded in SPEC_FULL.md. It is a leaf type: bytes, not references.
var TypeStrBuf = &rtdesc.TypeDesc{
	ID:             0x53424601,
	Flags:          rtdesc.FlagLeaf | rtdesc.FlagVariableSize,
	ABIVersion:     rtabi.ABIVersion,
	AlignBytes:     rtabi.AlignU8,
	FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 16,
	DebugName:      "StrBuf",
}

type StrBufObj struct {
	rtdesc.Base
	Len   uint64
	Bytes []byte
}

func requireStrBuf(obj rtdesc.Obj, api string) *StrBufObj {
	sb, ok := obj.(*StrBufObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "StrBuf")
	}
	return sb
}

// StrBufNew allocates a zero-filled buffer of the given capacity.
func StrBufNew(ts *rtroot.ThreadState, gc *rtgc.Collector, capacity int64) *StrBufObj {
	if capacity < 0 {
		rtpanic.Fail("rt_strbuf_new: capacity must be non-negative")
	}
	cap64 := uint64(capacity)
	sb := &StrBufObj{Bytes: make([]byte, cap64)}
	total := addChecked(rtabi.ObjHeaderSizeBytes+16, cap64)
	rtalloc.Alloc(ts, gc, TypeStrBuf, sb, total)
	return sb
}

// StrBufFromStr allocates a buffer pre-filled with str's bytes, with
// capacity equal to its length.
func StrBufFromStr(ts *rtroot.ThreadState, gc *rtgc.Collector, str rtdesc.Obj) *StrBufObj {
	s := requireStr(str, "rt_strbuf_from_str")
	sb := StrBufNew(ts, gc, int64(len(s.Bytes)))
	copy(sb.Bytes, s.Bytes)
	sb.Len = uint64(len(s.Bytes))
	return sb
}

// StrBufToStr copies buf's in-use bytes (the first buf.Len of them) into a
// freshly allocated, immutable Str.
func StrBufToStr(ts *rtroot.ThreadState, gc *rtgc.Collector, buf rtdesc.Obj) *StrObj {
	sb := requireStrBuf(buf, "rt_strbuf_to_str")
	return StrFromBytes(ts, gc, sb.Bytes[:sb.Len])
}

func StrBufLen(obj rtdesc.Obj) uint64 {
	return requireStrBuf(obj, "rt_strbuf_len").Len
}

func StrBufGetU8(obj rtdesc.Obj, index int64) uint8 {
	sb := requireStrBuf(obj, "rt_strbuf_get_u8")
	if index < 0 || uint64(index) >= sb.Len {
		rtpanic.OutOfBounds("rt_strbuf_get_u8")
	}
	return sb.Bytes[index]
}

func StrBufSetU8(obj rtdesc.Obj, index int64, value uint64) {
	sb := requireStrBuf(obj, "rt_strbuf_set_u8")
	if index < 0 || uint64(index) >= sb.Len {
		rtpanic.OutOfBounds("rt_strbuf_set_u8")
	}
	if value > 255 {
		rtpanic.Fail("rt_strbuf_set_u8: value out of range")
	}
	sb.Bytes[index] = uint8(value)
}
