package rtbuiltin

import (
	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/rtalloc"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// The Box family wraps a single primitive value behind a heap reference, so
// a primitive can be stored wherever the type system requires a Ref (a
// generic container's element slot, a boxed return value). Each is a leaf,
// fixed-size type; grounded on original_source/runtime/src/box.c.

var (
	TypeBoxI64 = &rtdesc.TypeDesc{ID: 0x424f5801, Flags: rtdesc.FlagLeaf, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignI64, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + rtabi.SizeI64, DebugName: "BoxI64"}
	TypeBoxU64 = &rtdesc.TypeDesc{ID: 0x424f5802, Flags: rtdesc.FlagLeaf, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignU64, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + rtabi.SizeU64, DebugName: "BoxU64"}
	TypeBoxU8 = &rtdesc.TypeDesc{ID: 0x424f5803, Flags: rtdesc.FlagLeaf, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignU8, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + rtabi.SizeU8, DebugName: "BoxU8"}
	TypeBoxBool = &rtdesc.TypeDesc{ID: 0x424f5804, Flags: rtdesc.FlagLeaf, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignBool, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + rtabi.SizeBool, DebugName: "BoxBool"}
	TypeBoxDouble = &rtdesc.TypeDesc{ID: 0x424f5805, Flags: rtdesc.FlagLeaf, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignDouble, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + rtabi.SizeDouble, DebugName: "BoxDouble"}
)

type BoxI64Obj struct {
	rtdesc.Base
	Value int64
}

type BoxU64Obj struct {
	rtdesc.Base
	Value uint64
}

type BoxU8Obj struct {
	rtdesc.Base
	Value uint8
}

type BoxBoolObj struct {
	rtdesc.Base
	Value bool
}

type BoxDoubleObj struct {
	rtdesc.Base
	Value float64
}

func BoxI64New(ts *rtroot.ThreadState, gc *rtgc.Collector, v int64) *BoxI64Obj {
	b := &BoxI64Obj{Value: v}
	rtalloc.Alloc(ts, gc, TypeBoxI64, b, TypeBoxI64.FixedSizeBytes)
	return b
}

func BoxI64Get(obj rtdesc.Obj) int64 {
	b, ok := obj.(*BoxI64Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch("rt_box_i64_get", "BoxI64")
	}
	return b.Value
}

func BoxU64New(ts *rtroot.ThreadState, gc *rtgc.Collector, v uint64) *BoxU64Obj {
	b := &BoxU64Obj{Value: v}
	rtalloc.Alloc(ts, gc, TypeBoxU64, b, TypeBoxU64.FixedSizeBytes)
	return b
}

func BoxU64Get(obj rtdesc.Obj) uint64 {
	b, ok := obj.(*BoxU64Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch("rt_box_u64_get", "BoxU64")
	}
	return b.Value
}

func BoxU8New(ts *rtroot.ThreadState, gc *rtgc.Collector, v uint8) *BoxU8Obj {
	b := &BoxU8Obj{Value: v}
	rtalloc.Alloc(ts, gc, TypeBoxU8, b, TypeBoxU8.FixedSizeBytes)
	return b
}

func BoxU8Get(obj rtdesc.Obj) uint8 {
	b, ok := obj.(*BoxU8Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch("rt_box_u8_get", "BoxU8")
	}
	return b.Value
}

func BoxBoolNew(ts *rtroot.ThreadState, gc *rtgc.Collector, v bool) *BoxBoolObj {
	b := &BoxBoolObj{Value: v}
	rtalloc.Alloc(ts, gc, TypeBoxBool, b, TypeBoxBool.FixedSizeBytes)
	return b
}

func BoxBoolGet(obj rtdesc.Obj) bool {
	b, ok := obj.(*BoxBoolObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch("rt_box_bool_get", "BoxBool")
	}
	return b.Value
}

func BoxDoubleNew(ts *rtroot.ThreadState, gc *rtgc.Collector, v float64) *BoxDoubleObj {
	b := &BoxDoubleObj{Value: v}
	rtalloc.Alloc(ts, gc, TypeBoxDouble, b, TypeBoxDouble.FixedSizeBytes)
	return b
}

func BoxDoubleGet(obj rtdesc.Obj) float64 {
	b, ok := obj.(*BoxDoubleObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch("rt_box_double_get", "BoxDouble")
	}
	return b.Value
}
