package rtbuiltin

import (
	"math"

	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/rtalloc"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// mulChecked and addChecked are the Go analogues of
// original_source/runtime/src/array.c's rt_mul_u64_checked/rt_add_u64_checked:
// array payload-size arithmetic must panic with out-of-memory rather than
// silently wrap, since a wrapped size would under-allocate and corrupt the
// heap.
func mulChecked(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		rtpanic.OutOfMemory()
	}
	return a * b
}

func addChecked(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		rtpanic.OutOfMemory()
	}
	return a + b
}

func checkedLen(n int64) uint64 {
	if n < 0 {
		rtpanic.Fail("array length must be non-negative")
	}
	return uint64(n)
}

var (
	TypeArrayI64    = &rtdesc.TypeDesc{ID: 0x41525201, Flags: rtdesc.FlagLeaf | rtdesc.FlagVariableSize, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignI64, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8, DebugName: "ArrayI64"}
	TypeArrayU64    = &rtdesc.TypeDesc{ID: 0x41525202, Flags: rtdesc.FlagLeaf | rtdesc.FlagVariableSize, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignU64, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8, DebugName: "ArrayU64"}
	TypeArrayU8     = &rtdesc.TypeDesc{ID: 0x41525203, Flags: rtdesc.FlagLeaf | rtdesc.FlagVariableSize, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignU8, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8, DebugName: "ArrayU8"}
	TypeArrayBool   = &rtdesc.TypeDesc{ID: 0x41525204, Flags: rtdesc.FlagLeaf | rtdesc.FlagVariableSize, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignBool, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8, DebugName: "ArrayBool"}
	TypeArrayDouble = &rtdesc.TypeDesc{ID: 0x41525205, Flags: rtdesc.FlagLeaf | rtdesc.FlagVariableSize, ABIVersion: rtabi.ABIVersion, AlignBytes: rtabi.AlignDouble, FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8, DebugName: "ArrayDouble"}
)

// TypeArrayRef carries FlagHasRefs so the collector traces its elements;
// its Trace function is installed in init below since it needs to close
// over the concrete element-access logic.
var TypeArrayRef = &rtdesc.TypeDesc{
	ID:             0x41525206,
	Flags:          rtdesc.FlagHasRefs | rtdesc.FlagVariableSize,
	ABIVersion:     rtabi.ABIVersion,
	AlignBytes:     rtabi.AlignPtr,
	FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8,
	DebugName:      "ArrayRef",
}

func init() {
	TypeArrayRef.Trace = func(obj rtdesc.Obj, mark func(slot *rtdesc.Ref)) {
		a := obj.(*ArrayRefObj)
		for i := range a.Elems {
			mark(&a.Elems[i])
		}
	}
}

type ArrayI64Obj struct {
	rtdesc.Base
	Elems []int64
}

type ArrayU64Obj struct {
	rtdesc.Base
	Elems []uint64
}

type ArrayU8Obj struct {
	rtdesc.Base
	Elems []byte
}

type ArrayBoolObj struct {
	rtdesc.Base
	Elems []bool
}

type ArrayDoubleObj struct {
	rtdesc.Base
	Elems []float64
}

type ArrayRefObj struct {
	rtdesc.Base
	Elems []rtdesc.Ref
}

func arrayTotalBytes(elemSize uint64, n uint64) uint64 {
	return addChecked(rtabi.ObjHeaderSizeBytes+8, mulChecked(elemSize, n))
}

func checkIndex(n int, index int64, api string) {
	if index < 0 || uint64(index) >= uint64(n) {
		rtpanic.OutOfBounds(api)
	}
}

// checkSliceRange validates a [start, end) range against an array of length
// n, matching original_source/runtime/src/array.c's rt_require_slice_range.
func checkSliceRange(n int, start, end int64, api string) {
	if start < 0 || end < start || end > int64(n) {
		rtpanic.BadSliceRange(api)
	}
}

// --- i64 ---

func ArrayI64New(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayI64Obj {
	count := checkedLen(n)
	a := &ArrayI64Obj{Elems: make([]int64, count)}
	rtalloc.Alloc(ts, gc, TypeArrayI64, a, arrayTotalBytes(rtabi.SizeI64, count))
	return a
}

func ArrayI64Get(obj rtdesc.Obj, index int64) int64 {
	a := requireArrayI64(obj, "rt_array_i64_get")
	checkIndex(len(a.Elems), index, "rt_array_i64_get")
	return a.Elems[index]
}

func ArrayI64Set(obj rtdesc.Obj, index int64, v int64) {
	a := requireArrayI64(obj, "rt_array_i64_set")
	checkIndex(len(a.Elems), index, "rt_array_i64_set")
	a.Elems[index] = v
}

// ArrayI64Slice returns a new, independent array holding the elements in
// [start, end), per original_source/runtime/src/array.c's rt_array_slice_i64.
func ArrayI64Slice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayI64Obj {
	a := requireArrayI64(obj, "rt_array_i64_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_i64_slice")
	out := ArrayI64New(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayI64(obj rtdesc.Obj, api string) *ArrayI64Obj {
	a, ok := obj.(*ArrayI64Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayI64")
	}
	return a
}

// --- u64 ---

func ArrayU64New(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayU64Obj {
	count := checkedLen(n)
	a := &ArrayU64Obj{Elems: make([]uint64, count)}
	rtalloc.Alloc(ts, gc, TypeArrayU64, a, arrayTotalBytes(rtabi.SizeU64, count))
	return a
}

func ArrayU64Get(obj rtdesc.Obj, index int64) uint64 {
	a := requireArrayU64(obj, "rt_array_u64_get")
	checkIndex(len(a.Elems), index, "rt_array_u64_get")
	return a.Elems[index]
}

func ArrayU64Set(obj rtdesc.Obj, index int64, v uint64) {
	a := requireArrayU64(obj, "rt_array_u64_set")
	checkIndex(len(a.Elems), index, "rt_array_u64_set")
	a.Elems[index] = v
}

func ArrayU64Slice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayU64Obj {
	a := requireArrayU64(obj, "rt_array_u64_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_u64_slice")
	out := ArrayU64New(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayU64(obj rtdesc.Obj, api string) *ArrayU64Obj {
	a, ok := obj.(*ArrayU64Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayU64")
	}
	return a
}

// --- u8 ---

func ArrayU8New(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayU8Obj {
	count := checkedLen(n)
	a := &ArrayU8Obj{Elems: make([]byte, count)}
	rtalloc.Alloc(ts, gc, TypeArrayU8, a, arrayTotalBytes(rtabi.SizeU8, count))
	return a
}

func ArrayU8Get(obj rtdesc.Obj, index int64) uint8 {
	a := requireArrayU8(obj, "rt_array_u8_get")
	checkIndex(len(a.Elems), index, "rt_array_u8_get")
	return a.Elems[index]
}

func ArrayU8Set(obj rtdesc.Obj, index int64, v uint8) {
	a := requireArrayU8(obj, "rt_array_u8_set")
	checkIndex(len(a.Elems), index, "rt_array_u8_set")
	a.Elems[index] = v
}

func ArrayU8Slice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayU8Obj {
	a := requireArrayU8(obj, "rt_array_u8_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_u8_slice")
	out := ArrayU8New(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayU8(obj rtdesc.Obj, api string) *ArrayU8Obj {
	a, ok := obj.(*ArrayU8Obj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayU8")
	}
	return a
}

// --- bool ---

func ArrayBoolNew(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayBoolObj {
	count := checkedLen(n)
	a := &ArrayBoolObj{Elems: make([]bool, count)}
	rtalloc.Alloc(ts, gc, TypeArrayBool, a, arrayTotalBytes(rtabi.SizeBool, count))
	return a
}

func ArrayBoolGet(obj rtdesc.Obj, index int64) bool {
	a := requireArrayBool(obj, "rt_array_bool_get")
	checkIndex(len(a.Elems), index, "rt_array_bool_get")
	return a.Elems[index]
}

func ArrayBoolSet(obj rtdesc.Obj, index int64, v bool) {
	a := requireArrayBool(obj, "rt_array_bool_set")
	checkIndex(len(a.Elems), index, "rt_array_bool_set")
	a.Elems[index] = v
}

func ArrayBoolSlice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayBoolObj {
	a := requireArrayBool(obj, "rt_array_bool_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_bool_slice")
	out := ArrayBoolNew(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayBool(obj rtdesc.Obj, api string) *ArrayBoolObj {
	a, ok := obj.(*ArrayBoolObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayBool")
	}
	return a
}

// --- double ---

func ArrayDoubleNew(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayDoubleObj {
	count := checkedLen(n)
	a := &ArrayDoubleObj{Elems: make([]float64, count)}
	rtalloc.Alloc(ts, gc, TypeArrayDouble, a, arrayTotalBytes(rtabi.SizeDouble, count))
	return a
}

func ArrayDoubleGet(obj rtdesc.Obj, index int64) float64 {
	a := requireArrayDouble(obj, "rt_array_double_get")
	checkIndex(len(a.Elems), index, "rt_array_double_get")
	return a.Elems[index]
}

func ArrayDoubleSet(obj rtdesc.Obj, index int64, v float64) {
	a := requireArrayDouble(obj, "rt_array_double_set")
	checkIndex(len(a.Elems), index, "rt_array_double_set")
	a.Elems[index] = v
}

func ArrayDoubleSlice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayDoubleObj {
	a := requireArrayDouble(obj, "rt_array_double_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_double_slice")
	out := ArrayDoubleNew(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayDouble(obj rtdesc.Obj, api string) *ArrayDoubleObj {
	a, ok := obj.(*ArrayDoubleObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayDouble")
	}
	return a
}

// --- ref ---

func ArrayRefNew(ts *rtroot.ThreadState, gc *rtgc.Collector, n int64) *ArrayRefObj {
	count := checkedLen(n)
	a := &ArrayRefObj{Elems: make([]rtdesc.Ref, count)}
	rtalloc.Alloc(ts, gc, TypeArrayRef, a, arrayTotalBytes(rtabi.SizePtr, count))
	return a
}

func ArrayRefGet(obj rtdesc.Obj, index int64) rtdesc.Ref {
	a := requireArrayRef(obj, "rt_array_ref_get")
	checkIndex(len(a.Elems), index, "rt_array_ref_get")
	return a.Elems[index]
}

func ArrayRefSet(obj rtdesc.Obj, index int64, v rtdesc.Ref) {
	a := requireArrayRef(obj, "rt_array_ref_set")
	checkIndex(len(a.Elems), index, "rt_array_ref_set")
	a.Elems[index] = v
}

func ArrayRefSlice(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, start, end int64) *ArrayRefObj {
	a := requireArrayRef(obj, "rt_array_ref_slice")
	checkSliceRange(len(a.Elems), start, end, "rt_array_ref_slice")
	out := ArrayRefNew(ts, gc, end-start)
	copy(out.Elems, a.Elems[start:end])
	return out
}

func requireArrayRef(obj rtdesc.Obj, api string) *ArrayRefObj {
	a, ok := obj.(*ArrayRefObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "ArrayRef")
	}
	return a
}

// ArrayLen returns an array's element count, regardless of element kind.
func ArrayLen(obj rtdesc.Obj) int64 {
	switch a := obj.(type) {
	case *ArrayI64Obj:
		return int64(len(a.Elems))
	case *ArrayU64Obj:
		return int64(len(a.Elems))
	case *ArrayU8Obj:
		return int64(len(a.Elems))
	case *ArrayBoolObj:
		return int64(len(a.Elems))
	case *ArrayDoubleObj:
		return int64(len(a.Elems))
	case *ArrayRefObj:
		return int64(len(a.Elems))
	default:
		rtpanic.TypeMismatch("rt_array_len", "an array type")
		return 0
	}
}
