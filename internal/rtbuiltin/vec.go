package rtbuiltin

import (
	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/rtalloc"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// Vec is a growable reference-typed sequence, split into a thin handle
// object (length + a reference to its backing storage) and a separate
// VecStorage object holding the element slots, exactly as
// original_source/runtime/src/vec.c splits RtVecObj/RtVecStorageObj. The
// split means growing a Vec never mutates live references to the handle:
// only the handle's Storage slot is repointed at a freshly allocated,
// larger VecStorage.
var TypeVec = &rtdesc.TypeDesc{
	ID:             0x56454301,
	Flags:          rtdesc.FlagHasRefs,
	ABIVersion:     rtabi.ABIVersion,
	AlignBytes:     rtabi.AlignPtr,
	FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8 + rtabi.SizePtr,
	DebugName:      "Vec",
}

var TypeVecStorage = &rtdesc.TypeDesc{
	ID:             0x56454302,
	Flags:          rtdesc.FlagHasRefs | rtdesc.FlagVariableSize,
	ABIVersion:     rtabi.ABIVersion,
	AlignBytes:     rtabi.AlignPtr,
	FixedSizeBytes: rtabi.ObjHeaderSizeBytes + 8,
	DebugName:      "VecStorage",
}

func init() {
	TypeVec.Trace = func(obj rtdesc.Obj, mark func(slot *rtdesc.Ref)) {
		v := obj.(*VecObj)
		mark(&v.Storage)
	}
	TypeVecStorage.Trace = func(obj rtdesc.Obj, mark func(slot *rtdesc.Ref)) {
		s := obj.(*VecStorageObj)
		for i := range s.Elems {
			mark(&s.Elems[i])
		}
	}
}

type VecObj struct {
	rtdesc.Base
	Len     int64
	Storage rtdesc.Ref // *VecStorageObj, or nil for an empty, storage-less Vec
}

type VecStorageObj struct {
	rtdesc.Base
	Elems []rtdesc.Ref
}

func newVecStorage(ts *rtroot.ThreadState, gc *rtgc.Collector, capacity int64) *VecStorageObj {
	count := checkedLen(capacity)
	s := &VecStorageObj{Elems: make([]rtdesc.Ref, count)}
	rtalloc.Alloc(ts, gc, TypeVecStorage, s, arrayTotalBytes(rtabi.SizePtr, count))
	return s
}

// VecNew allocates an empty Vec with no backing storage.
func VecNew(ts *rtroot.ThreadState, gc *rtgc.Collector) *VecObj {
	v := &VecObj{}
	rtalloc.Alloc(ts, gc, TypeVec, v, TypeVec.FixedSizeBytes)
	return v
}

func requireVec(obj rtdesc.Obj, api string) *VecObj {
	v, ok := obj.(*VecObj)
	if !ok || obj == nil {
		rtpanic.TypeMismatch(api, "Vec")
	}
	return v
}

func storageCapacity(v *VecObj) int64 {
	if v.Storage == nil {
		return 0
	}
	return int64(len(v.Storage.(*VecStorageObj).Elems))
}

// VecPush appends v to vec, growing its backing storage by amortized
// doubling (capacity == 0 ? 4 : capacity * 2), matching rt_vec_push.
func VecPush(ts *rtroot.ThreadState, gc *rtgc.Collector, obj rtdesc.Obj, v rtdesc.Ref) {
	vec := requireVec(obj, "rt_vec_push")
	cap := storageCapacity(vec)
	if vec.Len >= cap {
		newCap := cap * 2
		if newCap == 0 {
			newCap = 4
		}
		newStorage := newVecStorage(ts, gc, newCap)
		if vec.Storage != nil {
			copy(newStorage.Elems, vec.Storage.(*VecStorageObj).Elems[:vec.Len])
		}
		vec.Storage = newStorage
	}
	vec.Storage.(*VecStorageObj).Elems[vec.Len] = v
	vec.Len++
}

func VecLen(obj rtdesc.Obj) int64 {
	return requireVec(obj, "rt_vec_len").Len
}

func VecGet(obj rtdesc.Obj, index int64) rtdesc.Ref {
	vec := requireVec(obj, "rt_vec_get")
	if index < 0 || index >= vec.Len {
		rtpanic.OutOfBounds("rt_vec_get")
	}
	return vec.Storage.(*VecStorageObj).Elems[index]
}

func VecSet(obj rtdesc.Obj, index int64, v rtdesc.Ref) {
	vec := requireVec(obj, "rt_vec_set")
	if index < 0 || index >= vec.Len {
		rtpanic.OutOfBounds("rt_vec_set")
	}
	vec.Storage.(*VecStorageObj).Elems[index] = v
}
