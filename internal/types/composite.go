package types

import (
	"fmt"
	"strings"
)

// Array represents an array type [N]Elem.
type Array struct {
	typ
	len  int64
	elem Type
}

// NewArray creates a new array type with the given length and element type.
func NewArray(len int64, elem Type) *Array {
	return &Array{len: len, elem: elem}
}

// Len returns the array length.
func (a *Array) Len() int64 {
	return a.len
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	return fmt.Sprintf("[%d]%s", a.len, a.elem)
}

// Struct represents a struct type.
type Struct struct {
	typ
	fields  []*Var  // field declarations
	size    int64   // computed size (0 if not yet computed)
	align   int64   // computed alignment (0 if not yet computed)
	offsets []int64 // field offsets (nil if not yet computed)
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Var) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// Size returns the struct size in bytes.
// Must be called after layout is computed.
func (s *Struct) Size() int64 {
	return s.size
}

// Align returns the struct alignment in bytes.
// Must be called after layout is computed.
func (s *Struct) Align() int64 {
	return s.align
}

// Offset returns the offset of field i in bytes.
// Must be called after layout is computed.
func (s *Struct) Offset(i int) int64 {
	return s.offsets[i]
}

// Offsets returns all field offsets.
// Must be called after layout is computed.
func (s *Struct) Offsets() []int64 {
	return s.offsets
}

// SetLayout sets the computed layout information.
func (s *Struct) SetLayout(size, align int64, offsets []int64) {
	s.size = size
	s.align = align
	s.offsets = offsets
}

// LayoutDone reports whether layout has been computed.
func (s *Struct) LayoutDone() bool {
	return s.offsets != nil
}

// Underlying implements Type.
func (s *Struct) Underlying() Type {
	return s
}

// String implements Type.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(f.Name())
		buf.WriteString(" ")
		buf.WriteString(f.Type().String())
	}
	buf.WriteString("}")
	return buf.String()
}

// Pointer represents a pointer type *T.
// In Niflheim, pointers are stack-only and cannot escape.
type Pointer struct {
	typ
	base Type
}

// NewPointer creates a new pointer type.
func NewPointer(base Type) *Pointer {
	return &Pointer{base: base}
}

// Elem returns the base type that the pointer points to.
func (p *Pointer) Elem() Type {
	return p.base
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return "*" + p.base.String()
}

// Ref represents a GC-managed reference type ref T.
type Ref struct {
	typ
	base Type
}

// NewRef creates a new reference type.
func NewRef(base Type) *Ref {
	return &Ref{base: base}
}

// Elem returns the base type that the reference points to.
func (r *Ref) Elem() Type {
	return r.base
}

// Underlying implements Type.
func (r *Ref) Underlying() Type {
	return r
}

// String implements Type.
func (r *Ref) String() string {
	return "ref " + r.base.String()
}

// boxKinds enumerates the primitive kinds a Box may hold. Kept as a closed
// set (rather than an arbitrary Type) because each kind maps to its own
// rt_box_<kind>_{new,get} entry point pair.
type PrimKind string

const (
	PrimI64    PrimKind = "i64"
	PrimU64    PrimKind = "u64"
	PrimU8     PrimKind = "u8"
	PrimBool   PrimKind = "bool"
	PrimDouble PrimKind = "double"
)

// Box represents a boxed primitive heap type: box<Elem>. Always a GC-managed
// reference, backed by rt_box_<kind>_new/get.
type Box struct {
	typ
	kind PrimKind
}

// NewBox creates a new box type over the given primitive kind.
func NewBox(kind PrimKind) *Box {
	return &Box{kind: kind}
}

// Kind returns the boxed primitive kind.
func (b *Box) Kind() PrimKind {
	return b.kind
}

// Underlying implements Type.
func (b *Box) Underlying() Type {
	return b
}

// String implements Type.
func (b *Box) String() string {
	return "box<" + string(b.kind) + ">"
}

// Vec represents a growable heap sequence type: vec<Elem>, backed by
// rt_vec_{new,len,push,get,set}. Elements are always stored boxed (Obj),
// regardless of whether Elem is itself a primitive or reference type.
type Vec struct {
	typ
	elem Type
}

// NewVec creates a new vec type with the given element type.
func NewVec(elem Type) *Vec {
	return &Vec{elem: elem}
}

// Elem returns the vec's element type.
func (v *Vec) Elem() Type {
	return v.elem
}

// Underlying implements Type.
func (v *Vec) Underlying() Type {
	return v
}

// String implements Type.
func (v *Vec) String() string {
	return "vec<" + v.elem.String() + ">"
}

// HeapArray represents a fixed-length, heap-allocated, GC-traced array type:
// arr<Elem>, backed by rt_array_<kind>_{new,len,get,set,slice}. Distinct from
// Array ([N]Elem), which is stack-resident with its length baked into the
// type.
type HeapArray struct {
	typ
	elem Type
}

// NewHeapArray creates a new heap array type with the given element type.
func NewHeapArray(elem Type) *HeapArray {
	return &HeapArray{elem: elem}
}

// Elem returns the heap array's element type.
func (a *HeapArray) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *HeapArray) Underlying() Type {
	return a
}

// String implements Type.
func (a *HeapArray) String() string {
	return "arr<" + a.elem.String() + ">"
}

// StrBuf represents the fixed-capacity mutable byte buffer type strbuf,
// backed by rt_strbuf_*. Carries no type parameter.
type StrBuf struct {
	typ
}

// NewStrBuf creates a new strbuf type.
func NewStrBuf() *StrBuf {
	return &StrBuf{}
}

// Underlying implements Type.
func (s *StrBuf) Underlying() Type {
	return s
}

// String implements Type.
func (s *StrBuf) String() string {
	return "strbuf"
}

// Func represents a function type.
type Func struct {
	typ
	recv   *Var   // receiver (nil for non-method functions)
	params []*Var // parameters
	result Type   // return type (nil for void functions)
}

// NewFunc creates a new function type.
func NewFunc(recv *Var, params []*Var, result Type) *Func {
	return &Func{recv: recv, params: params, result: result}
}

// Recv returns the receiver, or nil if this is not a method.
func (f *Func) Recv() *Var {
	return f.recv
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type, or nil for void functions.
func (f *Func) Result() Type {
	return f.result
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("func")
	if f.recv != nil {
		buf.WriteString("(")
		buf.WriteString(f.recv.Name())
		buf.WriteString(" ")
		buf.WriteString(f.recv.Type().String())
		buf.WriteString(") ")
	}
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Name())
		buf.WriteString(" ")
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(")")
	if f.result != nil {
		buf.WriteString(" ")
		buf.WriteString(f.result.String())
	}
	return buf.String()
}
