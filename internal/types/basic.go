package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	// Concrete primitive types. I64/U64/U8/Bool/Double/Unit never occupy a
	// root slot; String is a Basic by kind but is GC-managed (see isRefType
	// in internal/codegen), matching the way rt_str_* objects are Obj-typed
	// even though they carry no fields of their own.
	Bool
	I64
	U64
	U8
	Double
	Unit
	String

	// Untyped basic types (for constant expressions, before defaulting)
	UntypedBool
	UntypedInt
	UntypedFloat
	UntypedString
	UntypedNil
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsBoolean BasicInfo = 1 << iota
	IsInteger
	IsUnsigned
	IsFloat
	IsString
	IsUntyped
	IsNumeric = IsInteger | IsFloat
)

// Basic represents a basic type: bool, i64, u64, u8, double, unit, string,
// and the untyped variants constant expressions carry before defaulting.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid:       nil,
	Bool:          {kind: Bool, info: IsBoolean, name: "bool"},
	I64:           {kind: I64, info: IsInteger | IsNumeric, name: "i64"},
	U64:           {kind: U64, info: IsInteger | IsUnsigned | IsNumeric, name: "u64"},
	U8:            {kind: U8, info: IsInteger | IsUnsigned | IsNumeric, name: "u8"},
	Double:        {kind: Double, info: IsFloat | IsNumeric, name: "double"},
	Unit:          {kind: Unit, info: 0, name: "unit"},
	String:        {kind: String, info: IsString, name: "string"},
	UntypedBool:   {kind: UntypedBool, info: IsBoolean | IsUntyped, name: "untyped bool"},
	UntypedInt:    {kind: UntypedInt, info: IsInteger | IsNumeric | IsUntyped, name: "untyped int"},
	UntypedFloat:  {kind: UntypedFloat, info: IsFloat | IsNumeric | IsUntyped, name: "untyped float"},
	UntypedString: {kind: UntypedString, info: IsString | IsUntyped, name: "untyped string"},
	UntypedNil:    {kind: UntypedNil, info: IsUntyped, name: "untyped nil"},
}
