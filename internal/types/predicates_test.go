package types

import (
	"testing"

	"github.com/niflheim-lang/niflheim/internal/syntax"
)

func TestIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same basic", Typ[I64], Typ[I64], true},
		{"diff basic", Typ[I64], Typ[Double], false},
		{"same array", NewArray(10, Typ[I64]), NewArray(10, Typ[I64]), true},
		{"diff array len", NewArray(10, Typ[I64]), NewArray(5, Typ[I64]), false},
		{"diff array elem", NewArray(10, Typ[I64]), NewArray(10, Typ[Double]), false},
		{"same ptr", NewPointer(Typ[I64]), NewPointer(Typ[I64]), true},
		{"diff ptr", NewPointer(Typ[I64]), NewPointer(Typ[Double]), false},
		{"same ref", NewRef(Typ[I64]), NewRef(Typ[I64]), true},
		{"diff ref", NewRef(Typ[I64]), NewRef(Typ[Double]), false},
		{"ptr vs ref", NewPointer(Typ[I64]), NewRef(Typ[I64]), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identical(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Identical(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIdenticalStruct(t *testing.T) {
	// Struct identity is by structure, not name
	fields1 := []*Var{
		NewField(syntax.Pos{}, "x", Typ[I64]),
		NewField(syntax.Pos{}, "y", Typ[Double]),
	}
	fields2 := []*Var{
		NewField(syntax.Pos{}, "x", Typ[I64]),
		NewField(syntax.Pos{}, "y", Typ[Double]),
	}
	fields3 := []*Var{
		NewField(syntax.Pos{}, "a", Typ[I64]), // Different name
		NewField(syntax.Pos{}, "b", Typ[Double]),
	}
	fields4 := []*Var{
		NewField(syntax.Pos{}, "x", Typ[I64]),
		NewField(syntax.Pos{}, "y", Typ[I64]), // Different type
	}

	s1 := NewStruct(fields1)
	s2 := NewStruct(fields2)
	s3 := NewStruct(fields3)
	s4 := NewStruct(fields4)

	if !Identical(s1, s2) {
		t.Error("Identical structs with same fields should be identical")
	}
	if Identical(s1, s3) {
		t.Error("Structs with different field names should not be identical")
	}
	if Identical(s1, s4) {
		t.Error("Structs with different field types should not be identical")
	}
}

func TestIdenticalFunc(t *testing.T) {
	// func(int) bool
	f1 := NewFunc(nil, []*Var{NewVar(syntax.Pos{}, "x", Typ[I64])}, Typ[Bool])
	f2 := NewFunc(nil, []*Var{NewVar(syntax.Pos{}, "y", Typ[I64])}, Typ[Bool]) // Different param name
	f3 := NewFunc(nil, []*Var{NewVar(syntax.Pos{}, "x", Typ[Double])}, Typ[Bool])
	f4 := NewFunc(nil, []*Var{NewVar(syntax.Pos{}, "x", Typ[I64])}, Typ[I64])

	if !Identical(f1, f2) {
		t.Error("Functions with same signature but different param names should be identical")
	}
	if Identical(f1, f3) {
		t.Error("Functions with different param types should not be identical")
	}
	if Identical(f1, f4) {
		t.Error("Functions with different result types should not be identical")
	}
}

func TestIdenticalNamed(t *testing.T) {
	// Named types are identical only if they refer to same TypeName
	obj1 := NewTypeName(syntax.Pos{}, "T", nil)
	obj2 := NewTypeName(syntax.Pos{}, "T", nil) // Different object, same name

	n1 := NewNamed(obj1, Typ[I64])
	n2 := NewNamed(obj1, Typ[I64]) // Same object
	n3 := NewNamed(obj2, Typ[I64]) // Different object

	if !Identical(n1, n2) {
		t.Error("Named types with same TypeName should be identical")
	}
	if Identical(n1, n3) {
		t.Error("Named types with different TypeName should not be identical")
	}
}

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		name string
		V, T Type
		want bool
	}{
		{"same type", Typ[I64], Typ[I64], true},
		{"diff type", Typ[I64], Typ[Double], false},
		{"untyped int to int", Typ[UntypedInt], Typ[I64], true},
		{"untyped int to float", Typ[UntypedInt], Typ[Double], true},
		{"untyped float to float", Typ[UntypedFloat], Typ[Double], true},
		{"untyped float to int", Typ[UntypedFloat], Typ[I64], false},
		{"untyped bool to bool", Typ[UntypedBool], Typ[Bool], true},
		{"untyped bool to int", Typ[UntypedBool], Typ[I64], false},
		{"untyped nil to ptr", Typ[UntypedNil], NewPointer(Typ[I64]), true},
		{"untyped nil to ref", Typ[UntypedNil], NewRef(Typ[I64]), true},
		{"untyped nil to int", Typ[UntypedNil], Typ[I64], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignableTo(tt.V, tt.T)
			if got != tt.want {
				t.Errorf("AssignableTo(%s, %s) = %v, want %v", tt.V, tt.T, got, tt.want)
			}
		})
	}
}

func TestDefaultType(t *testing.T) {
	tests := []struct {
		typ  Type
		want Type
	}{
		{Typ[UntypedInt], Typ[I64]},
		{Typ[UntypedFloat], Typ[Double]},
		{Typ[UntypedBool], Typ[Bool]},
		{Typ[UntypedString], Typ[String]},
		{Typ[I64], Typ[I64]}, // Non-untyped stays same
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := DefaultType(tt.typ)
			if !Identical(got, tt.want) {
				t.Errorf("DefaultType(%s) = %s, want %s", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsPointer(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{NewPointer(Typ[I64]), true},
		{NewRef(Typ[I64]), false},
		{Typ[I64], false},
		{NewArray(10, Typ[I64]), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := IsPointer(tt.typ)
			if got != tt.want {
				t.Errorf("IsPointer(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsRef(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{NewRef(Typ[I64]), true},
		{NewPointer(Typ[I64]), false},
		{Typ[I64], false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := IsRef(tt.typ)
			if got != tt.want {
				t.Errorf("IsRef(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{Typ[UntypedNil], true},
		{Typ[I64], false},
		{NewPointer(Typ[I64]), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := IsNil(tt.typ)
			if got != tt.want {
				t.Errorf("IsNil(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsUntypedType(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{Typ[UntypedInt], true},
		{Typ[UntypedFloat], true},
		{Typ[UntypedBool], true},
		{Typ[UntypedString], true},
		{Typ[UntypedNil], true},
		{Typ[I64], false},
		{Typ[Double], false},
		{Typ[Bool], false},
		{Typ[String], false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := IsUntypedType(tt.typ)
			if got != tt.want {
				t.Errorf("IsUntypedType(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{Typ[I64], true},
		{Typ[Double], true},
		{Typ[UntypedInt], true},
		{Typ[UntypedFloat], true},
		{Typ[Bool], false},
		{Typ[String], false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			b, ok := tt.typ.Underlying().(*Basic)
			got := ok && b.Info()&IsNumeric != 0
			if got != tt.want {
				t.Errorf("IsNumeric(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}
