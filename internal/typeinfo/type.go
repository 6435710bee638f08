package typeinfo

import (
	"go/token"
	"go/types"
)

// Type describes the shape of a [types.Type] as far as helper derivation
// cares about it.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Named     *types.Named

	// Composite is set for slices, arrays, maps, channels and functions.
	Composite bool

	Elem *Type
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsBasic() bool     { return t.Basic != nil }
func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsNamed() bool     { return t.Named != nil }

func (t Type) Identical(u Type) bool { return types.Identical(t.T, u.T) }

// TypeOf inspects the given type and returns a new [Type].
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	case *types.TypeParam:
		return Type{T: t}
	}
	return Type{T: t, Composite: true}
}

// IsEmptyStruct reports whether the type is a struct without any field,
// including blank ones.
func (t Type) IsEmptyStruct() bool {
	return t.IsStruct() && t.Struct.NumFields() == 0
}

// Pkg returns the package where the type is defined. It returns nil if the type
// is not a named type.
func (t Type) Pkg() *types.Package {
	if !t.IsNamed() {
		return nil
	}
	return t.Named.Obj().Pkg()
}

// Pos returns the position where the type is defined. It returns token.NoPos if
// the type is not a named type.
func (t Type) Pos() token.Pos {
	if t.IsNamed() {
		return t.Named.Obj().Pos()
	}
	if t.IsPointer() {
		return t.Elem.Pos()
	}
	return token.NoPos
}

// Ref returns the pointer type of the type. For type of X, it returns type of
// *X.
func (t Type) Ref() Type {
	return TypeOf(types.NewPointer(t.T))
}

// IsGeneric reports whether the type is a type parameter or a named type
// declared with type parameters, instantiated or not.
func (t Type) IsGeneric() bool {
	switch tt := types.Unalias(t.T).(type) {
	case *types.Named:
		return tt.Origin().TypeParams().Len() != 0
	case *types.TypeParam:
		return true
	}
	return false
}
