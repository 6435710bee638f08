package parse

import (
	"cmp"
	"errors"
	"go/token"
	"go/types"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/typeinfo"
)

// Enum is the declaration helpers are derived from: an enum type and its
// variants in declaration order.
//
// There are two shapes of enums. A basic enum is a named type with a basic
// underlying type, and its variants are the package-level constants of that
// type:
//
//	type Stage int
//	const (
//		Start Stage = iota
//		Middle
//		End
//	)
//
// A union enum is a named interface, and its variants are the field-less
// struct types implementing it in the same package:
//
//	type Shape interface{ isShape() }
//	type Circle struct{}
//	type Square struct{}
//	func (Circle) isShape() {}
//	func (Square) isShape() {}
type Enum struct {
	typeinfo.Type
	Union    bool
	Variants []Variant
}

// Len returns the number of variants.
func (e *Enum) Len() int { return len(e.Variants) }

// Variant is a member constant of a basic enum or an implementation of a union
// enum.
type Variant struct {
	// Const is set for basic enums.
	Const *types.Const

	// Impl is set for union enums.
	Impl *types.TypeName
}

// Object returns the declared object of the variant. Variant implements
// [codefmt.Objecter] by this method.
func (v Variant) Object() types.Object {
	if v.Const != nil {
		return v.Const
	}
	return v.Impl
}

func (v Variant) Name() string   { return v.Object().Name() }
func (v Variant) Pos() token.Pos { return v.Object().Pos() }

// ParseEnum reflects on the enum type t. Diagnostics are located at at, which
// is usually the directive asking for helpers. A successfully parsed enum is
// cached so that each enum is read once however many helpers ask for it.
func (p *Parser) ParseEnum(at codefmt.Poser, t types.Type) (*Enum, error) {
	if enum, ok := p.enums.Get(t); ok {
		return enum, nil
	}

	enum, err := p.parseEnum(at, typeinfo.TypeOf(t))
	if err != nil {
		return nil, err
	}
	return p.enums.GetOrCompute(t, func() *Enum { return enum }), nil
}

func (p *Parser) parseEnum(at codefmt.Poser, t typeinfo.Type) (*Enum, error) {
	if t.IsGeneric() {
		return nil, codefmt.Errorf(p, at, "cannot derive helpers for generic type %t", t)
	}
	if !t.IsNamed() || t.Named.Obj().Pkg() == nil {
		return nil, codefmt.Errorf(p, at, "cannot derive helpers for %t: must be an enum", t)
	}

	switch {
	case t.IsBasic():
		return p.parseBasicEnum(at, t)
	case t.IsInterface() && t.Interface.IsMethodSet() && t.Interface.NumMethods() != 0:
		return p.parseUnionEnum(at, t)
	}
	return nil, codefmt.Errorf(p, at, "cannot derive helpers for %t: must be an enum", t)
}

// parseBasicEnum collects the constants of t. Two constants with the same
// value are rejected because helpers promise exactly one entry per variant.
func (p *Parser) parseBasicEnum(at codefmt.Poser, t typeinfo.Type) (*Enum, error) {
	var consts []*types.Const
	scope := t.Pkg().Scope()
	for _, name := range scope.Names() {
		con, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(con.Type(), t.Type()) {
			continue
		}
		if !p.accessible(con) {
			continue
		}
		consts = append(consts, con)
	}
	slices.SortFunc(consts, func(a, b *types.Const) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})

	var errs []error
	values := linkedhashmap.New() // constant value -> first *types.Const
	for _, con := range consts {
		key := con.Val().ExactString()
		if prev, ok := values.Get(key); ok {
			errs = append(errs, codefmt.Errorf(p, at, `variant %o of %t duplicates the value of %o
	declared at %b`, con, t, prev.(*types.Const), con))
			continue
		}
		values.Put(key, con)
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	if values.Empty() {
		return nil, codefmt.Errorf(p, at, "cannot derive helpers for %t: no variants found", t)
	}

	enum := &Enum{Type: t}
	for _, con := range values.Values() {
		enum.Variants = append(enum.Variants, Variant{Const: con.(*types.Const)})
	}
	return enum, nil
}

// parseUnionEnum collects the named types implementing t in its package. A
// variant carrying data is rejected instead of being silently dropped.
func (p *Parser) parseUnionEnum(at codefmt.Poser, t typeinfo.Type) (*Enum, error) {
	var impls []*types.TypeName
	scope := t.Pkg().Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() || tn == t.Named.Obj() {
			continue
		}

		impl := typeinfo.TypeOf(tn.Type())
		if impl.IsInterface() || impl.IsGeneric() {
			continue
		}
		if !types.Implements(impl.Type(), t.Interface) && !types.Implements(impl.Ref().Type(), t.Interface) {
			continue
		}
		impls = append(impls, tn)
	}
	slices.SortFunc(impls, func(a, b *types.TypeName) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})

	var errs []error
	enum := &Enum{Type: t, Union: true}
	for _, tn := range impls {
		impl := typeinfo.TypeOf(tn.Type())
		switch {
		case !impl.IsEmptyStruct():
			errs = append(errs, codefmt.Errorf(p, at, `variant %t of %t must have no data
	declared at %b`, impl, t, tn))
		case !types.Implements(impl.Type(), t.Interface):
			errs = append(errs, codefmt.Errorf(p, at, `variant %t of %t must implement it by value
	declared at %b`, impl, t, tn))
		case !p.accessible(tn):
			errs = append(errs, codefmt.Errorf(p, at, `variant %t of %t is not exported
	declared at %b`, impl, t, tn))
		default:
			enum.Variants = append(enum.Variants, Variant{Impl: tn})
		}
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	if len(enum.Variants) == 0 {
		return nil, codefmt.Errorf(p, at, "cannot derive helpers for %t: no variants found", t)
	}
	return enum, nil
}

// accessible reports whether the generated code can refer to the object.
func (p *Parser) accessible(obj types.Object) bool {
	return obj.Exported() || obj.Pkg() == p.pkg.Types
}
