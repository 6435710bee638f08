package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/Ike-l/iter-fields/internal/codefmt"
)

// Kind is the kind of helper a directive asks for.
type Kind int

const (
	// KindFields is requested by iterfields.IterFields.
	KindFields Kind = iota + 1

	// KindLen is requested by iterfields.Len.
	KindLen

	// KindToMap is requested by iterfields.ToMap.
	KindToMap
)

func (k Kind) String() string {
	switch k {
	case KindFields:
		return "IterFields"
	case KindLen:
		return "Len"
	case KindToMap:
		return "ToMap"
	}
	return "Kind(?)"
}

func kindOf(directive string) (Kind, bool) {
	switch directive {
	case "IterFields":
		return KindFields, true
	case "Len":
		return KindLen, true
	case "ToMap":
		return KindToMap, true
	}
	return 0, false
}

// Helper is a helper function requested by a directive:
//
//	var StageFields = iterfields.IterFields[Stage]()
//	    ^^^^^^^^^^^   ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	    Name          Call
//
// The directive variable is replaced by a function with the same name.
type Helper struct {
	Kind Kind
	Name *ast.Ident
	Call *ast.CallExpr
	Enum *Enum

	// Fields is the IterFields helper a ToMap helper iterates.
	Fields *Helper

	// Value is the map value type of a ToMap helper.
	Value types.Type

	// Clone is the function a ToMap helper clones the seed with. It is nil when
	// the seed is copied by assignment.
	Clone ast.Expr

	Doc     *ast.CommentGroup
	Comment *ast.CommentGroup

	pkg *packages.Package
}

// Pkg returns the package where the directive is called. Helper implements
// [codefmt.Pkger] by this method.
func (h *Helper) Pkg() *packages.Package { return h.pkg }

// Pos returns the position of the directive call. Helper implements
// [codefmt.Poser] by this method.
func (h *Helper) Pos() token.Pos { return h.Call.Pos() }

// End returns the end position of the directive call.
func (h *Helper) End() token.Pos { return h.Call.End() }

// String returns a short representation of the directive, for example
// "iterfields.ToMap[Stage, []int]".
func (h *Helper) String() string {
	if h.Kind == KindToMap {
		return codefmt.Sprintf(h, "iterfields.%s[%t, %t]", h.Kind, h.Enum.Type, h.Value)
	}
	return codefmt.Sprintf(h, "iterfields.%s[%t]", h.Kind, h.Enum.Type)
}

// ParseHelpers parses every directive assigned to a package-level variable in
// the files with the iterfields build tag. Helpers are returned in source
// order. All errors are collected instead of stopping at the first one, and
// the helpers parsed without errors are returned along with them.
func (p *Parser) ParseHelpers() ([]*Helper, error) {
	var errs error
	var helpers []*Helper
	byObj := make(map[types.Object]*Helper)

	for _, file := range p.IterfieldsGoFiles() {
		for h, err := range p.parseHelpersInFile(file) {
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			helpers = append(helpers, h)
			byObj[p.pkg.TypesInfo.Defs[h.Name]] = h
		}
	}

	// ToMap may refer to an IterFields helper declared after it, so the
	// references are resolved once every helper is known.
	for _, h := range helpers {
		if h.Kind != KindToMap {
			continue
		}
		if err := p.resolveFields(h, byObj); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	helpers = slices.DeleteFunc(helpers, func(h *Helper) bool {
		return h.Kind == KindToMap && h.Fields == nil
	})

	return helpers, errs
}

// parseHelpersInFile parses and yields helpers in the given file.
func (p *Parser) parseHelpersInFile(file *ast.File) iter.Seq2[*Helper, error] {
	return func(yield func(*Helper, error) bool) {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}

			for _, spec := range gen.Specs {
				val := spec.(*ast.ValueSpec)
				if len(val.Names) != len(val.Values) {
					// Misplaced directives are reported by Validate.
					continue
				}

				for i := range val.Values {
					call, ok := ast.Unparen(val.Values[i]).(*ast.CallExpr)
					if !ok {
						continue
					}
					directive, ok := p.GetDirective(call)
					if !ok {
						continue
					}
					kind, ok := kindOf(directive)
					if !ok {
						continue
					}

					doc := val.Doc
					if doc == nil && len(gen.Specs) == 1 {
						doc = gen.Doc
					}
					h, err := p.parseHelper(kind, val.Names[i], call, doc, val.Comment)
					if !yield(h, err) {
						return
					}
				}
			}
		}
	}
}

// parseHelper parses a [Helper] from the given AST nodes. References between
// helpers are not resolved yet.
func (p *Parser) parseHelper(kind Kind, id *ast.Ident, call *ast.CallExpr, doc, comment *ast.CommentGroup) (*Helper, error) {
	h := &Helper{
		Kind:    kind,
		Name:    id,
		Call:    call,
		Doc:     doc,
		Comment: comment,
		pkg:     p.pkg,
	}

	if id.Name == "_" {
		return h, codefmt.Errorf(p, id, "cannot assign %s helper to blank identifier", kind)
	}

	targs := p.typeArgs(call)
	if targs == nil || targs.Len() == 0 {
		panic(codefmt.Errorf(p, call, "cannot resolve type arguments of %c", call))
	}

	var errs error
	enum, err := p.ParseEnum(h, targs.At(0))
	errs = errors.Join(errs, err)
	h.Enum = enum

	if kind == KindToMap {
		h.Value = targs.At(1)
		clone, err := p.parseClone(call.Args[1])
		errs = errors.Join(errs, err)
		h.Clone = clone

		if err == nil && clone == nil && sharesMemory(h.Value) {
			err := codefmt.Errorf(p, call.Args[1], "cannot copy %t by assignment; ToMap needs a clone function", h.Value)
			errs = errors.Join(errs, err)
		}
	}

	return h, errs
}

// typeArgs returns the type arguments the directive function is instantiated
// with, whether they are explicit or inferred.
func (p *Parser) typeArgs(call *ast.CallExpr) *types.TypeList {
	id, ok := tailIdent(call.Fun)
	if !ok {
		return nil
	}
	inst, ok := p.pkg.TypesInfo.Instances[id]
	if !ok {
		return nil
	}
	return inst.TypeArgs
}

// resolveFields resolves the IterFields helper the ToMap helper refers to by
// its first argument.
func (p *Parser) resolveFields(h *Helper, byObj map[types.Object]*Helper) error {
	arg := ast.Unparen(h.Call.Args[0])

	id, ok := arg.(*ast.Ident)
	if !ok {
		return codefmt.Errorf(p, arg, "%c is not an IterFields helper", arg)
	}

	fields, ok := byObj[p.pkg.TypesInfo.Uses[id]]
	if !ok || fields.Kind != KindFields {
		return codefmt.Errorf(p, arg, "%c is not an IterFields helper", arg)
	}

	h.Fields = fields
	return nil
}

// parseClone parses the clone function of a ToMap directive. It returns nil
// for a nil function.
//
//	nil
//	slices.Clone
//	slices.Clone[[]int]
//	func(s []int) []int { return append([]int(nil), s...) }
//	Bag.Clone
func (p *Parser) parseClone(expr ast.Expr) (ast.Expr, error) {
	expr = ast.Unparen(expr)

	if p.IsNil(expr) {
		return nil, nil
	}

	if _, ok := expr.(*ast.FuncLit); ok {
		return expr, nil
	}

	id, ok := tailIdent(expr)
	if !ok {
		return nil, codefmt.Errorf(p, expr, "cannot use %c as clone function", expr)
	}

	switch obj := p.pkg.TypesInfo.ObjectOf(id).(type) {
	case *types.Func:
		return expr, nil
	case *types.Var:
		if obj.Parent() == obj.Pkg().Scope() {
			// Package-level variable of function type
			return expr, nil
		}
	}
	return nil, codefmt.Errorf(p, expr, "cannot use %c as clone function", expr)
}

// sharesMemory reports whether copies of a value of the type made by
// assignment may still refer to the same memory.
//
//	int, string, [3]int, struct{ A int }    // false
//	[]int, *T, map[K]V, chan T, func(), any // true
func sharesMemory(t types.Type) bool {
	switch t := t.Underlying().(type) {
	case *types.Basic:
		return t.Kind() == types.UnsafePointer
	case *types.Array:
		return sharesMemory(t.Elem())
	case *types.Struct:
		for f := range t.Fields() {
			if sharesMemory(f.Type()) {
				return true
			}
		}
		return false
	}
	return true
}
