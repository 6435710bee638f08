package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/Ike-l/iter-fields/internal/codefmt"
)

// Validate checks for usages outside expected paths. It collects all errors
// instead of stopping at the first error.
//
// ParseHelpers only looks at directives in the expected place, so misplaced
// directives and illegal references to helper variables are reported here.
func (p *Parser) Validate(helpers []*Helper) error {
	var errs error
	for _, file := range p.Pkg().Syntax {
		errs = errors.Join(errs, p.validateConstraint(file))
		errs = errors.Join(errs, p.validatePlacement(file))
	}
	errs = errors.Join(errs, p.validateHelperUsages(helpers))
	return errs
}

// validateConstraint checks if files importing the directive package have the
// "//go:build iterfields" constraint.
func (p *Parser) validateConstraint(file *ast.File) error {
	var iterfieldsImport *ast.ImportSpec
	for _, imp := range file.Imports {
		if IsIterfieldsImport(strings.Trim(imp.Path.Value, `"`)) {
			iterfieldsImport = imp
			break
		}
	}
	if iterfieldsImport == nil {
		return nil
	}

	if hasGoBuildIterfields(file) {
		return nil
	}

	return codefmt.Errorf(p, iterfieldsImport, `file must have "//go:build iterfields" constraint when importing iterfields`)
}

// validatePlacement checks that every directive call initializes a
// package-level variable by itself. Other calls would remain after code
// generation and panic at run time.
//
//	var StageFields = iterfields.IterFields[Stage]()     // ok
//	var a, b = iterfields.Len[Stage](), 42               // ok
//	var n = iterfields.Len[Stage]()() + 1                // error
//	func f() { _ = iterfields.Len[Stage]() }             // error
func (p *Parser) validatePlacement(file *ast.File) error {
	if !hasGoBuildIterfields(file) {
		return nil
	}

	allowed := make(map[*ast.CallExpr]struct{})
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			val := spec.(*ast.ValueSpec)
			if len(val.Names) != len(val.Values) {
				continue
			}
			for _, v := range val.Values {
				if call, ok := ast.Unparen(v).(*ast.CallExpr); ok {
					allowed[call] = struct{}{}
				}
			}
		}
	}

	var errs error
	ast.Inspect(file, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}
		directive, ok := p.GetDirective(call)
		if !ok {
			return true
		}
		if _, ok := allowed[call]; ok {
			// Arguments are checked too.
			return true
		}
		err := codefmt.Errorf(p, call, "%s directive must initialize a package-level variable", directive)
		errs = errors.Join(errs, err)
		return false
	})
	return errs
}

// validateHelperUsages checks illegal references to helper variables.
//
// Helper variables are replaced by functions with the same name at code
// generation. Calling them or passing them around keeps working, but
// assigning to them or taking their address does not compile anymore.
func (p *Parser) validateHelperUsages(helpers []*Helper) error {
	objs := make(map[types.Object]*Helper, len(helpers))
	for _, h := range helpers {
		if obj := p.pkg.TypesInfo.Defs[h.Name]; obj != nil {
			objs[obj] = h
		}
	}
	if len(objs) == 0 {
		return nil
	}

	var errs error
	for _, file := range p.Pkg().Syntax {
		astutil.Apply(file, func(c *astutil.Cursor) bool {
			id, ok := c.Node().(*ast.Ident)
			if !ok {
				return true
			}
			h, ok := objs[p.pkg.TypesInfo.Uses[id]]
			if !ok {
				return false
			}

			switch parent := c.Parent().(type) {
			case *ast.AssignStmt:
				if c.Name() == "Lhs" {
					err := codefmt.Errorf(p, id, "cannot assign to helper %q; replaced by function at code generation", h.Name.Name)
					errs = errors.Join(errs, err)
				}
			case *ast.UnaryExpr:
				if parent.Op == token.AND {
					err := codefmt.Errorf(p, id, "cannot take address of helper %q; replaced by function at code generation", h.Name.Name)
					errs = errors.Join(errs, err)
				}
			}
			return false
		}, nil)
	}
	return errs
}
