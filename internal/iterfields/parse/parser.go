package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/Ike-l/iter-fields/internal/typeinfo"
)

// ImportPath is the import path of the directive package.
const ImportPath = "github.com/Ike-l/iter-fields"

// BuildTag is the build tag of files declaring directives.
const BuildTag = "iterfields"

func IsIterfieldsImport(path string) bool {
	// Source code from "wire/internal/wire/parse.go".
	const vendorPart = "vendor/"
	if i := strings.LastIndex(path, vendorPart); i != -1 && (i == 0 || path[i-1] == '/') {
		path = path[i+len(vendorPart):]
	}
	return path == ImportPath
}

// Parser parses an AST of the underlying package to collect helper directives
// and the enums they refer to.
type Parser struct {
	pkg   *packages.Package
	enums *typeinfo.Lookup[*Enum]
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg, enums: typeinfo.NewLookup[*Enum]()}, nil
}

// IsNil reports whether the expression is the nil literal, optionally
// converted like func([]int) []int(nil).
func (p *Parser) IsNil(expr ast.Expr) bool {
	expr = ast.Unparen(expr)

	if id, ok := expr.(*ast.Ident); ok {
		_, ok := p.pkg.TypesInfo.ObjectOf(id).(*types.Nil)
		return ok
	}

	if call, ok := expr.(*ast.CallExpr); ok {
		if len(call.Args) == 1 && !call.Ellipsis.IsValid() {
			if tv, ok := p.pkg.TypesInfo.Types[call.Fun]; ok && tv.IsType() {
				return p.IsNil(call.Args[0])
			}
		}
	}

	return false
}

// GetDirective returns the name of the directive function if the call
// expression calls one. Otherwise, it returns false.
func (p *Parser) GetDirective(call *ast.CallExpr) (string, bool) {
	callee := typeutil.Callee(p.pkg.TypesInfo, call)
	if callee == nil {
		return "", false
	}

	pkg := callee.Pkg()
	if pkg == nil {
		// Built-in functions like panic()
		return "", false
	}

	if !IsIterfieldsImport(pkg.Path()) {
		return "", false
	}

	return callee.Name(), true
}

// IterfieldsGoFiles returns the Go files that have a "//go:build iterfields"
// constraint.
func (p *Parser) IterfieldsGoFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.pkg.Syntax {
		if hasGoBuildIterfields(file) {
			files = append(files, file)
		}
	}
	return files
}

// hasGoBuildIterfields checks if the file has a build constraint mentioning
// the iterfields tag. Only comments before the package clause count.
func hasGoBuildIterfields(file *ast.File) bool {
	ok := false
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}
			expr.Eval(func(tag string) bool {
				if tag == BuildTag {
					ok = true
				}
				return true
			})
		}
	}
	return ok
}

// tailIdent extracts the rightmost [ast.Ident] from the expression.
//
//	Clone
//	^^^^^
//	slices.Clone
//	       ^^^^^
//	slices.Clone[[]int]
//	       ^^^^^
func tailIdent(expr ast.Expr) (*ast.Ident, bool) {
	expr = ast.Unparen(expr)
	switch expr := expr.(type) {
	case *ast.Ident:
		return expr, true
	case *ast.SelectorExpr:
		return tailIdent(expr.Sel)
	case *ast.IndexExpr:
		return tailIdent(expr.X)
	case *ast.IndexListExpr:
		return tailIdent(expr.X)
	}
	return nil, false
}
