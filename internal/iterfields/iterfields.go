package iterfieldsinternal

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"path"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/iterfields/derive"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// Iterfields generates helper code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are returned
// by [Build]. Once [Build] succeeds, [Generate] never fails.
type Iterfields struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	funcs []derive.Func
	calls map[*ast.CallExpr]struct{}
}

// New creates a new [Iterfields] for the given package. If the package does
// not satisfy the requirements, an error is returned. The package must have
// its Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Iterfields, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Iterfields{
		p:     parser,
		ns:    codefmt.NewNS(pkg.Types.Scope()),
		buf:   &buf,
		w:     codefmt.NewWriter(&buf, pkg),
		calls: make(map[*ast.CallExpr]struct{}),
	}, nil
}

// Build prepares code generation by parsing directives and the enums they
// refer to. All potential errors are returned by this method. It must be
// called before [Generate].
func (g *Iterfields) Build() error {
	helpers, errs := g.p.ParseHelpers()
	errs = errors.Join(errs, g.p.Validate(helpers))
	if errs != nil {
		return errs
	}

	for _, h := range helpers {
		g.funcs = append(g.funcs, derive.Build(h))
		g.calls[h.Call] = struct{}{}
	}
	slices.SortFunc(g.funcs, func(a, b derive.Func) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})
	return nil
}

// Generate generates helper code for the package. It must be called after
// [Build] succeeds. It returns nil if the package has no file tagged with
// "//go:build iterfields".
func (g *Iterfields) Generate() []byte {
	if len(g.p.IterfieldsGoFiles()) == 0 {
		return nil
	}
	g.writeHelperCode()
	g.mergeCode()
	return g.frameCode()
}

// writeHelperCode writes function declaration code for helpers.
func (g *Iterfields) writeHelperCode() {
	if len(g.funcs) == 0 {
		return
	}

	g.w.Printf("// iterfields: helpers\n\n")
	for _, fn := range g.funcs {
		w := g.w.WithNS(g.ns.Clone())
		fn.WriteDefineCode(w)
		g.w.Printf("\n")
	}
}

// mergeCode copies non-iterfields code from the source files that tagged with
// "//go:build iterfields". It erases directive variables to remove any
// references to the iterfields package.
func (g *Iterfields) mergeCode() {
	for _, file := range g.p.IterfieldsGoFiles() {
		name := filepath.Base(g.p.Pkg().Fset.File(file.Pos()).Name())
		first := true

		// Comments of erased directive variables become doc comments of the
		// helper functions.
		erased := make(map[*ast.CommentGroup]struct{})

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok {
				if gen.Tok == token.IMPORT {
					// Skip import declarations in files. Required imports will
					// be collected from their usage, and then rewritten as an
					// import declaration group.
					continue
				}
			}

			// Erase directive variables
			decl = astutil.Apply(decl, func(c *astutil.Cursor) bool {
				spec, ok := c.Node().(*ast.ValueSpec)
				if !ok {
					return true
				}

				// Find non-iterfields values
				var names []*ast.Ident
				var values []ast.Expr
				for i := range spec.Names {
					if i >= len(spec.Values) {
						// Enum consts may not have values
						names = append(names, spec.Names[i])
						continue
					}

					call, _ := ast.Unparen(spec.Values[i]).(*ast.CallExpr)
					if _, ok := g.calls[call]; !ok {
						names = append(names, spec.Names[i])
						values = append(values, spec.Values[i])
					}
				}

				if len(names) == len(spec.Names) {
					return false
				}
				if len(names) == 0 {
					// Input:  var ( a = iterfields.Len[Stage]() )
					// Output: var ()
					erased[spec.Doc] = struct{}{}
					erased[spec.Comment] = struct{}{}
					c.Delete()
				} else {
					// Input:  var ( a, b = iterfields.Len[Stage](), 42 )
					// Output: var ( b = 42 )
					c.Replace(&ast.ValueSpec{
						Doc:     spec.Doc,
						Names:   names,
						Type:    spec.Type,
						Values:  values,
						Comment: spec.Comment,
					})
				}
				return false
			}, nil).(ast.Decl)

			// Skip empty declarations
			if gen, ok := decl.(*ast.GenDecl); ok {
				if len(gen.Specs) == 0 {
					continue
				}
			}

			if first {
				fmt.Fprintf(g.buf, "// %s:\n\n", name)
				first = false
			}

			// Prevent import name conflicts when merging multiple files into one
			decl = codefmt.RewriteImports(g.w, decl)

			// Write rewritten declaration code
			printer.Fprint(g.buf, g.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: slices.DeleteFunc(slices.Clone(file.Comments), func(group *ast.CommentGroup) bool {
					_, ok := erased[group]
					return ok
				}),
			})
			fmt.Fprintf(g.buf, "\n\n")
		}
	}
}

func (g *Iterfields) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n\n", parse.BuildTag)
	fmt.Fprintf(&buf, "// Code generated by %s%s. DO NOT EDIT.\n", parse.ImportPath, versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", g.p.Pkg().Name)

	if imports := g.w.Imports(); len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range g.w.SortedImportNames() {
			imp := imports[alias]
			if parse.IsIterfieldsImport(imp.Path()) {
				panic("iterfields import remains")
			}

			// Package names may have been changed by another writer sharing
			// the same dependency, so an alias is written whenever the name
			// is not obvious from the path.
			if imp.HasAlias || alias != path.Base(imp.Path()) {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
