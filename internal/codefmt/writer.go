package codefmt

import (
	"go/ast"
	"go/types"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer writes generated code for a package. Packages referred to by the
// printed types, objects and expressions are collected as imports.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	ns      NS
}

// NewWriter creates a new [Writer] without a namespace. Use [Writer.WithNS] to
// draw local names.
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes formatted code. See [Formatter.Fprintf] for the verbs.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	w.importArgs(args...)
	return w.fmt.Fprintf(w.w, format, args...)
}

// Name returns a free local name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// WithNS copies the writer with another namespace. Imports are shared.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		pkg:     w.pkg,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      ns,
	}
}

type Import struct {
	// The package to import.
	*types.Package

	// HasAlias indicates that the import needs an explicit name.
	HasAlias bool
}

// Imports returns the collected imports keyed by their local names.
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// SortedImportNames returns the local names of the collected imports in
// order.
func (w *Writer) SortedImportNames() []string {
	return slices.Sorted(maps.Keys(w.imports))
}

// importAST records packages referred to by identifiers in the node.
func (w *Writer) importAST(node ast.Node) {
	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			w.importType(w.pkg.TypesInfo.TypeOf(id))
			w.importObj(w.pkg.TypesInfo.ObjectOf(id))
		}
		return true
	})
}

// importType records packages of every named type the type is composed of.
func (w *Writer) importType(typ types.Type) {
	switch typ := types.Unalias(typ).(type) {
	case *types.Pointer:
		w.importType(typ.Elem())
	case *types.Slice:
		w.importType(typ.Elem())
	case *types.Array:
		w.importType(typ.Elem())
	case *types.Chan:
		w.importType(typ.Elem())
	case *types.Map:
		w.importType(typ.Key())
		w.importType(typ.Elem())
	case *types.Signature:
		for v := range typ.Params().Variables() {
			w.importType(v.Type())
		}
		for v := range typ.Results().Variables() {
			w.importType(v.Type())
		}
	case *types.Named:
		w.importObj(typ.Obj())
		for arg := range typ.TypeArgs().Types() {
			w.importType(arg)
		}
	}
}

// importObj records the package where the object is declared.
func (w *Writer) importObj(obj types.Object) {
	if obj == nil {
		return
	}
	if _, ok := obj.(*types.PkgName); ok {
		return
	}

	pkg := obj.Pkg()
	if pkg == nil || w.pkg.PkgPath == pkg.Path() {
		// Built-in or local
		return
	}
	if obj.Parent() != nil && obj.Parent() != pkg.Scope() {
		// Local to a function; never referred to with a qualifier.
		return
	}

	for alias, imp := range w.imports {
		if imp.Path() == pkg.Path() {
			pkg.SetName(alias)
			return
		}
	}

	for name := range DisambiguateName(pkg.Name()) {
		if _, ok := w.imports[name]; !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkg.Name()}
			// The formatter qualifies with the package name, so it must be the
			// local import name from now on.
			pkg.SetName(name)
			return
		}
	}
}

// Import adds an import of the package path and returns its local name. The
// name differs from the requested one when it conflicts with a package-level
// declaration or another import.
//
//	slicesName := w.Import("slices", "slices")
//	w.Printf("%s.Values(s)", slicesName)
func (w *Writer) Import(path, name string) string {
	var pkgName string
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			pkgName = imp.Name()
			break
		}
	}
	if pkgName == "" {
		pkgName = name
	}
	if name == "" {
		name = pkgName
	}

	for alias, imp := range w.imports {
		if imp.Path() == path {
			return alias
		}
	}

	pkg := types.NewPackage(path, name)
	for name := range DisambiguateName(name) {
		if _, ok := w.imports[name]; !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkgName}
			pkg.SetName(name)
			return name
		}
	}

	panic("unreachable")
}

func (w *Writer) importArgs(args ...any) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case ast.Expr:
			w.importAST(arg)
		case types.Object:
			w.importObj(arg)
		case types.Type:
			w.importType(arg)

		case Exprer:
			w.importAST(arg.Expr())
		case Objecter:
			w.importObj(arg.Object())
		case Typer:
			w.importType(arg.Type())
		}
	}
}

// RewriteImports rewrites package qualifiers in the node to the local import
// names of the writer. Identifiers of other packages that are used without a
// qualifier, e.g. through a dot import, become qualified.
func RewriteImports[T ast.Node](w *Writer, node T) T {
	return astutil.Apply(node, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {
		case *ast.Ident:
			obj := w.pkg.TypesInfo.ObjectOf(node)
			if obj == nil {
				return false
			}

			pkg := obj.Pkg()
			if pkg == nil || pkg.Path() == w.pkg.PkgPath || obj.Parent() != pkg.Scope() {
				return true
			}

			name := w.Import(pkg.Path(), pkg.Name())
			c.Replace(&ast.SelectorExpr{
				X:   &ast.Ident{NamePos: node.NamePos, Name: name},
				Sel: &ast.Ident{NamePos: node.NamePos, Name: node.Name},
			})
			return false

		case *ast.SelectorExpr:
			pkgIdent, ok := node.X.(*ast.Ident)
			if !ok {
				return true
			}

			pkgName, ok := w.pkg.TypesInfo.ObjectOf(pkgIdent).(*types.PkgName)
			if !ok {
				// Field or method selection
				return true
			}

			pkg := pkgName.Imported()
			name := w.Import(pkg.Path(), pkg.Name())
			c.Replace(&ast.SelectorExpr{
				X:   &ast.Ident{NamePos: pkgIdent.NamePos, Name: name},
				Sel: &ast.Ident{NamePos: node.Sel.NamePos, Name: node.Sel.Name},
			})
			return false
		}
		return true
	}, nil).(T)
}
