// Package parsetest type-checks in-memory sources as a package using
// iterfields directives, for tests that need a [packages.Package] without
// invoking the go command.
package parsetest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// PkgPath is the import path of loaded packages.
const PkgPath = "example.com/p"

// directives mimics the signatures of the directive package. Sequences are
// spelled out so that the package does not import iter.
const directives = `
package iterfields

func IterFields[T comparable]() func() func(func(T) bool) { panic(0) }
func Len[T comparable]() func() uint { panic(0) }
func ToMap[T comparable, V any](fields func() func(func(T) bool), clone func(V) V) func(V) map[T]V { panic(0) }
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

// Load type-checks the sources as one package. Files are named "p0.go",
// "p1.go" and so on. Imports other than the directive package are resolved
// from the standard library.
func Load(t testing.TB, srcs ...string) *packages.Package {
	t.Helper()
	fset := token.NewFileSet()

	dirFile, err := parser.ParseFile(fset, "iterfields.go", directives, 0)
	require.NoError(t, err)
	dirPkg, err := (&types.Config{}).Check(parse.ImportPath, fset, []*ast.File{dirFile}, nil)
	require.NoError(t, err)

	var files []*ast.File
	var goFiles []string
	for i, src := range srcs {
		name := fmt.Sprintf("p%d.go", i)
		file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, file)
		goFiles = append(goFiles, name)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Instances:  make(map[*ast.Ident]types.Instance),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	std := importer.ForCompiler(fset, "source", nil)
	conf := &types.Config{Importer: importerFunc(func(path string) (*types.Package, error) {
		if path == parse.ImportPath {
			return dirPkg, nil
		}
		return std.Import(path)
	})}
	pkg, err := conf.Check(PkgPath, fset, files, info)
	require.NoError(t, err)

	return &packages.Package{
		Name:      pkg.Name(),
		PkgPath:   pkg.Path(),
		GoFiles:   goFiles,
		Types:     pkg,
		Fset:      fset,
		Syntax:    files,
		TypesInfo: info,
	}
}

// NewParser loads the sources and creates a [parse.Parser] for them.
func NewParser(t testing.TB, srcs ...string) (*parse.Parser, *packages.Package) {
	t.Helper()
	pkg := Load(t, srcs...)
	p, err := parse.New(pkg)
	require.NoError(t, err)
	return p, pkg
}
