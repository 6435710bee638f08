package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Formatter renders types, objects, expressions and positions as they would
// be written in the package being generated.
type Formatter struct {
	PkgPath   string
	Fset      *token.FileSet
	TypesInfo *types.Info
}

// New creates a [Formatter] for the package. A nil package yields a formatter
// that qualifies every type.
func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset, pkg.TypesInfo}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// qf is the [types.Qualifier] used by Type and Obj.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns the source form of the type.
//
//	f.Type(<bytes.Buffer>) => "bytes.Buffer"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// Obj returns the source form that refers to the object.
//
//	f.Obj(<strconv.Itoa>) => "strconv.Itoa"
//	f.Obj(<Stage.String>) => "Stage.String"
func (f Formatter) Obj(obj types.Object) string {
	var b strings.Builder

	if fn, ok := obj.(*types.Func); ok {
		if recv := fn.Signature().Recv(); recv != nil {
			s := f.Type(recv.Type())
			if strings.HasPrefix(s, "*") {
				s = "(" + s + ")"
			}
			b.WriteString(s)
			b.WriteByte('.')
		}
	}

	if b.Len() == 0 && obj.Pkg() != nil {
		if pkg := f.qf(obj.Pkg()); pkg != "" {
			b.WriteString(pkg)
			b.WriteByte('.')
		}
	}

	b.WriteString(obj.Name())
	return b.String()
}

// Expr returns the source form of the expression.
func (f Formatter) Expr(expr ast.Expr) string {
	var b strings.Builder
	fset := f.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}
	if err := format.Node(&b, fset, expr); err != nil {
		panic(err) // go/printer supports every ast.Expr
	}
	return b.String()
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

// FormatPosition formats the position relative to the working directory.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
