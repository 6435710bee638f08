package codefmt

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger    interface{ Pkg() *packages.Package }
	Poser    interface{ Pos() token.Pos }
	Ender    interface{ End() token.Pos }
	Exprer   interface{ Expr() ast.Expr }
	Objecter interface{ Object() types.Object }
	Typer    interface{ Type() types.Type }
)

func (f Formatter) wrapPrintfArgs(args []any) []any {
	wrapped := make([]any, len(args))
	for i, arg := range args {
		switch arg.(type) {
		case token.Pos, token.Position, ast.Expr, types.Object, types.Type:
			wrapped[i] = formatArg{arg, f}
		case Poser, Exprer, Objecter, Typer:
			wrapped[i] = formatArg{arg, f}
		default:
			wrapped[i] = arg
		}
	}
	return wrapped
}

type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) object() types.Object {
	switch x := f.x.(type) {
	case types.Object:
		return x
	case Objecter:
		return x.Object()
	}
	if named, ok := types.Unalias(f.typ()).(*types.Named); ok {
		return named.Obj()
	}
	return nil
}

func (f formatArg) expr() ast.Expr {
	switch x := f.x.(type) {
	case ast.Expr:
		return x
	case Exprer:
		return x.Expr()
	}
	return nil
}

func (f formatArg) typ() types.Type {
	switch x := f.x.(type) {
	case types.Type:
		return x
	case Typer:
		return x.Type()
	case types.Object:
		return x.Type()
	case Objecter:
		if obj := x.Object(); obj != nil {
			return obj.Type()
		}
	}
	if expr := f.expr(); expr != nil && f.fmt.TypesInfo != nil {
		return f.fmt.TypesInfo.TypeOf(expr)
	}
	return nil
}

func (f formatArg) position() *token.Position {
	if f.fmt.Fset == nil {
		return nil
	}
	switch x := f.x.(type) {
	case token.Position:
		return &x
	case token.Pos:
		p := f.fmt.Fset.Position(x)
		return &p
	case Poser:
		p := f.fmt.Fset.Position(x.Pos())
		return &p
	}
	if obj := f.object(); obj != nil {
		p := f.fmt.Fset.Position(obj.Pos())
		return &p
	}
	return nil
}

// Format implements [fmt.Formatter].
//
//	%o: object, e.g. "strconv.Itoa"
//	%t: type, e.g. "bytes.Buffer"
//	%c: expression in code form
//	%b: position in file:line:col form
//
// Other verbs fall back to the fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 'o':
		obj := f.object()
		if obj == nil {
			fmt.Fprintf(s, "[%%o cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(f.fmt.Obj(obj)))

	case 't':
		typ := f.typ()
		if typ == nil {
			fmt.Fprintf(s, "[%%t cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(f.fmt.Type(typ)))

	case 'c':
		expr := f.expr()
		if expr == nil {
			fmt.Fprintf(s, "[%%c cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(f.fmt.Expr(expr)))

	case 'b':
		pos := f.position()
		if pos == nil {
			fmt.Fprintf(s, "[%%b cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(FormatPosition(*pos)))

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
	}
}

// Sprintf is like [fmt.Sprintf] with the extra verbs of [formatArg.Format].
func (f Formatter) Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, f.wrapPrintfArgs(args)...)
}

// Fprintf is like [fmt.Fprintf] with the extra verbs of [formatArg.Format].
func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, f.wrapPrintfArgs(args)...)
}
