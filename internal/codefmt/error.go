package codefmt

import (
	"fmt"
	"go/token"
)

// CodeError is a diagnostic pointing at the user's source code.
type CodeError struct {
	err  error
	pos  token.Pos
	end  token.Pos
	fset *token.FileSet
}

// Unwrap returns the bare diagnostic message without the position.
func (e CodeError) Unwrap() error { return e.err }

// Pos returns the position where the problem starts. It may be invalid.
func (e CodeError) Pos() token.Pos { return e.pos }

// End returns the position where the problem ends. It may be invalid.
func (e CodeError) End() token.Pos { return e.end }

// Error implements the error interface. The message is prefixed with
// "file:line:col: " when the position is known.
func (e CodeError) Error() string {
	if e.err == nil {
		return ""
	}
	if !e.pos.IsValid() || e.fset == nil {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", FormatPosition(e.fset.Position(e.pos)), e.err.Error())
}

// Errorf formats a diagnostic located at poser. Arguments may use the verbs
// documented on [Formatter.Sprintf]. Errors must not be passed as arguments;
// a diagnostic is always a leaf.
func (f Formatter) Errorf(poser Poser, format string, args ...any) error {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("CodeError cannot wrap error")
		}
	}

	var pos, end token.Pos
	if poser != nil {
		pos = poser.Pos()
		if ender, ok := poser.(Ender); ok {
			end = ender.End()
		}
	}

	err := fmt.Errorf(format, f.wrapPrintfArgs(args)...)
	return &CodeError{err, pos, end, f.Fset}
}
