package derive

import (
	"go/token"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// lenFunc returns the number of variants of an enum. It is a constant because
// the variants are fixed at code generation:
//
//	func StageLen() uint {
//		return 3
//	}
type lenFunc struct{ h *parse.Helper }

func (fn *lenFunc) Pos() token.Pos { return fn.h.Pos() }

func (fn *lenFunc) WriteDefineCode(w *codefmt.Writer) {
	h := fn.h
	writeDoc(w, h, codefmt.Sprintf(h, "%s returns the number of variants of %t.", h.Name.Name, h.Enum.Type))

	w.Printf("func %s() uint {\n", h.Name.Name)
	w.Printf("return %d\n", h.Enum.Len())
	w.Printf("}\n")
}
