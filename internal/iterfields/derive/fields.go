package derive

import (
	"go/token"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// fieldsFunc yields the variants of an enum in declaration order:
//
//	func StageFields() iter.Seq[Stage] {
//		return slices.Values([]Stage{Start, Middle, End})
//	}
//
// The slice is built on each call, so the sequence is restartable and no
// caller can corrupt another's iteration.
type fieldsFunc struct{ h *parse.Helper }

func (fn *fieldsFunc) Pos() token.Pos { return fn.h.Pos() }

func (fn *fieldsFunc) WriteDefineCode(w *codefmt.Writer) {
	h := fn.h
	writeDoc(w, h, codefmt.Sprintf(h, "%s yields every variant of %t in declaration order.", h.Name.Name, h.Enum.Type))

	varIter := w.Import("iter", "iter")
	varSlices := w.Import("slices", "slices")

	w.Printf("func %s() %s.Seq[%t] {\n", h.Name.Name, varIter, h.Enum.Type)
	w.Printf("return %s.Values([]%t{\n", varSlices, h.Enum.Type)
	for _, v := range h.Enum.Variants {
		writeVariant(w, v)
		w.Printf(",\n")
	}
	w.Printf("})\n")
	w.Printf("}\n")
}

// writeVariant writes an expression evaluating to the variant.
//
//	Start       // basic enum
//	Circle{}    // union enum
func writeVariant(w *codefmt.Writer, v parse.Variant) {
	if v.Impl != nil {
		w.Printf("%o{}", v.Impl)
		return
	}
	w.Printf("%o", v.Const)
}
