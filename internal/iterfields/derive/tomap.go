package derive

import (
	"go/ast"
	"go/token"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// toMapFunc builds a map from every variant of an enum to its own copy of a
// seed value. Variants are visited through the IterFields helper:
//
//	func StageMap(seed []int) map[Stage][]int {
//		m := make(map[Stage][]int, 3)
//		for k := range StageFields() {
//			m[k] = slices.Clone(seed)
//		}
//		return m
//	}
//
// Without a clone function, the seed is copied by assignment.
type toMapFunc struct{ h *parse.Helper }

func (fn *toMapFunc) Pos() token.Pos { return fn.h.Pos() }

func (fn *toMapFunc) WriteDefineCode(w *codefmt.Writer) {
	h := fn.h
	writeDoc(w, h, codefmt.Sprintf(h, "%s maps every variant of %t to a copy of seed.", h.Name.Name, h.Enum.Type))

	varSeed := w.Name("seed")
	varM := w.Name("m")
	varK := w.Name("k")

	w.Printf("func %s(%s %t) map[%t]%t {\n", h.Name.Name, varSeed, h.Value, h.Enum.Type, h.Value)

	var clone ast.Expr
	if h.Clone != nil {
		clone = codefmt.RewriteImports(w, h.Clone)
	}
	if _, ok := clone.(*ast.FuncLit); ok {
		varClone := w.Name("clone")
		w.Printf("%s := %c\n", varClone, clone)
		clone = ast.NewIdent(varClone)
	}

	w.Printf("%s := make(map[%t]%t, %d)\n", varM, h.Enum.Type, h.Value, h.Enum.Len())
	w.Printf("for %s := range %s() {\n", varK, h.Fields.Name.Name)
	if clone == nil {
		w.Printf("%s[%s] = %s\n", varM, varK, varSeed)
	} else {
		w.Printf("%s[%s] = %c(%s)\n", varM, varK, clone, varSeed)
	}
	w.Printf("}\n")
	w.Printf("return %s\n", varM)
	w.Printf("}\n")
}
