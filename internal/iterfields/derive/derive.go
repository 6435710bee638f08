// Package derive writes the code of helper functions parsed from directives.
package derive

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
)

// Func is a helper function ready to be written.
type Func interface {
	// Pos returns the position of the directive the function is derived from.
	Pos() token.Pos

	// WriteDefineCode writes the function declaration including its doc
	// comment. Local names are drawn from the namespace of w.
	WriteDefineCode(w *codefmt.Writer)
}

// Build creates the [Func] for the helper. The helper must be fully parsed,
// which means [parse.Parser.ParseHelpers] returned no error.
func Build(h *parse.Helper) Func {
	if h.Enum == nil {
		panic(fmt.Sprintf("helper %s has no enum", h.Name.Name))
	}

	switch h.Kind {
	case parse.KindFields:
		return &fieldsFunc{h}
	case parse.KindLen:
		return &lenFunc{h}
	case parse.KindToMap:
		if h.Fields == nil {
			panic(fmt.Sprintf("helper %s has no fields helper", h.Name.Name))
		}
		return &toMapFunc{h}
	}
	panic(fmt.Sprintf("unknown helper kind: %s", h.Kind))
}

// writeDoc writes the doc comment of the directive variable, or its line
// comment if it has no doc. fallback is used when the variable has neither.
func writeDoc(w *codefmt.Writer, h *parse.Helper, fallback string) {
	doc := h.Doc
	if doc == nil {
		doc = h.Comment
	}
	if doc == nil {
		w.Printf("// %s\n", fallback)
		return
	}
	writeCommentGroup(w, doc)
}

func writeCommentGroup(w *codefmt.Writer, group *ast.CommentGroup) {
	for _, c := range group.List {
		w.Printf("%s\n", c.Text)
	}
}
