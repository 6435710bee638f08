package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS is a set of identifiers already taken in a scope of generated code.
type NS map[string]struct{}

// NewNS creates a namespace which reserves every name declared in the scope.
func NewNS(scope *types.Scope) NS {
	ns := make(NS)
	if scope == nil {
		return ns
	}
	for _, name := range scope.Names() {
		ns.Reserve(name)
	}
	return ns
}

// Reserve marks a name as taken. It returns false if the name was already
// taken.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name returns a name derived from the given one that is free in the
// namespace, and reserves it. A numbering suffix is added on conflicts.
//
// Panics if the name is empty.
func (ns NS) Name(name string) string {
	name = NormalizeName(name)
	if ns == nil {
		return name
	}
	if token.Lookup(name).IsKeyword() {
		name += "_"
	}
	for name := range DisambiguateName(name) {
		if ok := ns.Reserve(name); ok {
			return name
		}
	}
	panic("unreachable")
}

// Clone copies the namespace so that names reserved in a function body do not
// leak into the next one.
func (ns NS) Clone() NS {
	clone := make(NS, len(ns))
	for name := range ns {
		clone[name] = struct{}{}
	}
	return clone
}

// NormalizeName turns an arbitrary string into a Go identifier in camel case.
//
//	NormalizeName("stage map") => "stageMap"
func NormalizeName(name string) string {
	if name == "" {
		panic("empty name")
	}

	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})
	if len(chunks) == 0 {
		return "_"
	}

	title := cases.Title(language.English)
	for i := 1; i < len(chunks); i++ {
		chunks[i] = title.String(chunks[i])
	}
	name = strings.Join(chunks, "")
	if '0' <= name[0] && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// DisambiguateName yields the name itself followed by numbered alternatives.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		// "answer42_2" reads better than "answer422".
		sep := ""
		if last := name[len(name)-1]; '0' <= last && last <= '9' {
			sep = "_"
		}

		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}
