// Package iterfields provides directives for generating helper functions over
// the variants of payload-free enums.
//
// Go has no enum keyword. An enum is declared as a named type with a set of
// constants, or as an interface implemented by a closed set of field-less
// structs. Listing every variant by hand for iteration, counting, or
// per-variant tables is boilerplate that silently rots when a variant is added.
// Iterfields derives those helpers from the declaration itself at generation
// time.
//
// To start with Iterfields, add a build constraint to files containing
// Iterfields directives:
//
//	//go:build iterfields
//
// Then assign directives to package-level variables:
//
//	// source:
//	type Stage int
//
//	const (
//		Start Stage = iota
//		Middle
//		End
//	)
//
//	var (
//		StageFields = iterfields.IterFields[Stage]()
//		StageLen    = iterfields.Len[Stage]()
//		StageMap    = iterfields.ToMap(StageFields, slices.Clone[[]string])
//	)
//
//	// generated: (simplified)
//	func StageFields() iter.Seq[Stage] {
//		return slices.Values([]Stage{Start, Middle, End})
//	}
//
//	func StageLen() uint {
//		return 3
//	}
//
//	func StageMap(seed []string) map[Stage][]string {
//		m := make(map[Stage][]string, 3)
//		for k := range StageFields() {
//			m[k] = slices.Clone[[]string](seed)
//		}
//		return m
//	}
//
// After declaring helpers, run the iterfields command. It will generate
// iterfields_gen.go for your package:
//
//	go run github.com/Ike-l/iter-fields/cmd/iterfields
//
// The variables holding directives are rewritten to functions with the same
// name, so the code calling them compiles in both builds.
//
// # Enums
//
// A basic enum is a named type whose underlying type is a basic type, such as
// int or string. Its variants are the constants of exactly that type declared
// in the same package, in declaration order. Two constants with the same value
// are rejected because every helper promises exactly one entry per variant.
// When the enum is declared in another package, its unexported constants are
// skipped because the generated code cannot refer to them. Such constants
// usually mark ranges, like literal_beg of go/token.Token.
//
// A union enum is a named interface with at least one method. Its variants are
// the struct types declared in the same package which implement the interface.
// Each of them must have no fields and must implement the interface by value.
// An unexported variant of an interface from another package is reported as
// an error, since skipping it would leave the enumeration incomplete.
// A variant carrying data cannot be enumerated, so it is reported as an error
// instead of being skipped.
//
// Anything else, for example a struct, a generic type, or an enum without any
// variant, is reported at generation time.
package iterfields

import "iter"

// IterFields directive generates a function yielding every variant of the enum
// T in declaration order:
//
//	// source:
//	var StageFields = iterfields.IterFields[Stage]()
//
//	// generated: (simplified)
//	func StageFields() iter.Seq[Stage] {
//		return slices.Values([]Stage{Start, Middle, End})
//	}
//
// Each call of the generated function returns a fresh sequence. It can be
// ranged over any number of times and stopped early.
func IterFields[T comparable]() func() iter.Seq[T] {
	panic("iterfields: not generated")
}

// Len directive generates a function returning the number of variants of the
// enum T. It always equals the number of elements yielded by the [IterFields]
// helper of the same enum:
//
//	// source:
//	var StageLen = iterfields.Len[Stage]()
//
//	// generated:
//	func StageLen() uint {
//		return 3
//	}
func Len[T comparable]() func() uint {
	panic("iterfields: not generated")
}

// ToMap directive generates a function building a map from every variant of
// the enum T to its own copy of a seed value:
//
//	// source:
//	var StageFields = iterfields.IterFields[Stage]()
//	var StageMap = iterfields.ToMap(StageFields, maps.Clone[map[string]int])
//
//	// generated: (simplified)
//	func StageMap(seed map[string]int) map[Stage]map[string]int {
//		m := make(map[Stage]map[string]int, 3)
//		for k := range StageFields() {
//			m[k] = maps.Clone[map[string]int](seed)
//		}
//		return m
//	}
//
// fields must be a variable holding an [IterFields] directive of the same enum.
// The generated map is populated by iterating it.
//
// clone copies the seed once per variant, so that mutating one entry does not
// affect another. It may be a function, a method expression, a package-level
// variable of function type, or a function literal. If clone is nil, the seed
// is copied by assignment, which is enough for values without references:
//
//	var StageCount = iterfields.ToMap[Stage, int](StageFields, nil)
//
// A nil clone is reported at generation time when V may share memory between
// copies, for example a slice, a map, a pointer or a struct holding one.
func ToMap[T comparable, V any](fields func() iter.Seq[T], clone func(V) V) func(V) map[T]V {
	panic("iterfields: not generated")
}
