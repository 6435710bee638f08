//go:build iterfields

package testdata

import (
	"iter"
	"slices"

	"github.com/Ike-l/iter-fields"
)

type Stage int

const (
	Start Stage = iota
	End
)

var stages = func() iter.Seq[Stage] { return nil }

func makeClone() func([]int) []int { return nil }

type Bag []int

func (b Bag) Clone() Bag { return slices.Clone(b) }

var StageFields = iterfields.IterFields[Stage]()

var (
	ByVar     = iterfields.ToMap[Stage, int](stages, nil)      // want `stages is not an IterFields helper`
	ByCall    = iterfields.ToMap(StageFields, makeClone())     // want `cannot use makeClone\(\) as clone function`
	ByFunc    = iterfields.ToMap(StageFields, slices.Clone[[]int]) // ok
	ByMethod  = iterfields.ToMap(StageFields, Bag.Clone)       // ok
	ByLiteral = iterfields.ToMap(StageFields, func(b Bag) Bag { return b }) // ok
	ByLater   = iterfields.ToMap(laterFields, (func(string) string)(nil)) // ok
	ByShared  = iterfields.ToMap[Stage, []int](StageFields, nil)  // want `cannot copy \[\]int by assignment; ToMap needs a clone function`
	ByBagNil  = iterfields.ToMap[Stage, Bag](StageFields, nil)    // want `cannot copy Bag by assignment`
	ByArray   = iterfields.ToMap[Stage, [4]int](StageFields, nil) // ok
)

var laterFields = iterfields.IterFields[Stage]()
