//go:build iterfields

package testdata

import "github.com/Ike-l/iter-fields"

type Stage int

const (
	Start Stage = iota
	Middle
	End
)

var (
	StageFields = iterfields.IterFields[Stage]()                     // ok
	StageLen    = iterfields.Len[Stage]()                            // ok
	StageMap    = iterfields.ToMap[Stage, int](StageFields, nil)     // ok
	StageCopy   = iterfields.ToMap(StageFields, func(n int) int { return n }) // ok
)

var _ = iterfields.Len[Stage]() // want `cannot assign Len helper to blank identifier`

var count = iterfields.Len[Stage]()() + 1 // want `Len directive must initialize a package-level variable`

func f() {
	_ = iterfields.IterFields[Stage]() // want `IterFields directive must initialize a package-level variable`
	StageLen = nil                     // want `cannot assign to helper "StageLen"`
	_ = &StageMap                      // want `cannot take address of helper "StageMap"`
	_ = StageLen() + uint(count)       // ok
}
