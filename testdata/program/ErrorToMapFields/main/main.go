//go:build iterfields

package main

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

func stages() iter.Seq[Stage] { return slices.Values([]Stage{Start, End}) }

var StageMap = iterfields.ToMap[Stage, int](stages, nil)

func main() {}
