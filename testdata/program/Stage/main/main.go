//go:build iterfields

package main

import (
	"fmt"
	"slices"

	"github.com/Ike-l/iter-fields"
)

type Stage int

const (
	Start Stage = iota
	Middle
	End
)

func (s Stage) String() string {
	switch s {
	case Start:
		return "Start"
	case Middle:
		return "Middle"
	case End:
		return "End"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

var (
	StageFields = iterfields.IterFields[Stage]()
	StageLen    = iterfields.Len[Stage]()
	StageMap    = iterfields.ToMap(StageFields, slices.Clone[[]string])
)

func main() {
	for s := range StageFields() {
		fmt.Println(s)
	}
	fmt.Println(StageLen())

	m := StageMap([]string{"todo"})
	m[Start][0] = "done"
	fmt.Println(len(m), m[Start], m[Middle], m[End])
}
