//go:build iterfields

package main

import (
	"fmt"
	"strings"

	"github.com/Ike-l/iter-fields"
)

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	blue  Color = "blue"
)

// Black is untyped, so it is not a variant of Color.
const Black = "black"

var (
	ColorFields = iterfields.IterFields[Color]()
	ColorLen    = iterfields.Len[Color]()
	ColorVotes  = iterfields.ToMap[Color, int](ColorFields, nil)
)

func main() {
	var names []string
	for c := range ColorFields() {
		names = append(names, string(c))
	}
	fmt.Println(strings.Join(names, ","), ColorLen())

	// Stop early and start over.
	for c := range ColorFields() {
		fmt.Println("first:", c)
		break
	}
	n := 0
	for range ColorFields() {
		n++
	}
	fmt.Println("again:", n)

	votes := ColorVotes(1)
	votes[Red]++
	fmt.Println(votes[Red], votes[Green], votes[blue], Black)
}
