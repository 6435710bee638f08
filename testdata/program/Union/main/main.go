//go:build iterfields

package main

import (
	"fmt"
	"maps"

	"github.com/Ike-l/iter-fields"
)

type Shape interface {
	Corners() int
}

type Triangle struct{}

type Square struct{}

type Circle struct{}

func (Triangle) Corners() int { return 3 }
func (Square) Corners() int   { return 4 }
func (Circle) Corners() int   { return 0 }

var (
	ShapeFields = iterfields.IterFields[Shape]()
	ShapeLen    = iterfields.Len[Shape]()
	ShapeTags   = iterfields.ToMap(ShapeFields, func(tags map[string]bool) map[string]bool {
		return maps.Clone(tags)
	})
)

func main() {
	for s := range ShapeFields() {
		fmt.Printf("%T %d\n", s, s.Corners())
	}
	fmt.Println(ShapeLen())

	tags := ShapeTags(map[string]bool{"flat": true})
	tags[Circle{}]["round"] = true
	fmt.Println(len(tags[Circle{}]), len(tags[Square{}]))
}
