//go:build iterfields

package main

import "github.com/Ike-l/iter-fields"

type Shape interface{ isShape() }

type Circle struct{}
type Rect struct{ W, H int }

func (Circle) isShape() {}
func (Rect) isShape()   {}

var ShapeLen = iterfields.Len[Shape]()

func main() {}
