//go:build iterfields

package main

import "github.com/Ike-l/iter-fields"

type Point struct{ X, Y int }

var PointFields = iterfields.IterFields[Point]()

func main() {}
