//go:build iterfields

package testdata

import "github.com/Ike-l/iter-fields"

type Point struct{ X, Y int }

type Empty int

type Shape interface{ isShape() }

type Circle struct{}
type Rect struct{ W, H int }
type Dot struct{}

func (Circle) isShape() {}
func (Rect) isShape()   {}
func (*Dot) isShape()   {}

type Stage int

const (
	Start Stage = iota
	End
	Finish = End
)

type Level[T any] int

var (
	PointLen = iterfields.Len[Point]()       // want `cannot derive helpers for Point: must be an enum`
	EmptyLen = iterfields.Len[Empty]()       // want `cannot derive helpers for Empty: no variants found`
	ShapeLen = iterfields.Len[Shape]()       // want `variant Rect of Shape must have no data` `variant Dot of Shape must implement it by value`
	StageLen = iterfields.Len[Stage]()       // want `variant Finish of Stage duplicates the value of End`
	LevelLen = iterfields.Len[Level[int]]()  // want `cannot derive helpers for generic type Level\[int\]`
	IntLen   = iterfields.Len[int]()         // want `cannot derive helpers for int: must be an enum`
)
