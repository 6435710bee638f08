//go:build iterfields

package main

import "github.com/Ike-l/iter-fields"

type Stage int

const (
	Start Stage = iota
	Middle
	End
	Last = End
)

var StageFields = iterfields.IterFields[Stage]()

func main() {}
