//go:build iterfields

package main

import "github.com/Ike-l/iter-fields"

type Stage int

const Start Stage = 0

func main() {
	n := iterfields.Len[Stage]()
	_ = n
}
