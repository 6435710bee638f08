package main

import "github.com/Ike-l/iter-fields"

type Stage int

const Start Stage = 0

var StageLen = iterfields.Len[Stage]()

func main() {}
