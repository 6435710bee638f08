package testdata

import "github.com/Ike-l/iter-fields" // want `file must have "//go:build iterfields" constraint when importing iterfields`

type Stage int

const Start Stage = 0

var StageLen = iterfields.Len[Stage]()
