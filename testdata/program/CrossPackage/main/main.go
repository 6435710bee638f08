//go:build iterfields

package main

import (
	"fmt"

	lv "example.com/CrossPackage/level"
	"github.com/Ike-l/iter-fields"
)

var (
	LevelFields = iterfields.IterFields[lv.Level]()
	LevelLen    = iterfields.Len[lv.Level]()
	LevelNotes  = iterfields.ToMap(LevelFields, lv.Notes.Clone)
)

func main() {
	for l := range LevelFields() {
		fmt.Println(l)
	}
	fmt.Println(LevelLen())

	notes := LevelNotes(lv.Notes{"checked"})
	notes[lv.Warn] = append(notes[lv.Warn], "loud")
	fmt.Println(notes[lv.Debug], notes[lv.Warn])
}
