//go:build iterfields

package main

import (
	"fmt"
	str "strings"

	"github.com/Ike-l/iter-fields"
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
)

var names = map[Weekday]string{Monday: "mon", Tuesday: "tue", Wednesday: "wed"}

// WeekdayFields yields weekdays from Monday.
var WeekdayFields = iterfields.IterFields[Weekday]()

var (
	greeting   = "week:"
	WeekdayLen = iterfields.Len[Weekday]() // number of weekdays
)

var days, total = iterfields.Len[Weekday](), 7

func main() {
	var parts []string
	for d := range WeekdayFields() {
		parts = append(parts, names[d])
	}
	fmt.Println(greeting, str.Join(parts, " "))
	fmt.Println(WeekdayLen(), days(), total)
}
