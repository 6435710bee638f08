//go:build iterfields

//go:generate go run github.com/Ike-l/iter-fields/cmd/iterfields

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Ike-l/iter-fields"
)

type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

var (
	StatusFields = iterfields.IterFields[Status]()
	StatusLen    = iterfields.Len[Status]()
	StatusToMap  = iterfields.ToMap[Status, []string](StatusFields, slices.Clone)
)

type Job struct {
	ID     int    `json:"id"`
	Status Status `json:"status"`
}

var jobs = []Job{
	{ID: 1, Status: StatusDone},
	{ID: 2, Status: StatusDoing},
	{ID: 3, Status: StatusTodo},
	{ID: 4, Status: StatusTodo},
}

func listStatuses(c echo.Context) error {
	statuses := make([]Status, 0, StatusLen())
	for s := range StatusFields() {
		statuses = append(statuses, s)
	}
	return c.JSON(http.StatusOK, statuses)
}

// board groups job IDs by status. Every status has a column, even an empty
// one.
func board(c echo.Context) error {
	columns := StatusToMap(nil)
	for _, job := range jobs {
		columns[job.Status] = append(columns[job.Status], fmt.Sprint(job.ID))
	}
	return c.JSON(http.StatusOK, columns)
}

func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET("/statuses", listStatuses)
	e.GET("/board", board)
	return e
}

func get(e *echo.Echo, path string) string {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func main() {
	e := newServer()

	// Output: ["todo","doing","done"]
	fmt.Print(get(e, "/statuses"))

	// Output: {"doing":["2"],"done":["1"],"todo":["3","4"]}
	fmt.Print(get(e, "/board"))
}
