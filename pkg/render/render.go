// Package render prints rows and pages for the CLI. It is the only place
// that knows how output looks; everything upstream deals in model types.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/olekukonko/tablewriter"
)

// Users renders a slice of rows as an aligned table.
func Users(w io.Writer, users []model.User) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Email", "Age"})
	for _, u := range users {
		table.Append([]string{u.ID, u.Name, u.Email, strconv.Itoa(u.Age)})
	}
	table.Render()
}

// Page renders one page with its ordinal and the offset it was fetched at.
func Page(w io.Writer, number, offset int, users []model.User) {
	fmt.Fprintf(w, "page %d (offset %d, %d rows)\n", number, offset, len(users))
	Users(w, users)
}

// User renders a single row in one line, for row-by-row streaming output.
func User(w io.Writer, u model.User) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, u.Age)
}
