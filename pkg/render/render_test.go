package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/pkg/render"
)

var sample = []model.User{
	{ID: "3f1c9a", Name: "Ada Lovelace", Email: "ada@example.com", Age: 36},
	{ID: "7b22e0", Name: "Alan Turing", Email: "alan@example.com", Age: 41},
}

func TestUsers_RendersAllRows(t *testing.T) {
	var buf bytes.Buffer
	render.Users(&buf, sample)

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "EMAIL", "AGE", "Ada Lovelace", "alan@example.com", "36", "41"} {
		assert.Contains(t, out, want)
	}
}

func TestPage_IncludesOrdinalAndOffset(t *testing.T) {
	var buf bytes.Buffer
	render.Page(&buf, 3, 20, sample)

	out := buf.String()
	assert.Contains(t, out, "page 3 (offset 20, 2 rows)")
	assert.Contains(t, out, "Ada Lovelace")
}

func TestUser_OneRowPerLine(t *testing.T) {
	var buf bytes.Buffer
	render.User(&buf, sample[0])
	render.User(&buf, sample[1])

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "3f1c9a\tAda Lovelace\tada@example.com\t36", lines[0])
}
