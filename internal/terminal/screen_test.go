package terminal_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/terminal"
	"github.com/maxviazov/usagers-client/internal/view"
)

func TestSanitize(t *testing.T) {
	s := terminal.New(&bytes.Buffer{}, time.Second)
	cases := []struct {
		in   string
		want string
	}{
		{"Jean Dupont", "Jean Dupont"},
		{"<b>Jean</b>", "Jean"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"<script>alert(1)</script>Marie", "Marie"},
		{"Zoé \x1b[31mred\x1b[0m", "Zoé [31mred[0m"},
		{"line\nbreak", "linebreak"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, s.Sanitize(tc.in), tc.in)
	}
}

func TestPaginationLine(t *testing.T) {
	assert.Equal(t, "« Prev  1 … 3 4 [5] 6 7 … 10  Next »", terminal.PaginationLine(view.BuildPagination(5, 10, 10, 100)))
	assert.Equal(t, "(Prev)  [1] 2 3 … 10  Next »", terminal.PaginationLine(view.BuildPagination(1, 10, 10, 100)))
	assert.Equal(t, "« Prev  1 … 8 9 [10]  (Next)", terminal.PaginationLine(view.BuildPagination(10, 10, 10, 100)))
}

func TestRenderList(t *testing.T) {
	var buf bytes.Buffer
	s := terminal.New(&buf, time.Second)
	s.RenderList(view.List{
		Cards: []view.Card{{ID: 3, FullName: "<i>Marie</i> Curie", Email: "marie@example.com", Age: "34", Niveau: "Expert", Created: "9 March 2024 at 14:05"}},
		Pagination: view.BuildPagination(1, 2, 1, 2),
	})
	out := buf.String()
	assert.Contains(t, out, "Marie Curie <marie@example.com>")
	assert.NotContains(t, out, "<i>")
	assert.Contains(t, out, "Showing 1 to 1 of 2 usagers")
	assert.Contains(t, out, "(Prev)  [1] 2  Next »")

	buf.Reset()
	s.RenderList(view.ErrorList())
	assert.Contains(t, buf.String(), view.LoadFailed)
	assert.NotContains(t, buf.String(), "Showing")

	buf.Reset()
	s.RenderList(view.List{Empty: view.EmptySearch})
	assert.Contains(t, buf.String(), view.EmptySearch)
}

func TestRenderForm(t *testing.T) {
	var buf bytes.Buffer
	s := terminal.New(&buf, time.Second)
	s.RenderForm(view.BuildForm(0, model.UserInput{FirstName: "Zoé"}))
	assert.Contains(t, buf.String(), "Zoé")
	assert.Contains(t, buf.String(), "New usager")
	buf.Reset()
	s.RenderForm(view.Form{})
	assert.Equal(t, "  (form closed)\n", buf.String())
}

func TestNotify_Expires(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := terminal.New(&buf, 5*time.Second)
	s.SetClock(func() time.Time { return now })

	s.Notify(view.MessageError, "Failed to load usagers: 502 Bad Gateway")
	assert.True(t, strings.HasPrefix(buf.String(), "[error] Failed to load usagers"))
	assert.Equal(t, "[error] Failed to load usagers: 502 Bad Gateway", s.Status())

	now = now.Add(4 * time.Second)
	assert.NotEmpty(t, s.Status())
	now = now.Add(time.Second)
	assert.Empty(t, s.Status())

	s.Notify(view.MessageSuccess, "Usager created")
	assert.Equal(t, "[ok] Usager created", s.Status())
}
