package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/maxviazov/usagers-client/internal/view"
)

// render flattens the items into a compact string, e.g. "1 … 3 4 [5] 6 7 … 10".
func render(p view.Pagination) string {
	out := ""
	for i, it := range p.Items {
		if i > 0 {
			out += " "
		}
		switch {
		case it.Kind == view.KindEllipsis:
			out += "…"
		case it.Current:
			out += "[" + itoa(it.Number) + "]"
		default:
			out += itoa(it.Number)
		}
	}
	return out
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

func TestBuildPagination_Window(t *testing.T) {
	cases := []struct {
		name string
		page int
		tp   int
		want string
	}{
		{"first_of_ten", 1, 10, "[1] 2 3 … 10"},
		{"middle_of_ten", 5, 10, "1 … 3 4 [5] 6 7 … 10"},
		{"last_of_ten", 10, 10, "1 … 8 9 [10]"},
		{"gap_of_one_has_no_ellipsis_head", 4, 10, "1 2 3 [4] 5 6 … 10"},
		{"gap_of_one_has_no_ellipsis_tail", 7, 10, "1 … 5 6 [7] 8 9 10"},
		{"two_pages", 2, 2, "1 [2]"},
		{"five_pages_centered", 3, 5, "1 2 [3] 4 5"},
		{"six_pages_from_start", 1, 6, "[1] 2 3 … 6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := view.BuildPagination(tc.page, tc.tp, 10, tc.tp*10)
			require.True(t, p.Visible)
			assert.Equal(t, tc.want, render(p))
		})
	}
}

func TestBuildPagination_WindowInvariant(t *testing.T) {
	for tp := 2; tp <= 12; tp++ {
		for page := 1; page <= tp; page++ {
			p := view.BuildPagination(page, tp, 10, tp*10)
			nums := p.Numbers()
			require.NotEmpty(t, nums)
			assert.Equal(t, 1, nums[0], "first anchor page=%d tp=%d", page, tp)
			assert.Equal(t, tp, nums[len(nums)-1], "last anchor page=%d tp=%d", page, tp)
			assert.Contains(t, nums, page)
			// ellipsis exactly where consecutive buttons differ by more than one
			var prev *view.PageItem
			for i := range p.Items {
				it := p.Items[i]
				if it.Kind == view.KindEllipsis {
					require.NotNil(t, prev)
					next := p.Items[i+1]
					assert.Greater(t, next.Number-prev.Number, 1)
					continue
				}
				if prev != nil && p.Items[i-1].Kind == view.KindPage {
					assert.Equal(t, prev.Number+1, it.Number, "page=%d tp=%d", page, tp)
				}
				prev = &p.Items[i]
			}
		}
	}
}

func TestBuildPagination_NavAndRange(t *testing.T) {
	p := view.BuildPagination(1, 3, 10, 25)
	assert.False(t, p.Prev.Enabled)
	assert.True(t, p.Next.Enabled)
	assert.Equal(t, 2, p.Next.Page)
	assert.Equal(t, "Showing 1 to 10 of 25 usagers", p.Summary())

	p = view.BuildPagination(3, 3, 10, 25)
	assert.True(t, p.Prev.Enabled)
	assert.False(t, p.Next.Enabled)
	assert.Equal(t, 21, p.Start)
	assert.Equal(t, 25, p.End)
}

func TestBuildPagination_HiddenForSinglePage(t *testing.T) {
	for _, tp := range []int{-1, 0, 1} {
		p := view.BuildPagination(1, tp, 10, 1)
		assert.False(t, p.Visible)
		assert.Empty(t, p.Items)
	}
}

func TestSummary_Singular(t *testing.T) {
	p := view.Pagination{Start: 1, End: 1, Total: 1}
	assert.Equal(t, "Showing 1 to 1 of 1 usager", p.Summary())
}

func TestBuild_List(t *testing.T) {
	created := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	res := repository.PageResult[model.User]{
		Items: []model.User{
			{ID: 2, FirstName: "Marie", LastName: "Curie", Email: "marie@example.com", Age: 34, NiveauNatation: "Expert", CreatedAt: created},
			{ID: 1, FirstName: "Jean", LastName: "Dupont", Email: "jean@example.com"},
		},
		Page: 1, Limit: 2, Total: 3, TotalPages: 2,
	}
	l := view.Build("", res)
	require.Len(t, l.Cards, 2)
	assert.Equal(t, "Marie Curie", l.Cards[0].FullName)
	assert.Equal(t, "34", l.Cards[0].Age)
	assert.Equal(t, "9 March 2024 at 14:05", l.Cards[0].Created)
	assert.Equal(t, view.NotAvailable, l.Cards[1].Age)
	assert.Equal(t, view.NotAvailable, l.Cards[1].Niveau)
	assert.Equal(t, view.NotAvailable, l.Cards[1].Created)
	assert.True(t, l.Pagination.Visible)
	assert.Empty(t, l.Empty)
	assert.Empty(t, l.Error)
}

func TestBuild_EmptyMessages(t *testing.T) {
	empty := repository.PageResult[model.User]{Items: []model.User{}, Page: 1, Limit: 10, TotalPages: 1}
	assert.Equal(t, view.EmptyNothing, view.Build("", empty).Empty)
	assert.Equal(t, view.EmptySearch, view.Build("dupont", empty).Empty)
	assert.False(t, view.Build("dupont", empty).Pagination.Visible)
}

func TestErrorList(t *testing.T) {
	l := view.ErrorList()
	assert.Equal(t, view.LoadFailed, l.Error)
	assert.False(t, l.Pagination.Visible)
	assert.Empty(t, l.Cards)
}

func TestBuildForm(t *testing.T) {
	f := view.BuildForm(0, model.UserInput{Email: "a@b.c"})
	assert.True(t, f.Open)
	assert.Equal(t, "New usager", f.Title())
	require.Len(t, f.Fields, 5)
	assert.Equal(t, "email", f.Fields[2].Name)
	assert.Equal(t, "a@b.c", f.Fields[2].Value)
	assert.Equal(t, "Edit usager", view.BuildForm(7, model.UserInput{}).Title())
}
