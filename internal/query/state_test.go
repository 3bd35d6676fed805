package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/usagers-client/internal/query"
)

func intPtr(v int) *int { return &v }

// onPage returns a state that believes it is on page p of tp.
func onPage(p, tp int) *query.State {
	s := query.New(10, 100)
	s.Apply(p, tp)
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := query.New(10, 100)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 10, s.Limit())
	assert.Equal(t, 1, s.TotalPages())
	assert.Empty(t, s.Search())
	assert.Nil(t, s.AgeMin())

	assert.Equal(t, 100, query.New(500, 100).Limit())
	assert.Equal(t, 1, query.New(0, 100).Limit())
}

func TestSetters_ResetPage(t *testing.T) {
	cases := []struct {
		name string
		mut  func(s *query.State)
	}{
		{"search", func(s *query.State) { s.SetSearch("dupont") }},
		{"niveau", func(s *query.State) { s.SetNiveau("Expert") }},
		{"age_min", func(s *query.State) { _ = s.SetAgeMin(intPtr(18)) }},
		{"age_max", func(s *query.State) { _ = s.SetAgeMax(intPtr(40)) }},
		{"clear", func(s *query.State) { s.ClearFilters() }},
		{"limit", func(s *query.State) { s.SetLimit(20) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := onPage(4, 10)
			tc.mut(s)
			assert.Equal(t, 1, s.Page())
			assert.Equal(t, 1, s.Query().Page)
		})
	}
}

func TestSetSearch_Trims(t *testing.T) {
	s := query.New(10, 100)
	s.SetSearch("  jean  ")
	assert.Equal(t, "jean", s.Search())
	s.SetSearch("   ")
	assert.Empty(t, s.Search())
	assert.False(t, s.Query().HasCriteria())
}

func TestAgeBounds(t *testing.T) {
	s := onPage(3, 5)
	assert.ErrorIs(t, s.SetAgeMin(intPtr(-1)), query.ErrInvalidAge)
	assert.Equal(t, 3, s.Page(), "rejected input must not reset the page")
	assert.Nil(t, s.AgeMin())

	require.NoError(t, s.SetAgeMin(intPtr(50)))
	require.NoError(t, s.SetAgeMax(intPtr(20)))
	q := s.Query()
	require.NotNil(t, q.AgeMin)
	require.NotNil(t, q.AgeMax)
	assert.Equal(t, 50, *q.AgeMin)
	assert.Equal(t, 20, *q.AgeMax, "min above max is left to the server")

	// snapshots must not alias internal state
	*q.AgeMin = 1
	assert.Equal(t, 50, *s.AgeMin())

	require.NoError(t, s.SetAgeMin(nil))
	assert.Nil(t, s.Query().AgeMin)
}

func TestParseAge(t *testing.T) {
	cases := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"0", intPtr(0), false},
		{" 42 ", intPtr(42), false},
		{"-3", nil, true},
		{"abc", nil, true},
		{"4.5", nil, true},
	}
	for _, tc := range cases {
		got, err := query.ParseAge(tc.raw)
		if tc.wantErr {
			assert.ErrorIs(t, err, query.ErrInvalidAge, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestGoTo_Bounds(t *testing.T) {
	cases := []struct {
		name   string
		tp     int
		target int
		want   bool
	}{
		{"zero", 10, 0, false},
		{"past_end", 10, 11, false},
		{"current", 10, 5, false},
		{"first", 10, 1, true},
		{"last", 10, 10, true},
		{"server_reports_zero_pages", 0, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := onPage(5, tc.tp)
			if tc.tp == 0 {
				s.Apply(1, 0)
			}
			before := s.Page()
			got := s.GoTo(tc.target)
			assert.Equal(t, tc.want, got)
			if tc.want {
				assert.Equal(t, tc.target, s.Page())
			} else {
				assert.Equal(t, before, s.Page())
			}
		})
	}
}

func TestApply_ServerIsAuthoritative(t *testing.T) {
	s := query.New(10, 100)
	s.Apply(7, 12)
	assert.Equal(t, 7, s.Page())
	assert.Equal(t, 12, s.TotalPages())

	s.Apply(0, 0)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 0, s.TotalPages())
	assert.Equal(t, 1, s.LastPage())
}

func TestSetLimit_Clamps(t *testing.T) {
	s := query.New(10, 50)
	assert.Equal(t, 50, s.SetLimit(80))
	assert.Equal(t, 1, s.SetLimit(-2))
	assert.Equal(t, 25, s.SetLimit(25))
	assert.Equal(t, 25, s.Query().Limit)
}

func TestClearFilters(t *testing.T) {
	s := query.New(10, 100)
	s.SetSearch("x")
	s.SetNiveau("Expert")
	require.NoError(t, s.SetAgeMin(intPtr(1)))
	require.NoError(t, s.SetAgeMax(intPtr(2)))
	s.ClearFilters()
	q := s.Query()
	assert.False(t, q.HasCriteria())
	assert.Equal(t, "limit=10&page=1", q.Values().Encode())
}

func TestApply_ClampsPagePastTheEnd(t *testing.T) {
	s := onPage(3, 3)

	// records were removed elsewhere; the server echoes page 3 of 2
	assert.True(t, s.Apply(3, 2))
	assert.Equal(t, 2, s.Page())
	assert.Equal(t, 2, s.Query().Page)

	assert.False(t, s.Apply(2, 2))
	assert.False(t, s.Apply(1, 0))
	assert.Equal(t, 1, s.Page())
}
