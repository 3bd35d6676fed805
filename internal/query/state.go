// Package query holds the list criteria of a session. Every filter or search mutation goes
// through a setter that resets the page to 1, so a request can never combine new criteria
// with a stale page number.
package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/maxviazov/usagers-client/internal/repository"
)

// ErrInvalidAge is returned for age bounds that are not non-negative integers.
var ErrInvalidAge = errors.New("age must be a non-negative integer")

// State is the mutable query state. It is not safe for concurrent use; the controller
// guards it.
type State struct {
	page       int
	limit      int
	maxLimit   int
	search     string
	niveau     string
	ageMin     *int
	ageMax     *int
	totalPages int
}

// New returns the session defaults: page 1, no criteria, one known page.
func New(limit, maxLimit int) *State {
	if maxLimit < 1 {
		maxLimit = 1
	}
	s := &State{page: 1, maxLimit: maxLimit, totalPages: 1}
	s.limit = s.clampLimit(limit)
	return s
}

func (s *State) Page() int       { return s.page }
func (s *State) Limit() int      { return s.limit }
func (s *State) MaxLimit() int   { return s.maxLimit }
func (s *State) Search() string  { return s.search }
func (s *State) Niveau() string  { return s.niveau }
func (s *State) AgeMin() *int    { return copyInt(s.ageMin) }
func (s *State) AgeMax() *int    { return copyInt(s.ageMax) }
func (s *State) TotalPages() int { return s.totalPages }

// LastPage is the navigation bound; a server total below 1 counts as 1.
func (s *State) LastPage() int {
	if s.totalPages < 1 {
		return 1
	}
	return s.totalPages
}

// SetSearch stores the trimmed term and resets the page.
func (s *State) SetSearch(term string) {
	s.search = strings.TrimSpace(term)
	s.page = 1
}

// SetNiveau stores the level filter, empty meaning any level, and resets the page.
func (s *State) SetNiveau(niveau string) {
	s.niveau = strings.TrimSpace(niveau)
	s.page = 1
}

// SetAgeMin sets or clears (nil) the lower age bound. Negative values are rejected and
// leave the state untouched.
func (s *State) SetAgeMin(v *int) error {
	if v != nil && *v < 0 {
		return ErrInvalidAge
	}
	s.ageMin = copyInt(v)
	s.page = 1
	return nil
}

// SetAgeMax is SetAgeMin for the upper bound. No ordering against the lower bound is
// enforced.
func (s *State) SetAgeMax(v *int) error {
	if v != nil && *v < 0 {
		return ErrInvalidAge
	}
	s.ageMax = copyInt(v)
	s.page = 1
	return nil
}

// ClearFilters drops search, level and age bounds and resets the page.
func (s *State) ClearFilters() {
	s.search = ""
	s.niveau = ""
	s.ageMin = nil
	s.ageMax = nil
	s.page = 1
}

// SetLimit clamps n into [1, MaxLimit], resets the page and returns the applied value.
func (s *State) SetLimit(n int) int {
	s.limit = s.clampLimit(n)
	s.page = 1
	return s.limit
}

// CanGoTo reports whether navigating to p would change anything.
func (s *State) CanGoTo(p int) bool {
	return p >= 1 && p <= s.LastPage() && p != s.page
}

// GoTo moves to p when CanGoTo allows it.
func (s *State) GoTo(p int) bool {
	if !s.CanGoTo(p) {
		return false
	}
	s.page = p
	return true
}

// ResetPage goes back to the first page without touching the criteria.
func (s *State) ResetPage() { s.page = 1 }

// Apply records the server's view of the pagination after a successful fetch. The page
// is kept within [1, LastPage()], since the server echoes pages past the end; the result
// reports whether it had to be pulled back.
func (s *State) Apply(page, totalPages int) bool {
	s.totalPages = totalPages
	s.page = min(max(page, 1), s.LastPage())
	return page > s.page
}

// Query snapshots the state into the request criteria.
func (s *State) Query() repository.ListQuery {
	return repository.ListQuery{
		Page:   s.page,
		Limit:  s.limit,
		Search: s.search,
		Niveau: s.niveau,
		AgeMin: copyInt(s.ageMin),
		AgeMax: copyInt(s.ageMax),
	}
}

func (s *State) clampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > s.maxLimit {
		return s.maxLimit
	}
	return n
}

// ParseAge converts raw input into an age bound: empty means no bound.
func ParseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, ErrInvalidAge
	}
	return &n, nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
