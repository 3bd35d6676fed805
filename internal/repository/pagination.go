package repository

import (
	"net/url"
	"strconv"
)

// Query parameter names understood by GET /api/users.
const (
	ParamPage         = "page"
	ParamLimit        = "limit"
	ParamSearch       = "search"
	ParamFilterNiveau = "filter_niveau"
	ParamFilterAgeMin = "filter_age_min"
	ParamFilterAgeMax = "filter_age_max"
)

// ListQuery is an immutable snapshot of the list criteria sent with one request.
// Age bounds are pointers so that "not set" and 0 stay distinguishable.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Niveau string
	AgeMin *int
	AgeMax *int
}

// Offset is the number of records skipped before the requested page.
func (q ListQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Values encodes the query. Page and limit are always sent; empty criteria are omitted
// instead of being sent as empty parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(q.Page))
	v.Set(ParamLimit, strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.Niveau != "" {
		v.Set(ParamFilterNiveau, q.Niveau)
	}
	if q.AgeMin != nil {
		v.Set(ParamFilterAgeMin, strconv.Itoa(*q.AgeMin))
	}
	if q.AgeMax != nil {
		v.Set(ParamFilterAgeMax, strconv.Itoa(*q.AgeMax))
	}
	return v
}

// HasCriteria reports whether any search or filter is active.
func (q ListQuery) HasCriteria() bool {
	return q.Search != "" || q.Niveau != "" || q.AgeMin != nil || q.AgeMax != nil
}

// PageResult carries one page of items plus the server's pagination counters.
// The server is authoritative for Page and TotalPages; I never recompute them locally.
type PageResult[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
}
