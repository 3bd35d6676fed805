package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
)

const (
	NotAvailable = "N/A"

	EmptySearch  = "No usager matches your search"
	EmptyNothing = "No usager registered yet"
	LoadFailed   = "Failed to load usagers"
)

// CreatedLayout formats the creation timestamp on cards.
const CreatedLayout = "2 January 2006 at 15:04"

// Card is one usager as displayed in the list.
type Card struct {
	ID       int64
	FullName string
	Email    string
	Age      string
	Niveau   string
	Created  string
}

// List is everything the list region shows after a fetch. Exactly one of Cards, Empty or
// Error is meaningful.
type List struct {
	Cards      []Card
	Empty      string
	Error      string
	Pagination Pagination
}

// Build maps a successful fetch onto the list region. search is the term the request was
// made with; it picks the empty-list wording.
func Build(search string, res repository.PageResult[model.User]) List {
	if len(res.Items) == 0 {
		msg := EmptyNothing
		if strings.TrimSpace(search) != "" {
			msg = EmptySearch
		}
		return List{Empty: msg}
	}
	cards := make([]Card, 0, len(res.Items))
	for _, u := range res.Items {
		cards = append(cards, CardOf(u))
	}
	return List{
		Cards:      cards,
		Pagination: BuildPagination(res.Page, res.TotalPages, res.Limit, res.Total),
	}
}

// ErrorList is the list region after a failed fetch; pagination stays hidden.
func ErrorList() List {
	return List{Error: LoadFailed}
}

func CardOf(u model.User) Card {
	c := Card{
		ID:       u.ID,
		FullName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email:    u.Email,
		Age:      NotAvailable,
		Niveau:   NotAvailable,
		Created:  NotAvailable,
	}
	if u.Age > 0 {
		c.Age = strconv.Itoa(u.Age)
	}
	if u.NiveauNatation != "" {
		c.Niveau = u.NiveauNatation
	}
	if !u.CreatedAt.IsZero() {
		c.Created = u.CreatedAt.In(time.Local).Format(CreatedLayout)
	}
	return c
}
