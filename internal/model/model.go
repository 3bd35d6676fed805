// Package model contains the usager entities and wire DTOs shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// DateLayout is the wire format of date_naissance.
const DateLayout = "2006-01-02"

// User represents a registered usager as returned by the API.
type User struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	DateNaissance  string    `json:"date_naissance"` // YYYY-MM-DD
	Age            int       `json:"age"`            // computed server-side, 0 when unknown
	NiveauNatation string    `json:"niveau_natation"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserInput is the body of create and update requests.
type UserInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DateNaissance  string `json:"date_naissance"`
	NiveauNatation string `json:"niveau_natation"`
}

// InputOf returns the editable part of u, used to pre-populate the form.
func InputOf(u User) UserInput {
	return UserInput{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		DateNaissance:  u.DateNaissance,
		NiveauNatation: u.NiveauNatation,
	}
}

// UsersPage is the paginated list envelope of GET /api/users.
type UsersPage struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
