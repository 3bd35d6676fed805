package view

import "github.com/maxviazov/usagers-client/internal/model"

// Field is one labelled form input.
type Field struct {
	Name  string
	Label string
	Value string
}

// Form is the create/edit draft. ID is zero for a new usager.
type Form struct {
	Open   bool
	ID     int64
	Fields []Field
}

// Title names the form the way the submit outcome will be reported.
func (f Form) Title() string {
	if f.ID != 0 {
		return "Edit usager"
	}
	return "New usager"
}

// BuildForm lists the draft fields in wire order.
func BuildForm(id int64, in model.UserInput) Form {
	return Form{
		Open: true,
		ID:   id,
		Fields: []Field{
			{Name: "first_name", Label: "First name", Value: in.FirstName},
			{Name: "last_name", Label: "Last name", Value: in.LastName},
			{Name: "email", Label: "Email", Value: in.Email},
			{Name: "date_naissance", Label: "Birth date (YYYY-MM-DD)", Value: in.DateNaissance},
			{Name: "niveau_natation", Label: "Swimming level", Value: in.NiveauNatation},
		},
	}
}

// MessageKind separates confirmations from failures.
type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
)

func (k MessageKind) String() string {
	if k == MessageError {
		return "error"
	}
	return "success"
}
