// Package service holds the usager use cases between the controller and the repository.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures.
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field of the form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string {
	if len(e.fields) == 0 {
		return ErrInvalidInput.Error()
	}
	msg := ErrInvalidInput.Error() + ": "
	for i, f := range e.fields {
		if i > 0 {
			msg += "; "
		}
		msg += f.Field + " " + f.Message
	}
	return msg
}
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// UserService defines usager-oriented use cases.
type UserService interface {
	ListUsers(ctx context.Context, q repository.ListQuery) (repository.PageResult[model.User], error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) (model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
