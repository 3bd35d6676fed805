package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
)

// MaxLimit is the largest page size the API accepts.
const MaxLimit = 100

const defaultLimit = 10

// userForm mirrors model.UserInput with the client-side rules.
type userForm struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=255"`
	DateNaissance  string `json:"date_naissance" validate:"required,datetime=2006-01-02,notfuture"`
	NiveauNatation string `json:"niveau_natation" validate:"required,max=50"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report wire names so messages match what the user typed in the form
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(model.DateLayout, fl.Field().String())
		if err != nil {
			return true // format is datetime's job
		}
		return !d.After(time.Now())
	})
	return v
}

// normalizeInput trims every field.
func normalizeInput(in model.UserInput) model.UserInput {
	return model.UserInput{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		DateNaissance:  strings.TrimSpace(in.DateNaissance),
		NiveauNatation: strings.TrimSpace(in.NiveauNatation),
	}
}

// validateInput runs the form rules and converts failures into the aggregated error.
func validateInput(in model.UserInput) error {
	form := userForm(in)
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return newInvalidInput(ferrs)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "notfuture":
		return "must not be in the future"
	default:
		return "is invalid"
	}
}

func normalizeListQuery(q repository.ListQuery) repository.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Niveau = strings.TrimSpace(q.Niveau)
	return q
}
