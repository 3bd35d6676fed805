package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/view"
	"github.com/maxviazov/usagers-client/pkg/response"
)

var (
	ErrNoForm       = errors.New("no form is open")
	ErrUnknownField = errors.New("unknown field")
)

const (
	MsgCreated = "Usager created"
	MsgUpdated = "Usager updated"
	MsgDeleted = "Usager deleted"
)

// draft is the form being edited; id is zero for a new usager.
type draft struct {
	id int64
	in model.UserInput
}

// fieldAliases maps accepted field names onto wire names.
var fieldAliases = map[string]string{
	"first_name":      "first_name",
	"first":           "first_name",
	"last_name":       "last_name",
	"last":            "last_name",
	"email":           "email",
	"date_naissance":  "date_naissance",
	"born":            "date_naissance",
	"niveau_natation": "niveau_natation",
	"niveau":          "niveau_natation",
}

// NewForm opens an empty draft, replacing any open one.
func (c *Controller) NewForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = &draft{}
	c.renderForm(view.BuildForm(0, c.draft.in))
}

// EditForm loads usager id and opens it as a draft.
func (c *Controller) EditForm(id int64) error {
	u, err := c.svc.GetUser(c.ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify(view.MessageError, "Failed to load usager: "+response.Message(err))
		return err
	}
	c.draft = &draft{id: u.ID, in: model.InputOf(u)}
	c.renderForm(view.BuildForm(u.ID, c.draft.in))
	return nil
}

// SetField updates one draft field. name is a wire name or one of its short aliases.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoForm
	}
	field, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	switch field {
	case "first_name":
		c.draft.in.FirstName = value
	case "last_name":
		c.draft.in.LastName = value
	case "email":
		c.draft.in.Email = value
	case "date_naissance":
		c.draft.in.DateNaissance = value
	case "niveau_natation":
		c.draft.in.NiveauNatation = value
	}
	c.renderForm(view.BuildForm(c.draft.id, c.draft.in))
	return nil
}

// Form returns the open draft, if any.
func (c *Controller) Form() (view.Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return view.Form{}, false
	}
	return view.BuildForm(c.draft.id, c.draft.in), true
}

// CancelForm discards the draft.
func (c *Controller) CancelForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
	c.renderForm(view.Form{})
}

// SubmitForm creates or updates the draft. On success the form closes and the list
// reloads from page 1; on failure the form stays open and the error message is shown
// as returned.
func (c *Controller) SubmitForm() error {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return ErrNoForm
	}
	d := *c.draft
	c.mu.Unlock()

	var err error
	msg := MsgCreated
	if d.id != 0 {
		_, err = c.svc.UpdateUser(c.ctx, d.id, d.in)
		msg = MsgUpdated
	} else {
		_, err = c.svc.CreateUser(c.ctx, d.in)
	}
	if err != nil {
		c.mu.Lock()
		c.notify(view.MessageError, response.Message(err))
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.draft = nil
	c.renderForm(view.Form{})
	c.notify(view.MessageSuccess, msg)
	c.mu.Unlock()

	c.reloadFromFirstPage()
	return nil
}

// Delete removes usager id. Asking for confirmation is the caller's job.
func (c *Controller) Delete(id int64) error {
	if err := c.svc.DeleteUser(c.ctx, id); err != nil {
		c.mu.Lock()
		c.notify(view.MessageError, response.Message(err))
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.notify(view.MessageSuccess, MsgDeleted)
	c.mu.Unlock()

	c.reloadFromFirstPage()
	return nil
}

func (c *Controller) reloadFromFirstPage() {
	c.immediate(func() bool {
		c.state.ResetPage()
		return true
	})
}
