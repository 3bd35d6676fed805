// Package console reads typed commands and turns them into controller events.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/usagers-client/internal/controller"
	"github.com/maxviazov/usagers-client/internal/view"
)

// Actions is the part of the controller the console drives.
type Actions interface {
	Reload()
	SetSearch(term string)
	SetNiveau(niveau string)
	SetAgeMin(raw string) error
	SetAgeMax(raw string) error
	ClearFilters()
	GoToPage(p int) bool
	NextPage() bool
	PrevPage() bool
	SetLimit(n int) int
	NewForm()
	EditForm(id int64) error
	SetField(name, value string) error
	Form() (view.Form, bool)
	SubmitForm() error
	CancelForm()
	Delete(id int64) error
}

var _ Actions = (*controller.Controller)(nil)

const helpText = `Commands:
  list | reload            fetch the current page again
  search <text>            filter by name or email (empty clears)
  niveau [level]           filter by swimming level (empty clears)
  age-min [n] | age-max [n] age bounds (empty clears)
  clear                    drop every filter
  page <n> | next | prev   navigate
  limit <n>                usagers per page
  new | edit <id>          open the form
  set <field> <value>      fields: first, last, email, born, niveau
  form | save | cancel     show, submit or discard the form
  add field=value ...      create in one go, e.g. add first=Jean last=Dupont ...
  delete <id>              remove a usager (asks for confirmation)
  help | quit
`

// Console is a line-oriented command loop.
type Console struct {
	actions Actions
	out     io.Writer
	log     zerolog.Logger
	prompt  string
}

func New(actions Actions, out io.Writer, logger zerolog.Logger) *Console {
	return &Console{
		actions: actions,
		out:     out,
		log:     logger.With().Str("module", "console").Logger(),
		prompt:  "> ",
	}
}

// Run reads commands from in until EOF, quit or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	next := func() (string, bool) {
		select {
		case <-ctx.Done():
			return "", false
		case l, ok := <-lines:
			return l, ok
		}
	}

	c.printf("Type help for the list of commands.\n")
	for {
		c.printf("%s", c.prompt)
		line, ok := next()
		if !ok {
			if ctx.Err() != nil {
				return nil
			}
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}
		if quit := c.exec(line, next); quit {
			return nil
		}
	}
}

// exec runs one command line. next reads a follow-up line (delete confirmation).
func (c *Console) exec(line string, next func() (string, bool)) bool {
	cmd, rest := splitCommand(line)
	if cmd == "" {
		return false
	}
	c.log.Debug().Str("command", cmd).Msg("console command")

	switch cmd {
	case "help", "?":
		c.printf("%s", helpText)
	case "quit", "exit":
		return true
	case "list", "reload":
		c.actions.Reload()
	case "search":
		c.actions.SetSearch(rest)
	case "niveau":
		c.actions.SetNiveau(rest)
	case "age-min":
		_ = c.actions.SetAgeMin(rest)
	case "age-max":
		_ = c.actions.SetAgeMax(rest)
	case "clear":
		c.actions.ClearFilters()
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			c.printf("usage: page <n>\n")
			return false
		}
		c.actions.GoToPage(n)
	case "next":
		c.actions.NextPage()
	case "prev":
		c.actions.PrevPage()
	case "limit":
		n, err := strconv.Atoi(rest)
		if err != nil {
			c.printf("usage: limit <n>\n")
			return false
		}
		c.printf("showing %d usagers per page\n", c.actions.SetLimit(n))
	case "new":
		c.actions.NewForm()
	case "edit":
		id, ok := c.parseID(rest, "edit")
		if ok {
			_ = c.actions.EditForm(id)
		}
	case "set":
		c.set(rest)
	case "form":
		c.showForm()
	case "save":
		if err := c.actions.SubmitForm(); errors.Is(err, controller.ErrNoForm) {
			c.printf("no form is open, type new or edit <id>\n")
		}
	case "cancel":
		c.actions.CancelForm()
	case "add":
		c.add(rest)
	case "delete":
		id, ok := c.parseID(rest, "delete")
		if !ok {
			return false
		}
		c.printf("Delete usager #%d? [y/N] ", id)
		answer, ok := next()
		if !ok {
			return true
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a == "y" || a == "yes" {
			_ = c.actions.Delete(id)
		} else {
			c.printf("kept\n")
		}
	default:
		c.printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func (c *Console) set(rest string) {
	args, err := Split(rest)
	if err != nil || len(args) == 0 {
		c.printf("usage: set <field> <value>\n")
		return
	}
	if err := c.actions.SetField(args[0], strings.Join(args[1:], " ")); err != nil {
		c.printf("%v\n", err)
	}
}

func (c *Console) add(rest string) {
	args, err := Split(rest)
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	if len(args) == 0 {
		c.printf("usage: add field=value ...\n")
		return
	}
	c.actions.NewForm()
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			c.printf("expected field=value, got %q\n", a)
			c.actions.CancelForm()
			return
		}
		if err := c.actions.SetField(k, v); err != nil {
			c.printf("%v\n", err)
			c.actions.CancelForm()
			return
		}
	}
	// on failure the form stays open so the user can fix it with set
	_ = c.actions.SubmitForm()
}

func (c *Console) showForm() {
	f, ok := c.actions.Form()
	if !ok {
		c.printf("no form is open\n")
		return
	}
	c.printf("%s\n", f.Title())
	for _, fld := range f.Fields {
		c.printf("  %-16s %s\n", fld.Name, fld.Value)
	}
}

func (c *Console) parseID(raw, cmd string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		c.printf("usage: %s <id>\n", cmd)
		return 0, false
	}
	return id, true
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// splitCommand returns the lower-cased first word and the trimmed remainder.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}
