// Package terminal draws the list, form and messages on a text terminal.
package terminal

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/maxviazov/usagers-client/internal/view"
)

// DefaultMessageDuration is how long a transient message stays on the status line.
const DefaultMessageDuration = 5 * time.Second

type message struct {
	kind    view.MessageKind
	text    string
	expires time.Time
}

// Screen implements controller.Renderer and controller.Notifier on an io.Writer.
type Screen struct {
	mu     sync.Mutex
	out    io.Writer
	policy *bluemonday.Policy
	ttl    time.Duration
	now    func() time.Time
	msg    *message
}

// New returns a screen writing to out. A non-positive ttl means DefaultMessageDuration.
func New(out io.Writer, ttl time.Duration) *Screen {
	if ttl <= 0 {
		ttl = DefaultMessageDuration
	}
	return &Screen{
		out:    out,
		policy: bluemonday.StrictPolicy(),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetClock replaces the time source used for message expiry.
func (s *Screen) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Sanitize makes server-provided text safe to print: markup is stripped, entities are
// decoded back to plain characters and control characters are dropped.
func (s *Screen) Sanitize(in string) string {
	out := html.UnescapeString(s.policy.Sanitize(in))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, out)
}

func (s *Screen) RenderList(l view.List) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("\n")
	switch {
	case l.Error != "":
		fmt.Fprintf(&b, "  ! %s\n", l.Error)
	case len(l.Cards) == 0:
		fmt.Fprintf(&b, "  %s\n", l.Empty)
	default:
		for _, c := range l.Cards {
			fmt.Fprintf(&b, "  #%-5d %s <%s>\n", c.ID, s.Sanitize(c.FullName), s.Sanitize(c.Email))
			fmt.Fprintf(&b, "         Age: %s | Level: %s | Created %s\n", c.Age, s.Sanitize(c.Niveau), c.Created)
		}
	}
	if l.Pagination.Visible {
		fmt.Fprintf(&b, "\n  %s\n  %s\n", l.Pagination.Summary(), PaginationLine(l.Pagination))
	}
	if st := s.statusLocked(); st != "" {
		fmt.Fprintf(&b, "\n%s\n", st)
	}
	_, _ = io.WriteString(s.out, b.String())
}

func (s *Screen) RenderForm(f view.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.Open {
		_, _ = io.WriteString(s.out, "  (form closed)\n")
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n  == %s ==\n", f.Title())
	for _, fld := range f.Fields {
		fmt.Fprintf(&b, "  %-24s %-16s %s\n", fld.Label, "["+fld.Name+"]", s.Sanitize(fld.Value))
	}
	b.WriteString("  set <field> <value>, then save or cancel\n")
	_, _ = io.WriteString(s.out, b.String())
}

// Notify prints the message and keeps it on the status line until it expires.
func (s *Screen) Notify(kind view.MessageKind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = &message{kind: kind, text: s.Sanitize(text), expires: s.now().Add(s.ttl)}
	_, _ = io.WriteString(s.out, s.statusLocked()+"\n")
}

// Status returns the live message line, or "" once it has expired.
func (s *Screen) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Screen) statusLocked() string {
	if s.msg == nil {
		return ""
	}
	if !s.now().Before(s.msg.expires) {
		s.msg = nil
		return ""
	}
	prefix := "[ok]"
	if s.msg.kind == view.MessageError {
		prefix = "[error]"
	}
	return prefix + " " + s.msg.text
}

// PaginationLine renders e.g. "« Prev  1 … 3 4 [5] 6 7 … 10  Next »". Disabled
// controls show as (Prev) and (Next).
func PaginationLine(p view.Pagination) string {
	prev, next := "(Prev)", "(Next)"
	if p.Prev.Enabled {
		prev = "« Prev"
	}
	if p.Next.Enabled {
		next = "Next »"
	}
	parts := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		switch {
		case it.Kind == view.KindEllipsis:
			parts = append(parts, "…")
		case it.Current:
			parts = append(parts, "["+strconv.Itoa(it.Number)+"]")
		default:
			parts = append(parts, strconv.Itoa(it.Number))
		}
	}
	return prev + "  " + strings.Join(parts, " ") + "  " + next
}
