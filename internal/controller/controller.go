// Package controller reconciles user-driven search, filter and page inputs into list
// requests and maps the responses back into query state and render calls.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/usagers-client/internal/debounce"
	"github.com/maxviazov/usagers-client/internal/metrics"
	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/query"
	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/maxviazov/usagers-client/internal/service"
	"github.com/maxviazov/usagers-client/internal/view"
	"github.com/maxviazov/usagers-client/pkg/response"
)

// Renderer draws the list and form regions. It is called with the controller lock held
// and must not call back into the controller.
type Renderer interface {
	RenderList(l view.List)
	RenderForm(f view.Form)
}

// Notifier shows transient messages. Same locking rule as Renderer.
type Notifier interface {
	Notify(kind view.MessageKind, text string)
}

// Options tune a Controller. Zero limits fall back to the defaults; a zero Debounce
// fires on the next timer tick.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	Debounce     time.Duration
	Clock        debounce.Clock
	Metrics      *metrics.Metrics
}

const defaultLimit = 10

// Controller owns the session's query state. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	ctx      context.Context
	svc      service.UserService
	state    *query.State
	renderer Renderer
	notifier Notifier
	debounce *debounce.Debouncer
	metrics  *metrics.Metrics
	log      zerolog.Logger

	// seq is bumped by every issued request and every state change; a response whose
	// sequence number differs on arrival is stale.
	seq   uint64
	draft *draft
}

// request is one list fetch, frozen at issue time.
type request struct {
	seq   uint64
	query repository.ListQuery
}

// New builds a controller bound to the session context ctx. It does not fetch; call Load.
func New(ctx context.Context, svc service.UserService, r Renderer, n Notifier, logger zerolog.Logger, opts Options) *Controller {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = service.MaxLimit
	}
	return &Controller{
		ctx:      ctx,
		svc:      svc,
		state:    query.New(opts.DefaultLimit, opts.MaxLimit),
		renderer: r,
		notifier: n,
		debounce: debounce.New(opts.Debounce, opts.Clock),
		metrics:  opts.Metrics,
		log:      logger.With().Str("module", "controller").Logger(),
	}
}

// Query returns the criteria the next request would carry.
func (c *Controller) Query() repository.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Query()
}

// TotalPages returns the last server-reported page count.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.TotalPages()
}

// Load fetches the current page immediately, dropping any pending debounced fetch.
func (c *Controller) Load() {
	c.immediate(func() bool { return true })
}

// Reload is Load under the name the console uses.
func (c *Controller) Reload() { c.Load() }

// SetSearch stores the term and schedules a debounced fetch.
func (c *Controller) SetSearch(term string) {
	c.debounced(func() { c.state.SetSearch(term) })
}

// SetAgeMin parses raw ("" clears the bound) and schedules a debounced fetch. Invalid
// input is reported and leaves the state untouched.
func (c *Controller) SetAgeMin(raw string) error {
	return c.setAge(raw, (*query.State).SetAgeMin)
}

// SetAgeMax is SetAgeMin for the upper bound.
func (c *Controller) SetAgeMax(raw string) error {
	return c.setAge(raw, (*query.State).SetAgeMax)
}

func (c *Controller) setAge(raw string, set func(*query.State, *int) error) error {
	v, err := query.ParseAge(raw)
	if err != nil {
		c.mu.Lock()
		c.notify(view.MessageError, "Invalid age: "+err.Error())
		c.mu.Unlock()
		return err
	}
	c.debounced(func() { _ = set(c.state, v) })
	return nil
}

// SetNiveau selects a level ("" for any) and fetches immediately.
func (c *Controller) SetNiveau(niveau string) {
	c.immediate(func() bool {
		c.state.SetNiveau(niveau)
		return true
	})
}

// ClearFilters drops every criterion and fetches immediately.
func (c *Controller) ClearFilters() {
	c.immediate(func() bool {
		c.state.ClearFilters()
		return true
	})
}

// GoToPage fetches page p. Out-of-range and current-page requests are ignored; the
// result reports whether a request was issued.
func (c *Controller) GoToPage(p int) bool {
	return c.immediate(func() bool { return c.state.GoTo(p) })
}

func (c *Controller) NextPage() bool {
	return c.immediate(func() bool { return c.state.GoTo(c.state.Page() + 1) })
}

func (c *Controller) PrevPage() bool {
	return c.immediate(func() bool { return c.state.GoTo(c.state.Page() - 1) })
}

// SetLimit changes the page size (clamped to the configured maximum) and fetches
// immediately. It returns the applied size.
func (c *Controller) SetLimit(n int) int {
	var applied int
	c.immediate(func() bool {
		applied = c.state.SetLimit(n)
		return true
	})
	return applied
}

// Close cancels the pending debounced fetch; later debounced inputs never fire.
func (c *Controller) Close() {
	c.debounce.Close()
}

// immediate applies mutate and, when it reports a change, fetches right away.
func (c *Controller) immediate(mutate func() bool) bool {
	c.mu.Lock()
	if !mutate() {
		c.mu.Unlock()
		return false
	}
	c.debounce.Cancel()
	req := c.beginLocked()
	c.mu.Unlock()

	c.fetch(req)
	return true
}

// debounced applies mutate now and arms the fetch. The fetch reads the state when the
// window elapses, so it always carries the latest value.
func (c *Controller) debounced(mutate func()) {
	c.mu.Lock()
	mutate()
	// responses already in flight were computed for the old criteria
	c.seq++
	c.mu.Unlock()

	c.debounce.Trigger(func() {
		c.mu.Lock()
		req := c.beginLocked()
		c.mu.Unlock()
		c.fetch(req)
	})
}

func (c *Controller) beginLocked() request {
	c.seq++
	return request{seq: c.seq, query: c.state.Query()}
}

// fetch runs the round trip outside the lock and applies the outcome under it.
func (c *Controller) fetch(req request) {
	c.metrics.RequestIssued()
	start := time.Now()
	res, err := c.svc.ListUsers(c.ctx, req.query)
	took := time.Since(start)
	c.metrics.Observe(took)

	if next, ok := c.apply(req, res, err, took); ok {
		c.fetch(next)
	}
}

// apply folds one outcome into the state under the lock. It returns a follow-up request
// when the server answered for a page that no longer exists.
func (c *Controller) apply(req request, res repository.PageResult[model.User], err error, took time.Duration) (request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.seq != c.seq {
		c.metrics.StaleDiscarded()
		c.log.Debug().Uint64("seq", req.seq).Uint64("latest", c.seq).Dur("took", took).Msg("stale response discarded")
		return request{}, false
	}
	if err != nil {
		kind := repository.Kind(err)
		c.metrics.Failed(kind)
		if c.ctx.Err() != nil {
			// session is shutting down; nobody is looking
			return request{}, false
		}
		c.log.Warn().Err(err).Str("kind", kind).Uint64("seq", req.seq).Msg("list fetch failed")
		c.notify(view.MessageError, "Failed to load usagers: "+response.Message(err))
		c.render(view.ErrorList())
		return request{}, false
	}

	// refetch only when we asked beyond the end; each retry asks for a lower page
	if c.state.Apply(res.Page, res.TotalPages) && req.query.Page > c.state.Page() {
		c.log.Debug().Int("page", res.Page).Int("total_pages", res.TotalPages).Msg("page past the end, refetching last page")
		return c.beginLocked(), true
	}
	c.log.Debug().Uint64("seq", req.seq).Int("page", res.Page).Int("total_pages", res.TotalPages).Int("total", res.Total).Dur("took", took).Msg("list fetched")
	c.render(view.Build(req.query.Search, res))
	return request{}, false
}

func (c *Controller) render(l view.List) {
	if c.renderer != nil {
		c.renderer.RenderList(l)
	}
}

func (c *Controller) renderForm(f view.Form) {
	if c.renderer != nil {
		c.renderer.RenderForm(f)
	}
}

func (c *Controller) notify(kind view.MessageKind, text string) {
	if c.notifier != nil {
		c.notifier.Notify(kind, text)
	}
}
