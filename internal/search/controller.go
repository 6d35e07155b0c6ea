// Package search drives the endpoint search box: it debounces input, queries
// the match engine and maps the outcome onto the Idle, Results and NoResults
// views.
//
// A Controller is not safe for concurrent use. Every method, and every
// callback its Scheduler fires, must run on the owner's event loop.
package search

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"apiscout/internal/domain"
	"apiscout/internal/eventbus"
	"apiscout/internal/obs"
)

// Options configures controller behaviour
type Options struct {
	// Debounce is the quiet period after the last keystroke before a search runs
	Debounce time.Duration

	// MaxResults caps displayed entries; the uncapped count is View.Total
	MaxResults int

	// ScopeToVersion restricts the index to the active version's records
	ScopeToVersion bool
}

// DefaultOptions returns the standard debounce and display cap
func DefaultOptions() Options {
	return Options{
		Debounce:       150 * time.Millisecond,
		MaxResults:     10,
		ScopeToVersion: true,
	}
}

// Deps are the collaborators a Controller needs. Records and Builder are
// required; Versions and Bus may be nil.
type Deps struct {
	Records   RecordSource
	Builder   IndexBuilder
	Scheduler Scheduler
	Renderer  Renderer
	Versions  VersionScope
	Bus       eventbus.EventBus
}

type pendingDispatch struct {
	query string
	task  Task
}

// Controller owns the live query and the search phase
type Controller struct {
	opts      Options
	records   []domain.Endpoint
	builder   IndexBuilder
	index     Searcher
	scheduler Scheduler
	renderer  Renderer
	versions  VersionScope
	bus       eventbus.EventBus
	logger    zerolog.Logger

	enabled bool
	state   State
	pending *pendingDispatch
	scope   string // version the index was built for
}

// New creates a controller in the Idle phase. When a required collaborator
// is missing the controller is returned disabled: it logs the cause once and
// ignores all input.
func New(opts Options, deps Deps) *Controller {
	c := &Controller{
		opts:      opts,
		builder:   deps.Builder,
		scheduler: deps.Scheduler,
		renderer:  deps.Renderer,
		versions:  deps.Versions,
		bus:       deps.Bus,
		logger:    obs.Logger("search"),
		state:     State{Phase: Idle},
	}

	switch {
	case deps.Records == nil:
		c.logger.Error().Msg("search disabled: endpoint records unavailable")
		return c
	case deps.Builder == nil:
		c.logger.Error().Msg("search disabled: no matching engine")
		return c
	case deps.Scheduler == nil:
		c.logger.Error().Msg("search disabled: no scheduler")
		return c
	case deps.Renderer == nil:
		c.logger.Error().Msg("search disabled: no renderer")
		return c
	}

	c.records = deps.Records.Endpoints()
	c.rebuild()
	c.enabled = true

	c.logger.Debug().
		Int("records", len(c.records)).
		Dur("debounce", opts.Debounce).
		Msg("search enabled")
	return c
}

// Enabled reports whether the controller accepts input
func (c *Controller) Enabled() bool {
	return c.enabled
}

// State returns a snapshot of the controller state
func (c *Controller) State() State {
	s := c.state
	if c.pending != nil {
		s.HasPending = true
		s.PendingQuery = c.pending.query
	}
	return s
}

// Scope returns the version the index currently covers, "" when unscoped
func (c *Controller) Scope() string {
	return c.scope
}

// OnInput records raw input. Blank input returns to Idle at once; anything
// else re-arms the debounced dispatch for the latest query.
func (c *Controller) OnInput(raw string) {
	if !c.enabled {
		return
	}

	c.state.Query = raw
	query := strings.TrimSpace(raw)
	if query == "" {
		c.cancelPending()
		c.toIdle(false)
		return
	}

	c.arm(query)
}

// OnCancel clears the query and returns to Idle. Any pending dispatch is
// invalidated before the view is reset.
func (c *Controller) OnCancel() {
	if !c.enabled {
		return
	}

	c.cancelPending()
	c.state.Query = ""
	c.toIdle(true)
}

// OnVersionChange rebuilds the index for the active version and repeats the
// live query, if any, against it.
func (c *Controller) OnVersionChange(id string) {
	if !c.enabled || !c.opts.ScopeToVersion || c.versions == nil {
		return
	}

	c.rebuild()
	c.logger.Debug().Str("version", id).Str("scope", c.scope).Msg("search index rebuilt")

	if query := strings.TrimSpace(c.state.Query); query != "" {
		c.arm(query)
	}
}

// Close cancels any pending dispatch and disables the controller
func (c *Controller) Close() {
	c.cancelPending()
	c.enabled = false
}

func (c *Controller) rebuild() {
	records := c.records
	c.scope = ""

	if c.opts.ScopeToVersion && c.versions != nil {
		c.scope = c.versions.Current()
		scoped := make([]domain.Endpoint, 0, len(records))
		for _, e := range records {
			if c.versions.Visible(e.Version) {
				scoped = append(scoped, e)
			}
		}
		records = scoped
	}

	c.index = c.builder(records)
}

func (c *Controller) arm(query string) {
	c.cancelPending()

	p := &pendingDispatch{query: query}
	p.task = c.scheduler.AfterFunc(c.opts.Debounce, func() {
		c.fire(p)
	})
	c.pending = p
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.task.Cancel()
	c.pending = nil
}

func (c *Controller) fire(p *pendingDispatch) {
	if !c.enabled || c.pending != p {
		return
	}
	c.pending = nil
	c.dispatch(p.query)
}

func (c *Controller) dispatch(query string) {
	c.publish(eventbus.SearchDispatchedEvent{Query: query})

	results := c.index.Search(query)
	entries := Entries(results, c.opts.MaxResults)

	view := View{
		Query:   query,
		Entries: entries,
		Total:   len(results),
	}
	if len(entries) == 0 {
		view.Phase = NoResults
	} else {
		view.Phase = Results
	}

	c.state.Phase = view.Phase
	c.renderer.Render(view)

	c.logger.Debug().
		Str("query", query).
		Str("phase", view.Phase.String()).
		Int("total", view.Total).
		Msg("search dispatched")

	c.publish(eventbus.SearchCompletedEvent{
		Query: query,
		Phase: view.Phase.String(),
		Shown: len(entries),
		Total: view.Total,
	})
}

func (c *Controller) toIdle(clearInput bool) {
	c.state.Phase = Idle
	c.renderer.Render(View{
		Phase:          Idle,
		ShowNavigation: true,
		ClearInput:     clearInput,
	})
	c.publish(eventbus.SearchClearedEvent{})
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
