package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"apiscout/internal/domain"
	"apiscout/internal/eventbus"
	"apiscout/internal/obs"
	"apiscout/internal/search"
	"apiscout/internal/ui/views"
	"apiscout/internal/version"
)

// chromeLines is the space taken by title, input, gaps, status and help
const chromeLines = 10

// Options configures the UI model
type Options struct {
	Search      search.Options
	Match       search.IndexBuilder
	ShowTargets bool
	WrapWidth   int

	// Scheduler overrides the debounce scheduler; by default expired
	// timers are delivered through the running program.
	Scheduler search.Scheduler
}

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	records  search.RecordSource
	selector *version.Selector
	opts     Options
	logger   zerolog.Logger

	width  int
	height int
	input  textinput.Model
	help   help.Model
	keys   keyMap

	controller    *search.Controller
	view          search.View
	groups        []views.TagGroup
	selected      int
	activeVersion string
	status        string
	statusIsError bool
	inPagerMode   bool

	renderer *views.Renderer
	pager    *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. records may be nil, in which case the
// search box is shown as unavailable. selector may be nil for single-version
// catalogs.
func NewModel(bus eventbus.EventBus, records search.RecordSource, selector *version.Selector, opts Options) *Model {
	m := &Model{
		bus:      bus,
		records:  records,
		selector: selector,
		opts:     opts,
		logger:   obs.Logger("ui"),
		help:     help.New(),
		keys:     defaultKeyMap(),
		view:     search.View{Phase: search.Idle, ShowNavigation: true},
		renderer: views.NewRenderer(opts.ShowTargets),
		pager:    NewPagerOps(nil),
	}

	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the view layer
	ti.Placeholder = "search endpoints"
	ti.CharLimit = 256
	m.input = ti

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = search.NewLoopScheduler(m.post)
	}

	var scope search.VersionScope
	if selector != nil {
		scope = selector
		m.activeVersion = selector.Current()
	}

	m.controller = search.New(opts.Search, search.Deps{
		Records:   records,
		Builder:   opts.Match,
		Scheduler: scheduler,
		Renderer:  m,
		Versions:  scope,
		Bus:       bus,
	})

	if m.controller.Enabled() {
		m.input.Focus()
	} else {
		m.input.Placeholder = "search unavailable"
	}

	m.refreshNavigation()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// post hands a debounce callback to the update loop
func (m *Model) post(fn func()) {
	if m.program == nil {
		return
	}
	m.program.Send(dispatchMsg{fn: fn})
}

// Render implements search.Renderer
func (m *Model) Render(v search.View) {
	m.view = v
	m.selected = 0
	if v.ClearInput {
		m.input.Reset()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dispatchMsg:
		msg.fn()
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case detailPagerMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Str("target", msg.target).Msg("failed to open endpoint pager")
			m.setError(fmt.Sprintf("Could not open %s: %v", msg.target, msg.err))
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("failed to open help pager")
			m.setError(fmt.Sprintf("Could not open help: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controller.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.controller.OnCancel()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if entry, ok := m.selectedEntry(); ok {
			return m, m.openDetail(entry)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextVersion):
		if m.selector != nil {
			m.switchVersion(m.selector.Next())
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		return m, m.openHelp()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.controller.OnInput(after)
	}
	return m, cmd
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.VersionChangedEvent:
		// Events may arrive late or out of order; the selector is authoritative
		if m.selector != nil {
			m.switchVersion(m.selector.Current())
		}
	case eventbus.CatalogLoadedEvent:
		m.setStatus(fmt.Sprintf("Loaded %d endpoints across %d versions", e.Endpoints, len(e.Versions)))
	case eventbus.ErrorEvent:
		m.setError(e.Message)
	}
}

func (m *Model) switchVersion(id string) {
	if id == "" || id == m.activeVersion {
		return
	}
	m.activeVersion = id
	m.controller.OnVersionChange(id)
	m.refreshNavigation()
	m.selected = 0

	label := id
	if m.selector != nil {
		label = m.selector.CurrentLabel()
	}
	m.setStatus("Version " + label)
}

// refreshNavigation regroups the endpoints visible under the active version
func (m *Model) refreshNavigation() {
	if m.records == nil {
		m.groups = nil
		return
	}

	all := m.records.Endpoints()
	visible := make([]domain.Endpoint, 0, len(all))
	for _, e := range all {
		if m.selector == nil || m.selector.Visible(e.Version) {
			visible = append(visible, e)
		}
	}
	m.groups = views.GroupByTag(visible)
}

// items returns the entries the cursor moves over in the current phase
func (m *Model) items() []search.Entry {
	switch m.view.Phase {
	case search.Results:
		return m.view.Entries
	case search.NoResults:
		return nil
	}

	endpoints := views.Flatten(m.groups)
	entries := make([]search.Entry, 0, len(endpoints))
	for _, e := range endpoints {
		entries = append(entries, search.Entry{
			Label:    e.Label(),
			Target:   search.TargetURL(e.Method, e.Path),
			Endpoint: e,
		})
	}
	return entries
}

func (m *Model) moveCursor(delta int) {
	n := len(m.items())
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= n {
		m.selected = n - 1
	}
}

func (m *Model) selectedEntry() (search.Entry, bool) {
	items := m.items()
	if m.selected < 0 || m.selected >= len(items) {
		return search.Entry{}, false
	}
	return items[m.selected], true
}

// openDetail returns a command that shows an endpoint in the ov pager
func (m *Model) openDetail(entry search.Entry) tea.Cmd {
	content := m.renderer.Detail(entry, m.opts.WrapWidth)
	return m.runPager(content, func(err error) tea.Msg {
		return detailPagerMsg{target: entry.Target, err: err}
	})
}

// openHelp returns a command that shows help using ov pager
func (m *Model) openHelp() tea.Cmd {
	return m.runPager(renderHelpContent(), func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}

func (m *Model) runPager(content string, done func(error) tea.Msg) tea.Cmd {
	program := m.program
	pager := m.pager
	return func() tea.Msg {
		if program == nil {
			return done(errNoProgram)
		}

		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return done(err)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsError = true
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	label := ""
	if m.selector != nil && len(m.selector.Versions()) > 0 {
		label = m.selector.CurrentLabel()
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		VersionLabel:   label,
		Input:          m.input.View(),
		Disabled:       !m.controller.Enabled(),
		Phase:          m.view.Phase,
		Query:          m.view.Query,
		Entries:        m.view.Entries,
		Total:          m.view.Total,
		Groups:         m.groups,
		SelectedIndex:  m.selected,
		ViewportHeight: m.height - chromeLines,
		StatusMessage:  m.status,
		StatusIsError:  m.statusIsError,
		HelpView:       m.help.View(m.keys),
	}
	return m.renderer.Render(state)
}
