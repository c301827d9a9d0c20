package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/loader"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
)

// Options configures the select box program.
type Options struct {
	Title string

	Items  []*option.Item
	Config selectbox.Config

	// Active is the initial selection, in any form accepted by
	// selectbox.State.WriteValue.
	Active   []any
	Disabled bool

	// Open shows the option list from the start.
	Open bool

	Sink      selectbox.Sink
	Transform selectbox.Transform

	// Loader queries a remote source as the filter text changes. Nil means
	// Items is the whole pool.
	Loader *loader.Loader

	// Changes signals that Reload should replace the pool.
	Changes <-chan struct{}
	Reload  func() ([]*option.Item, error)
}

// Result is the outcome of a session.
type Result struct {
	Cancelled bool

	// Value is the transformed selection.
	Value  any
	Active []*option.Item
}

type debounceMsg struct {
	ticket loader.Ticket
}

type loadedMsg struct {
	result loader.Result
}

type dataChangedMsg struct{}

type reloadedMsg struct {
	items []*option.Item
	err   error
}

// Model is the bubbletea model hosting a select box.
type Model struct {
	ctx   context.Context
	state *selectbox.State
	input textinput.Model
	keys  keyMap
	help  help.Model
	title string

	loader  *loader.Loader
	loading bool

	changes <-chan struct{}
	reload  func() ([]*option.Item, error)

	width    int
	height   int
	result   Result
	quitting bool
}

// New creates the model. ctx bounds remote queries.
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if opts.Loader != nil {
		cfg.ServerFiltered = true
	}

	var stateOpts []selectbox.Option
	if opts.Sink != nil {
		stateOpts = append(stateOpts, selectbox.WithSink(opts.Sink))
	}
	if opts.Transform != nil {
		stateOpts = append(stateOpts, selectbox.WithTransform(opts.Transform))
	}

	state := selectbox.New(opts.Items, cfg, stateOpts...)
	state.WriteValue(opts.Active)
	state.SetDisabled(opts.Disabled)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.PlaceholderStyle = placeholderStyle
	ti.CharLimit = 256

	m := Model{
		ctx:     ctx,
		state:   state,
		input:   ti,
		keys:    newKeyMap(cfg.Multiple, cfg.AllowClear),
		help:    help.New(),
		title:   opts.Title,
		loader:  opts.Loader,
		changes: opts.Changes,
		reload:  opts.Reload,
	}
	if opts.Open {
		m.state.Open()
		m.syncInput()
	}
	return m
}

// State returns the hosted widget state.
func (m Model) State() *selectbox.State {
	return m.state
}

// Result returns the session result. It is only meaningful once the
// program has quit.
func (m Model) Result() Result {
	return m.result
}

// Loading reports whether a remote query is in flight.
func (m Model) Loading() bool {
	return m.loading
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fitViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceMsg:
		if m.loader == nil || !m.loader.Current(msg.ticket) {
			return m, nil
		}
		m.loading = true
		return m, m.fetch(msg.ticket)

	case loadedMsg:
		if m.loader == nil {
			return m, nil
		}
		if m.loader.Current(msg.result.Ticket) {
			m.loading = false
		}
		if items, ok := m.loader.Accept(msg.result); ok {
			m.state.SetItems(items)
		}
		return m, nil

	case dataChangedMsg:
		return m, m.reloadItems()

	case reloadedMsg:
		if msg.err != nil {
			logging.Debug("failed to reload options", "error", msg.err)
		} else {
			m.state.SetItems(msg.items)
		}
		return m, m.waitForChange()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.cancel()
	case key.Matches(msg, m.keys.Done):
		return m.finish()
	case key.Matches(msg, m.keys.Clear):
		before := m.state.Input()
		m.state.Clear()
		return m, m.afterInput(before)
	}

	if msg.Type == tea.KeyEsc && !m.state.IsOpen() {
		return m.cancel()
	}

	before := m.state.Input()
	wasOpen := m.state.IsOpen()

	consumed := false
	for _, k := range toSelectKeys(msg) {
		if m.state.HandleKey(k) {
			consumed = true
		}
	}

	if !consumed && msg.Type == tea.KeyTab {
		m.state.Blur()
	}

	if msg.Type == tea.KeyEnter && wasOpen && !m.state.Config().Multiple {
		if !m.state.IsOpen() && len(m.state.Active()) > 0 {
			return m.finish()
		}
		// Enter on the option that is already selected confirms it.
		if ao := m.state.ActiveOption(); m.state.IsOpen() && m.state.IsSelected(ao) {
			m.state.Close()
			return m.finish()
		}
	}

	return m, m.afterInput(before)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state.Disabled() {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.state.Scroll(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.state.Scroll(1)
		return m, nil
	}

	row := msg.Y - m.listTop()
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.state.IsOpen() {
			m.state.Hover(m.state.ItemAtRow(row))
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == m.matchLine() && !m.state.IsOpen() {
			m.state.Open()
			m.syncInput()
			return m, nil
		}
		if !m.state.IsOpen() {
			return m, nil
		}
		item := m.state.ItemAtRow(row)
		if item == nil {
			return m, nil
		}
		if m.state.Select(item) && !m.state.Config().Multiple {
			return m.finish()
		}
		m.syncInput()
	}
	return m, nil
}

// afterInput mirrors the widget's filter text into the text input and
// schedules a debounced remote query when it changed.
func (m *Model) afterInput(before string) tea.Cmd {
	m.syncInput()
	if m.loader == nil || m.state.Input() == before || !m.state.IsOpen() {
		return nil
	}
	ticket := m.loader.Schedule(m.state.Input())
	return tea.Tick(m.loader.Delay(), func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket}
	})
}

func (m *Model) syncInput() {
	m.input.SetValue(m.state.Input())
	m.input.CursorEnd()
	if len(m.state.Active()) > 0 {
		m.input.Placeholder = ""
	} else {
		m.input.Placeholder = m.state.Config().Placeholder
	}
	if m.state.IsOpen() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) fetch(t loader.Ticket) tea.Cmd {
	l, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return loadedMsg{result: l.Fetch(ctx, t)}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil || m.reload == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}

func (m Model) reloadItems() tea.Cmd {
	reload := m.reload
	return func() tea.Msg {
		items, err := reload()
		return reloadedMsg{items: items, err: err}
	}
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.result = Result{
		Value:  m.state.Value(),
		Active: append([]*option.Item(nil), m.state.Active()...),
	}
	m.quitting = true
	if m.loader != nil {
		m.loader.Close()
	}
	return m, tea.Quit
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	m.result = Result{Cancelled: true}
	m.quitting = true
	if m.loader != nil {
		m.loader.Close()
	}
	return m, tea.Quit
}

// fitViewport shrinks the option window to the terminal when it is
// smaller than the configured height.
func (m *Model) fitViewport() {
	h := m.state.Config().Height
	if m.height > 0 {
		avail := m.height - m.listTop() - chromeBelow
		if avail < 1 {
			avail = 1
		}
		if h <= 0 || h > avail {
			h = avail
		}
	}
	m.state.SetViewportHeight(h)
}
