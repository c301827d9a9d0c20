package selectbox

import (
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/match"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// Phase is the widget's position in its open/closed state machine.
type Phase int

const (
	Closed Phase = iota
	OpenBrowsing
	OpenFiltering
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case OpenBrowsing:
		return "browsing"
	case OpenFiltering:
		return "filtering"
	}
	return "unknown"
}

// Config holds the host-provided settings the widget state depends on.
type Config struct {
	Multiple    bool
	AllowClear  bool
	Placeholder string

	// IDField and TextField name the keys read from raw values passed to
	// WriteValue. They default to "id" and "text".
	IDField   string
	TextField string

	MatchMode match.Mode

	// Height is the number of option rows visible at once; 0 shows all.
	Height int

	// ServerFiltered marks item pools that were already narrowed by a
	// remote source for the current input. Replacing them while open
	// shows the pool as is instead of filtering it again.
	ServerFiltered bool
}

// Transform maps the active set to the value handed to the change callback.
type Transform func(active []*option.Item) any

// DefaultTransform projects each active item to {id, text}.
func DefaultTransform(active []*option.Item) any {
	return option.Project(active)
}

// State is a select box without a screen: the candidate pool, the visible
// options, the committed selection and the highlighted option.
type State struct {
	cfg Config

	items        []*option.Item
	options      []*option.Item
	active       []*option.Item
	activeOption *option.Item

	open     bool
	editing  bool
	disabled bool
	input    string

	behavior Behavior
	viewport Viewport

	sink      Sink
	transform Transform
	onChange  func(any)
	onTouched func()
}

// Option configures a State.
type Option func(*State)

// WithSink sets the notification sink.
func WithSink(sink Sink) Option {
	return func(s *State) {
		s.sink = sink
	}
}

// WithTransform replaces the {id, text} projection handed to the change
// callback.
func WithTransform(t Transform) Option {
	return func(s *State) {
		s.transform = t
	}
}

// WithMatchMode overrides the matcher chosen in Config.
func WithMatchMode(mode match.Mode) Option {
	return func(s *State) {
		s.cfg.MatchMode = mode
	}
}

// WithViewportHeight overrides the number of visible option rows.
func WithViewportHeight(h int) Option {
	return func(s *State) {
		s.cfg.Height = h
		s.viewport.Height = h
	}
}

// New creates a closed widget over items.
func New(items []*option.Item, cfg Config, opts ...Option) *State {
	if cfg.IDField == "" {
		cfg.IDField = "id"
	}
	if cfg.TextField == "" {
		cfg.TextField = "text"
	}
	if cfg.MatchMode == "" {
		cfg.MatchMode = match.Substring
	}

	s := &State{
		cfg:       cfg,
		sink:      NopSink{},
		transform: DefaultTransform,
		onChange:  func(any) {},
		onTouched: func() {},
		viewport:  Viewport{Height: cfg.Height},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.MatchMode == "" {
		s.cfg.MatchMode = match.Substring
	}
	s.SetItems(items)
	return s
}

// Config returns the settings the widget was created with.
func (s *State) Config() Config { return s.cfg }

// Items returns the full candidate pool.
func (s *State) Items() []*option.Item { return s.items }

// Options returns the visible subset of the pool. In grouped mode these are
// copies of the groups holding only their visible children.
func (s *State) Options() []*option.Item { return s.options }

// Active returns the committed selection.
func (s *State) Active() []*option.Item { return s.active }

// ActiveOption returns the highlighted option, or nil.
func (s *State) ActiveOption() *option.Item { return s.activeOption }

// Input returns the filter text.
func (s *State) Input() string { return s.input }

// IsOpen reports whether the option list is shown.
func (s *State) IsOpen() bool { return s.open }

// IsEditing reports whether the search input has focus.
func (s *State) IsEditing() bool { return s.editing }

// Disabled reports whether the widget ignores input.
func (s *State) Disabled() bool { return s.disabled }

// Grouped reports whether the pool is navigated as groups of children.
func (s *State) Grouped() bool {
	_, ok := s.behavior.(*groupedBehavior)
	return ok
}

// Behavior returns the navigation strategy for the current pool.
func (s *State) Behavior() Behavior { return s.behavior }

// Viewport returns the scroll window over the option rows.
func (s *State) Viewport() Viewport { return s.viewport }

// SetViewportHeight resizes the scroll window and keeps the highlighted
// option in view.
func (s *State) SetViewportHeight(h int) {
	s.viewport.Height = h
	s.ensureVisible()
}

// Phase derives the state machine position from the open flag and input.
func (s *State) Phase() Phase {
	switch {
	case !s.open:
		return Closed
	case s.input == "":
		return OpenBrowsing
	default:
		return OpenFiltering
	}
}

// IsActive reports whether item is the highlighted option. Items are
// compared by id within their group.
func (s *State) IsActive(item *option.Item) bool {
	return option.Same(s.activeOption, item)
}

// IsSelected reports whether item is part of the committed selection.
func (s *State) IsSelected(item *option.Item) bool {
	return item != nil && option.IndexOf(s.active, item) >= 0
}

// SetItems replaces the candidate pool wholesale and picks the navigation
// strategy for its shape. The active set is kept as is, even when some of
// its ids are missing from the new pool.
func (s *State) SetItems(items []*option.Item) {
	s.items = items
	s.behavior = newBehavior(s)
	if !s.open {
		s.options = nil
		s.activeOption = nil
		return
	}
	if s.cfg.ServerFiltered {
		s.behavior.Filter("")
	} else {
		s.behavior.Filter(s.input)
	}
}

// Open shows the options filtered by the current input.
func (s *State) Open() {
	if s.disabled {
		return
	}
	s.open = true
	s.editing = true
	s.behavior.Filter(s.input)
}

// OpenWith opens the widget with r as the first character of the filter.
func (s *State) OpenWith(r rune) {
	if s.disabled {
		return
	}
	s.open = true
	s.editing = true
	s.setInput(string(r))
}

// Close hides the options and drops the filter text.
func (s *State) Close() {
	s.open = false
	s.editing = false
	s.input = ""
}

// Blur handles focus leaving the widget.
func (s *State) Blur() {
	s.Close()
	s.onTouched()
}

// SetDisabled toggles the disabled state. Disabling closes the widget.
func (s *State) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.Close()
	}
}

// Type replaces the filter text, opening the widget if needed.
func (s *State) Type(text string) {
	if s.disabled {
		return
	}
	s.open = true
	s.editing = true
	s.setInput(text)
}

func (s *State) setInput(text string) {
	s.input = text
	s.behavior.Filter(text)
	s.sink.Typed(text)
}

// Hover highlights item without committing it, as the pointer does.
func (s *State) Hover(item *option.Item) {
	if s.disabled || item == nil || !item.Selectable() {
		return
	}
	s.activeOption = item
}

// Select commits item. Single-select replaces the selection; multi-select
// appends to it. The widget closes afterwards. It reports whether the
// selection changed.
func (s *State) Select(item *option.Item) bool {
	if s.disabled || item == nil || !item.Selectable() || len(s.options) == 0 {
		return false
	}
	if s.cfg.Multiple {
		if option.IndexOf(s.active, item) >= 0 {
			return false
		}
		s.active = append(s.active[:len(s.active):len(s.active)], item)
	} else {
		s.active = []*option.Item{item}
	}

	s.changed()
	s.sink.Selected(item)
	s.Close()
	return true
}

// SelectActive commits the highlighted option.
func (s *State) SelectActive() bool {
	return s.Select(s.activeOption)
}

// Remove drops item from the selection and reports whether it was there.
func (s *State) Remove(item *option.Item) bool {
	if s.disabled || item == nil {
		return false
	}
	idx := option.IndexOf(s.active, item)
	if idx < 0 {
		return false
	}
	removed := s.active[idx]
	s.active = append(s.active[:idx:idx], s.active[idx+1:]...)

	s.changed()
	s.sink.Removed(removed)
	if s.open {
		s.behavior.Filter(s.input)
	}
	return true
}

// RemoveLast drops the most recently added selection.
func (s *State) RemoveLast() bool {
	if len(s.active) == 0 {
		return false
	}
	return s.Remove(s.active[len(s.active)-1])
}

// Clear empties the selection when the widget allows clearing.
func (s *State) Clear() bool {
	if !s.cfg.AllowClear || s.disabled {
		return false
	}
	cleared := false
	for len(s.active) > 0 {
		if !s.RemoveLast() {
			break
		}
		cleared = true
	}
	return cleared
}

// WriteValue sets the selection from the host's model value without
// notifying the change callback. Entries are strings, option.Value, or maps
// keyed by the configured id and text fields.
func (s *State) WriteValue(values []any) {
	raw := make([]any, 0, len(values))
	for _, v := range values {
		if ov, ok := v.(option.Value); ok {
			v = map[string]any{s.cfg.IDField: ov.ID, s.cfg.TextField: ov.Text}
		}
		raw = append(raw, v)
	}

	var active []*option.Item
	for _, it := range option.Ingest(raw, s.cfg.IDField, s.cfg.TextField) {
		if !it.Selectable() || option.Contains(active, it.ID) {
			continue
		}
		active = append(active, it)
		if !s.cfg.Multiple {
			break
		}
	}
	s.active = active
	if s.open {
		s.behavior.Filter(s.input)
	}
}

// RegisterOnChange sets the callback receiving the transformed selection
// after every change.
func (s *State) RegisterOnChange(fn func(any)) {
	if fn == nil {
		fn = func(any) {}
	}
	s.onChange = fn
}

// RegisterOnTouched sets the callback fired when focus leaves the widget.
func (s *State) RegisterOnTouched(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	s.onTouched = fn
}

// Value returns the transformed selection, as handed to the change callback.
func (s *State) Value() any {
	return s.transform(s.activeCopy())
}

func (s *State) changed() {
	active := s.activeCopy()
	s.sink.Data(active)
	s.onChange(s.transform(active))
}

func (s *State) activeCopy() []*option.Item {
	return append([]*option.Item(nil), s.active...)
}

func (s *State) matcher(pattern string) match.Matcher {
	return match.New(s.cfg.MatchMode, pattern)
}

// Highlight returns the byte offsets in text matched by the filter input.
func (s *State) Highlight(text string) []int {
	_, offsets := s.matcher(s.input).Match(text)
	return offsets
}

func (s *State) ensureVisible() {
	top, height, ok := s.behavior.ActiveSpan()
	if ok {
		s.viewport.EnsureVisible(top, height)
	}
	s.viewport.Clamp(s.behavior.RowCount())
}
