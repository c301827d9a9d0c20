package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/events"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/loader"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/match"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/tui"
)

// App holds the application dependencies
type App struct {
	// Settings is the loaded widget configuration
	Settings *config.Settings

	// ConfigDir anchors relative data files
	ConfigDir string

	// Client performs remote queries
	Client *http.Client

	// Events records widget notifications, if set
	Events *events.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets the widget settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithConfigDir sets the directory data files are resolved against
func WithConfigDir(dir string) Option {
	return func(a *App) {
		a.ConfigDir = dir
	}
}

// WithHTTPClient sets the client used by remote sources
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.Client = c
	}
}

// WithEvents sets the notification log
func WithEvents(l *events.Logger) Option {
	return func(a *App) {
		a.Events = l
	}
}

// New creates a new App with the given options.
// Without WithSettings the defaults are used.
func New(opts ...Option) *App {
	app := &App{ConfigDir: "."}

	for _, opt := range opts {
		opt(app)
	}

	if app.Settings == nil {
		app.Settings = &config.Settings{}
	}
	app.Settings.ApplyDefaults()

	return app
}

// Load creates an App from a settings file. Data files resolve against the
// file's directory.
func Load(path string, opts ...Option) (*App, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, errors.ConfigError("failed to load settings", err)
	}
	opts = append([]Option{WithConfigDir(filepath.Dir(path))}, opts...)
	return New(append(opts, WithSettings(settings))...), nil
}

// Remote reports whether options come from a remote source.
func (a *App) Remote() bool {
	return a.Settings.Ajax != nil
}

// DataFile returns the confined path of the settings' data file, or "".
func (a *App) DataFile() (string, error) {
	if a.Settings.DataFile == "" {
		return "", nil
	}
	path, err := a.Settings.ResolveDataFile(a.ConfigDir)
	if err != nil {
		return "", errors.ConfigError("invalid data file", err)
	}
	return path, nil
}

// Items returns the static candidate pool: inline data or the data file.
// Remote settings have no static pool.
func (a *App) Items() ([]*option.Item, error) {
	s := a.Settings
	raw := s.Data

	path, err := a.DataFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		raw, err = config.LoadDataFile(path)
		if err != nil {
			return nil, errors.LoadFailed(path, err)
		}
	}

	items := option.Ingest(raw, s.IDField, s.TextField)
	logging.Debug("loaded options", "count", len(items), "grouped", option.AnyHasChildren(items))
	return items, nil
}

// Config returns the widget configuration for the settings.
func (a *App) Config() (selectbox.Config, error) {
	s := a.Settings
	mode, err := match.ParseMode(s.MatchMode)
	if err != nil {
		return selectbox.Config{}, errors.ConfigError("invalid matchMode", err)
	}
	return selectbox.Config{
		Multiple:       s.Multiple,
		AllowClear:     s.AllowClear,
		Placeholder:    s.Placeholder,
		IDField:        s.IDField,
		TextField:      s.TextField,
		MatchMode:      mode,
		Height:         s.Height,
		ServerFiltered: a.Remote(),
	}, nil
}

// Source returns the remote source for the settings, or nil.
func (a *App) Source() loader.Source {
	ajax := a.Settings.Ajax
	if ajax == nil {
		return nil
	}
	return &loader.Remote{
		URL:          ajax.URL,
		Method:       ajax.RequestType,
		AuthToken:    ajax.Token(),
		IDField:      a.Settings.IDField,
		TextField:    a.Settings.TextField,
		ResponsePath: ajax.ResponsePath,
		Client:       a.Client,
	}
}

// Loader returns a debounced loader over the remote source, or nil.
func (a *App) Loader() *loader.Loader {
	src := a.Source()
	if src == nil {
		return nil
	}
	return loader.New(src, a.Settings.Debounce())
}

// Sink returns the notification sink.
func (a *App) Sink() selectbox.Sink {
	if a.Events == nil {
		return selectbox.NopSink{}
	}
	return a.Events
}

// State builds a widget over the static pool with the configured initial
// selection.
func (a *App) State() (*selectbox.State, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	var items []*option.Item
	if !a.Remote() {
		if items, err = a.Items(); err != nil {
			return nil, err
		}
	}
	state := selectbox.New(items, cfg, selectbox.WithSink(a.Sink()))
	state.WriteValue(a.Settings.Active)
	state.SetDisabled(a.Settings.Disabled)
	return state, nil
}

// Filter returns a widget opened with pattern typed in. Remote settings
// query the source once and fail on fetch errors.
func (a *App) Filter(ctx context.Context, pattern string) (*selectbox.State, error) {
	state, err := a.State()
	if err != nil {
		return nil, err
	}

	if !a.Remote() {
		state.Type(pattern)
		return state, nil
	}

	l := a.Loader()
	defer l.Close()
	items, err := l.Search(ctx, pattern)
	if err != nil {
		return nil, errors.LoadFailed(a.Settings.Ajax.URL, err)
	}
	state.Type(pattern)
	state.SetItems(items)
	return state, nil
}

// Session is everything needed to run the widget. Close releases the data
// file watcher.
type Session struct {
	Options tui.Options
	watcher *loader.Watcher
}

// Close stops watching the data file.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

// Session assembles the terminal program options. ctx bounds the data file
// watcher.
func (a *App) Session(ctx context.Context, title string) (*Session, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}

	opts := tui.Options{
		Title:    title,
		Config:   cfg,
		Active:   a.Settings.Active,
		Disabled: a.Settings.Disabled,
		Sink:     a.Sink(),
		Open:     true,
	}

	if a.Remote() {
		opts.Loader = a.Loader()
		return &Session{Options: opts}, nil
	}

	if opts.Items, err = a.Items(); err != nil {
		return nil, err
	}

	sess := &Session{Options: opts}
	if !a.Settings.Watch {
		return sess, nil
	}

	path, err := a.DataFile()
	if err != nil {
		return nil, err
	}
	w, err := loader.Watch(ctx, path, loader.DefaultWatchDebounce)
	if err != nil {
		return nil, errors.LoadFailed(path, fmt.Errorf("failed to watch data file: %w", err))
	}
	sess.watcher = w
	sess.Options.Changes = w.Changes()
	sess.Options.Reload = a.Items
	return sess, nil
}
