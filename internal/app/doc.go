// Package app wires the select box collaborators from settings.
//
// The App struct holds the loaded settings and the dependencies the widget
// is built from:
//
//	type App struct {
//	    Settings  *config.Settings // Widget configuration
//	    ConfigDir string           // Anchor for relative data files
//	    Client    *http.Client     // Client for remote queries
//	    Events    *events.Logger   // Optional notification log
//	}
//
// # Creating an App
//
// Use Load for a settings file or New with functional options:
//
//	a, err := app.Load("select.toml", app.WithEvents(logger))
//
//	// Testing with inline settings
//	a := app.New(
//	    app.WithSettings(&config.Settings{Data: []any{"Berlin", "Bern"}}),
//	    app.WithHTTPClient(srv.Client()),
//	)
//
// # Products
//
//	a.Items()            // Static pool from data or dataFile
//	a.Loader()           // Debounced remote loader, nil without ajax
//	a.State()            // Widget over the static pool with the initial selection
//	a.Filter(ctx, text)  // Widget with text typed in, querying the remote once
//	a.Session(ctx, name) // tui.Options plus the data file watcher
package app
