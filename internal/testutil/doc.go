// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/cities.json    flat list of maps and plain strings
//	fixtures/grouped.yaml   two groups, one without an id
//	fixtures/static.toml    settings reading cities.json
//	fixtures/payload.json   remote response nested under data.results
//	fixtures/invalid.json   settings combining data and ajax
//
// Raw candidates are available parsed:
//
//	raw, err := testutil.Cities()
//	raw, err := testutil.Grouped()
//
// # Test Environment
//
// TestEnv is a temporary directory for settings and data files:
//
//	env := testutil.NewTestEnv(t)
//	env.CopyFixture("cities.json")
//	path := env.CopyFixture("static.toml")
//
// # Remote Server
//
// RemoteServer answers every request with a fixed payload:
//
//	srv := testutil.NewRemoteServer(t, testutil.MustFixture(t, "payload.json"))
//	settings.Ajax = &config.Ajax{URL: srv.SearchURL(), ResponsePath: "data.results"}
//	// srv.Queries() lists the received filter texts
package testutil
