package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/events"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/testutil"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/tui"
)

// captureUserOutput redirects user-facing output for the test
func captureUserOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetUserOutput(&buf, &buf)
	t.Cleanup(func() { logging.SetUserOutput(nil, nil) })
	return &buf
}

func TestLoadApp(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CopyFixture("cities.json")
	static := env.CopyFixture("static.toml")

	tests := []struct {
		name     string
		flags    sourceFlags
		wantCode int
		check    func(t *testing.T, a *app.App)
	}{
		{
			name:  "items",
			flags: sourceFlags{items: `Berlin "New York" 'São Paulo'`},
			check: func(t *testing.T, a *app.App) {
				want := []any{"Berlin", "New York", "São Paulo"}
				if diff := cmp.Diff(want, a.Settings.Data); diff != "" {
					t.Errorf("data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "items replace the data file",
			flags: sourceFlags{config: static, items: "a b"},
			check: func(t *testing.T, a *app.App) {
				if a.Settings.DataFile != "" {
					t.Errorf("DataFile = %q, want empty", a.Settings.DataFile)
				}
				if !a.Settings.Multiple {
					t.Error("settings file should still apply")
				}
			},
		},
		{
			name:  "url",
			flags: sourceFlags{url: "https://example.com/?q=SEARCH_VALUE", responsePath: "data"},
			check: func(t *testing.T, a *app.App) {
				if !a.Remote() {
					t.Fatal("app should be remote")
				}
				if a.Settings.Ajax.ResponsePath != "data" {
					t.Errorf("ResponsePath = %q, want data", a.Settings.Ajax.ResponsePath)
				}
			},
		},
		{
			name:  "overrides",
			flags: sourceFlags{items: "a", multiple: true, placeholder: "Pick", matchMode: "fuzzy"},
			check: func(t *testing.T, a *app.App) {
				s := a.Settings
				if !s.Multiple || s.Placeholder != "Pick" || s.MatchMode != "fuzzy" {
					t.Errorf("settings = %+v", s)
				}
			},
		},
		{name: "unterminated quote", flags: sourceFlags{items: `"Berlin`}, wantCode: errors.ExitConfigError},
		{name: "bad match mode", flags: sourceFlags{items: "a", matchMode: "regex"}, wantCode: errors.ExitConfigError},
		{name: "bad url", flags: sourceFlags{url: "ftp://example.com"}, wantCode: errors.ExitConfigError},
		{name: "missing settings", flags: sourceFlags{config: env.Path("nope.toml")}, wantCode: errors.ExitConfigError},
		{name: "no source", flags: sourceFlags{}, wantCode: errors.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := loadApp(tt.flags)
			if tt.wantCode != 0 {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if got := errors.GetExitCode(err); got != tt.wantCode {
					t.Errorf("exit code = %d, want %d (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadApp failed: %v", err)
			}
			tt.check(t, a)
		})
	}
}

func TestEventsOption(t *testing.T) {
	a := app.New(eventsOption("", ""))
	if a.Events != nil {
		t.Error("no events path should leave Events nil")
	}

	path := filepath.Join(t.TempDir(), "events.jsonl")
	a = app.New(eventsOption(path, "s1"))
	if a.Events == nil || a.Events.Path() != path {
		t.Errorf("Events = %v, want a logger for %s", a.Events, path)
	}

	a = app.New(eventsOption(path, ""))
	a.Events.Typed("x")
	evs, err := events.Events(path)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if _, err := uuid.Parse(evs[len(evs)-1].Session); err != nil {
		t.Errorf("generated session %q should be a UUID: %v", evs[len(evs)-1].Session, err)
	}
}

func TestFilterOptions(t *testing.T) {
	raw, err := testutil.Grouped()
	if err != nil {
		t.Fatalf("Grouped() error: %v", err)
	}
	a := app.New(app.WithSettings(&config.Settings{Data: raw}))

	var out bytes.Buffer
	if err := filterOptions(context.Background(), a, "k", false, &out); err != nil {
		t.Fatalf("filterOptions failed: %v", err)
	}
	want := "Vegetables:\n  > Leek\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	if err := filterOptions(context.Background(), a, "an", true, &out); err != nil {
		t.Fatalf("filterOptions failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != `[{"id":"banana","text":"Banana"}]` {
		t.Errorf("values = %s", got)
	}
}

func TestFilterOptions_Remote(t *testing.T) {
	srv := testutil.NewRemoteServer(t, testutil.MustFixture(t, "payload.json"))

	a, err := loadApp(sourceFlags{url: srv.SearchURL(), responsePath: "data.results"})
	if err != nil {
		t.Fatalf("loadApp failed: %v", err)
	}

	var out bytes.Buffer
	if err := filterOptions(context.Background(), a, "li", false, &out); err != nil {
		t.Fatalf("filterOptions failed: %v", err)
	}
	if got := out.String(); got != "> Lisbon\n  Lima\n" {
		t.Errorf("output = %q", got)
	}

	srv.SetStatus(503)
	err = filterOptions(context.Background(), a, "li", false, &out)
	if got := errors.GetExitCode(err); got != errors.ExitLoadError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitLoadError)
	}
}

func TestReportResult(t *testing.T) {
	var out bytes.Buffer

	err := reportResult(&out, tui.Result{Cancelled: true})
	if got := errors.GetExitCode(err); got != errors.ExitCancelled {
		t.Errorf("cancelled exit code = %d, want %d", got, errors.ExitCancelled)
	}

	err = reportResult(&out, tui.Result{Value: []option.Value{}})
	if got := errors.GetExitCode(err); got != errors.ExitNoSelection {
		t.Errorf("empty exit code = %d, want %d", got, errors.ExitNoSelection)
	}

	active := []*option.Item{option.New("2", "Bern")}
	if err := reportResult(&out, tui.Result{Active: active, Value: option.Project(active)}); err != nil {
		t.Fatalf("reportResult failed: %v", err)
	}
	if got := out.String(); got != `[{"id":"2","text":"Bern"}]`+"\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSelectionText(t *testing.T) {
	active := []*option.Item{option.New("1", "<b>Berlin</b>"), option.New("2", "Bern")}
	if got := selectionText(active); got != "Berlin\nBern" {
		t.Errorf("selectionText() = %q, want %q", got, "Berlin\nBern")
	}
	if got := selectionText(nil); got != "" {
		t.Errorf("selectionText(nil) = %q, want empty", got)
	}
}

func TestValidateSettings(t *testing.T) {
	buf := captureUserOutput(t)
	env := testutil.NewTestEnv(t)
	env.CopyFixture("cities.json")

	if err := validateSettings(env.CopyFixture("static.toml")); err != nil {
		t.Fatalf("validateSettings failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(5 options)") {
		t.Errorf("output = %q, want the option count", buf.String())
	}

	buf.Reset()
	remote := env.WriteSettings("remote.json", &config.Settings{Ajax: &config.Ajax{URL: "https://example.com/?q=SEARCH_VALUE"}})
	if err := validateSettings(remote); err != nil {
		t.Fatalf("validateSettings failed: %v", err)
	}
	if !strings.Contains(buf.String(), "remote source") {
		t.Errorf("output = %q, want the remote source", buf.String())
	}

	if err := validateSettings(env.CopyFixture("invalid.json")); err == nil {
		t.Error("invalid settings should fail")
	}

	missing := env.WriteFile("missing.yaml", "dataFile: gone.json\n")
	if got := errors.GetExitCode(validateSettings(missing)); got != errors.ExitLoadError {
		t.Errorf("missing data file exit code = %d, want %d", got, errors.ExitLoadError)
	}
}

func TestPrintEvents(t *testing.T) {
	captureUserOutput(t)
	path := filepath.Join(t.TempDir(), "events.jsonl")

	first := events.NewLogger(path, "one")
	first.Typed("be")
	first.Selected(option.New("2", "Bern"))
	first.Data([]*option.Item{option.New("2", "Bern")})
	events.NewLogger(path, "two").Removed(option.New("2", "Bern"))

	var out bytes.Buffer
	if err := printEvents(&out, path, "", false); err != nil {
		t.Fatalf("printEvents failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want a header and 4 events:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "DETAIL") {
		t.Errorf("header = %q", lines[0])
	}
	for i, want := range [][]string{
		{"one", "typed", `"be"`},
		{"one", "selected", "Bern (2)"},
		{"one", "data", "1 active [Bern]"},
		{"two", "removed", "Bern (2)"},
	} {
		for _, part := range want {
			if !strings.Contains(lines[i+1], part) {
				t.Errorf("line %d = %q, want it to contain %q", i+1, lines[i+1], part)
			}
		}
	}

	out.Reset()
	if err := printEvents(&out, path, "two", true); err != nil {
		t.Fatalf("printEvents failed: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if strings.Count(got, "\n") != 0 || !strings.Contains(got, `"type":"removed"`) {
		t.Errorf("json output = %q, want one removed event", got)
	}
}

func TestPrintEvents_Database(t *testing.T) {
	captureUserOutput(t)
	path := filepath.Join(t.TempDir(), "events.db")

	events.NewLogger(path, "one").Typed("ro")
	events.NewLogger(path, "two").Selected(option.New("4", "Rome"))

	var out bytes.Buffer
	if err := printEvents(&out, path, "two", false); err != nil {
		t.Fatalf("printEvents failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Rome (4)") {
		t.Errorf("output = %q, want the header and the session two event", out.String())
	}
}

func TestPrintEvents_Empty(t *testing.T) {
	buf := captureUserOutput(t)

	var out bytes.Buffer
	if err := printEvents(&out, filepath.Join(t.TempDir(), "none.jsonl"), "", false); err != nil {
		t.Fatalf("printEvents failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
	if !strings.Contains(buf.String(), "No events found") {
		t.Errorf("user output = %q", buf.String())
	}
}

func TestWriteStarter(t *testing.T) {
	captureUserOutput(t)
	dir := t.TempDir()

	for _, name := range []string{"select.toml", "select.yaml", "select.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := writeStarter(path, "", false); err != nil {
				t.Fatalf("writeStarter failed: %v", err)
			}
			s, err := config.Load(path)
			if err != nil {
				t.Fatalf("starter settings should load: %v", err)
			}
			if len(s.Data) != 3 || !s.AllowClear {
				t.Errorf("settings = %+v", s)
			}

			if err := writeStarter(path, "", false); err == nil {
				t.Error("existing file should not be overwritten without force")
			}
			if err := writeStarter(path, "https://example.com/?q=SEARCH_VALUE", true); err != nil {
				t.Fatalf("writeStarter with force failed: %v", err)
			}
			s, err = config.Load(path)
			if err != nil {
				t.Fatalf("remote starter should load: %v", err)
			}
			if s.Ajax == nil || len(s.Data) != 0 {
				t.Errorf("settings = %+v, want a remote source only", s)
			}
		})
	}
}
