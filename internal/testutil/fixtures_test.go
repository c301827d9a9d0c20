package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
)

func TestFixtures(t *testing.T) {
	cities, err := Cities()
	if err != nil {
		t.Fatalf("Cities() error: %v", err)
	}
	if len(cities) != 5 {
		t.Errorf("len(Cities()) = %d, want 5", len(cities))
	}
	if cities[4] != "Oslo" {
		t.Errorf("Cities()[4] = %v, want Oslo", cities[4])
	}

	grouped, err := Grouped()
	if err != nil {
		t.Fatalf("Grouped() error: %v", err)
	}
	if len(grouped) != 2 {
		t.Errorf("len(Grouped()) = %d, want 2", len(grouped))
	}

	if _, err := LoadFixture("missing.json"); err == nil {
		t.Error("LoadFixture should fail for a missing fixture")
	}
}

func TestSettingsFixtures(t *testing.T) {
	env := NewTestEnv(t)
	env.CopyFixture("cities.json")

	s, err := config.Load(env.CopyFixture("static.toml"))
	if err != nil {
		t.Fatalf("static.toml should load: %v", err)
	}
	if !s.Multiple || s.DataFile != "cities.json" {
		t.Errorf("static.toml = %+v", s)
	}

	if _, err := config.Load(env.CopyFixture("invalid.json")); err == nil {
		t.Error("invalid.json should fail validation")
	}
}

func TestRemoteServer(t *testing.T) {
	srv := NewRemoteServer(t, []byte(`[]`))

	resp, err := http.Get(srv.URL + "/search?q=ber")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "[]" {
		t.Errorf("body = %q, want []", body)
	}
	if got := srv.Queries(); len(got) != 1 || got[0] != "ber" {
		t.Errorf("Queries() = %v, want [ber]", got)
	}

	srv.SetStatus(http.StatusBadGateway)
	resp, err = http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadGateway)
	}
}
