package testutil

import (
	"embed"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture loads a fixture or fails the test.
func MustFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return data
}

// Cities returns the raw candidates of the flat city list.
func Cities() ([]any, error) {
	return loadData("cities.json")
}

// Grouped returns the raw candidates of the grouped produce list.
func Grouped() ([]any, error) {
	return loadData("grouped.yaml")
}

func loadData(name string) ([]any, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.ParseData(name, data)
}
