package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.json")
	if err := os.WriteFile(path, []byte(`["a"]`), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(context.Background(), path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
		t.Fatal("unrelated file triggered a change")
	case <-time.After(100 * time.Millisecond):
	}

	for _, body := range []string{`["a","b"]`, `["a","b","c"]`} {
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change signalled after write")
	}
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}

	w.Close()
	if _, ok := <-w.Changes(); ok {
		t.Error("Changes should be closed after Close")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "options.json"), 0)
	if err == nil {
		t.Error("Watch() on a missing directory should fail")
	}
}
