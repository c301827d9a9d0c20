package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

func ids(items []*option.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestStatic(t *testing.T) {
	src := Static{Items: []*option.Item{option.New("1", "A")}}

	items, err := src.Load(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx, ""); err == nil {
		t.Error("Load() with a cancelled context should fail")
	}
}

func TestRemote_Get(t *testing.T) {
	var gotQuery, gotAuth, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "text": "Berlin"}, {"id": "b", "text": "Bern"}, {"text": "no id"}]`))
	}))
	defer srv.Close()

	src := &Remote{
		URL:       srv.URL + "/cities?q=SEARCH_VALUE",
		AuthToken: "tok",
	}
	items, err := src.Load(context.Background(), "ber & co")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if gotQuery != "ber & co" {
		t.Errorf("query = %q, want %q", gotQuery, "ber & co")
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok")
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %q, want GET", gotMethod)
	}
	if diff := cmp.Diff([]string{"1", "b"}, ids(items)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRemote_PostWithResponsePath(t *testing.T) {
	var gotMethod string
	var bodyLen int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		bodyLen = r.ContentLength
		w.Write([]byte(`{"data": {"results": [{"key": "x", "label": "Ex"}]}}`))
	}))
	defer srv.Close()

	src := &Remote{
		URL:          srv.URL,
		Method:       "post",
		IDField:      "key",
		TextField:    "label",
		ResponsePath: "data.results",
	}
	items, err := src.Load(context.Background(), "e")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if bodyLen > 0 {
		t.Errorf("POST should carry no body, got %d bytes", bodyLen)
	}
	if len(items) != 1 || items[0].ID != "x" || items[0].Text != "Ex" {
		t.Errorf("items = %+v, want x/Ex", items)
	}
}

func TestRemote_CustomExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"names": ["one", "two"]}`))
	}))
	defer srv.Close()

	src := &Remote{
		URL: srv.URL,
		Extract: func(payload any) []any {
			m, _ := payload.(map[string]any)
			names, _ := m["names"].([]any)
			return names
		},
	}
	items, err := src.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, ids(items)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRemote_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		wantErr string
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: "unexpected status",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
			wantErr: "decode response",
		},
		{
			name:    "bad method",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			method:  "DELETE",
			wantErr: "unsupported request type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := (&Remote{URL: srv.URL, Method: tt.method}).Load(context.Background(), "")
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRemote_NonArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "text": "lonely"}`))
	}))
	defer srv.Close()

	items, err := (&Remote{URL: srv.URL}).Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestWalk(t *testing.T) {
	payload := map[string]any{
		"a": map[string]any{"b": []any{"x"}},
		"s": "scalar",
	}

	tests := []struct {
		path string
		want int
	}{
		{"a.b", 1},
		{"a", 0},
		{"a.b.c", 0},
		{"s.t", 0},
		{"missing", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := len(Walk(payload, tt.path)); got != tt.want {
			t.Errorf("Walk(%q) returned %d entries, want %d", tt.path, got, tt.want)
		}
	}

	if got := len(Walk([]any{1, 2}, "")); got != 2 {
		t.Errorf("Walk(array, \"\") returned %d entries, want 2", got)
	}
}
