package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// SearchPlaceholder is replaced with the query in a Remote URL template.
const SearchPlaceholder = "SEARCH_VALUE"

// DefaultTimeout bounds a single remote request when no client is supplied.
const DefaultTimeout = 10 * time.Second

// maxPayloadBytes caps how much of a response body is decoded.
const maxPayloadBytes = 8 << 20

// Source returns the candidate items for a query.
type Source interface {
	Load(ctx context.Context, query string) ([]*option.Item, error)
}

// Static is a fixed collection. The query is ignored; the widget filters
// the pool itself.
type Static struct {
	Items []*option.Item
}

// Load returns the collection.
func (s Static) Load(ctx context.Context, query string) ([]*option.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Items, nil
}

// Remote queries an HTTP endpoint with the filter text.
type Remote struct {
	// URL may contain SEARCH_VALUE, replaced by the query-escaped filter text.
	URL string

	// Method is GET or POST, case-insensitive. Empty means GET. POST
	// requests carry no body.
	Method string

	// AuthToken, when set, is sent as a bearer token.
	AuthToken string

	IDField   string
	TextField string

	// ResponsePath is a dot-separated path to the candidate array inside
	// the payload, e.g. "data.results". Empty means the payload itself.
	ResponsePath string

	// Extract overrides the ResponsePath walk.
	Extract func(payload any) []any

	// Client defaults to an http.Client with DefaultTimeout.
	Client *http.Client
}

// Load fetches and decodes the candidates for query.
func (r *Remote) Load(ctx context.Context, query string) ([]*option.Item, error) {
	req, err := r.newRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request %s: unexpected status %s", req.URL.Redacted(), resp.Status)
	}

	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	extract := r.Extract
	if extract == nil {
		extract = func(p any) []any { return Walk(p, r.ResponsePath) }
	}

	idField, textField := r.IDField, r.TextField
	if idField == "" {
		idField = "id"
	}
	if textField == "" {
		textField = "text"
	}
	return option.Ingest(extract(payload), idField, textField), nil
}

func (r *Remote) newRequest(ctx context.Context, query string) (*http.Request, error) {
	method := strings.ToUpper(r.Method)
	switch method {
	case "":
		method = http.MethodGet
	case http.MethodGet, http.MethodPost:
	default:
		return nil, fmt.Errorf("unsupported request type %q", r.Method)
	}

	target := strings.ReplaceAll(r.URL, SearchPlaceholder, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid remote URL: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.AuthToken)
	}
	return req, nil
}

// Walk follows a dot-separated path through nested objects and returns the
// array found there, or nil.
func Walk(payload any, path string) []any {
	cur := payload
	if path != "" {
		for _, key := range strings.Split(path, ".") {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		}
	}
	arr, _ := cur.([]any)
	return arr
}
