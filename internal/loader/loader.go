package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// DefaultDelay is the debounce delay used when none is configured.
const DefaultDelay = 250 * time.Millisecond

// ErrStale is returned in a Result whose ticket was superseded before the
// request started.
var ErrStale = errors.New("query superseded")

// Ticket identifies one scheduled query.
type Ticket struct {
	Gen   uint64
	Query string
}

// Result is the outcome of fetching a ticket.
type Result struct {
	Ticket
	Items []*option.Item
	Err   error
}

// Loader debounces queries to a Source and drops results of superseded
// queries.
type Loader struct {
	source Source
	delay  time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// New creates a loader. A negative delay selects DefaultDelay.
func New(source Source, delay time.Duration) *Loader {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Loader{source: source, delay: delay}
}

// Delay returns the debounce delay.
func (l *Loader) Delay() time.Duration {
	return l.delay
}

// Schedule issues a ticket for query and cancels the request in flight, if
// any. Earlier tickets become stale.
func (l *Loader) Schedule(query string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return Ticket{Gen: l.gen, Query: query}
}

// Current reports whether t is the latest ticket.
func (l *Loader) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return t.Gen == l.gen
}

// Fetch loads the items for t. It returns immediately with ErrStale when a
// newer ticket exists.
func (l *Loader) Fetch(ctx context.Context, t Ticket) Result {
	l.mu.Lock()
	if t.Gen != l.gen {
		l.mu.Unlock()
		return Result{Ticket: t, Err: ErrStale}
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	defer cancel()
	items, err := l.source.Load(ctx, t.Query)

	l.mu.Lock()
	if l.gen == t.Gen {
		l.cancel = nil
	}
	l.mu.Unlock()

	return Result{Ticket: t, Items: items, Err: err}
}

// Accept returns the items of r when r belongs to the latest ticket and
// succeeded. Errors are logged and swallowed.
func (l *Loader) Accept(r Result) ([]*option.Item, bool) {
	if !l.Current(r.Ticket) {
		logging.Debug("dropping stale load result", "query", r.Query, "gen", r.Gen)
		return nil, false
	}
	if r.Err != nil {
		logging.Debug("load failed", "query", r.Query, "error", r.Err)
		return nil, false
	}
	return r.Items, true
}

// Search schedules and fetches query at once, without debouncing, and
// returns the error instead of swallowing it.
func (l *Loader) Search(ctx context.Context, query string) ([]*option.Item, error) {
	res := l.Fetch(ctx, l.Schedule(query))
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Items, nil
}

// Close cancels the request in flight.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
