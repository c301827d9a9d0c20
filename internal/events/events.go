// Package events records select box notifications as JSON Lines, or in a
// SQLite database when the log path ends in .db, .sqlite or .sqlite3.
// A log may hold the events of several sessions.
package events

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// Type classifies a notification.
type Type string

const (
	TypeSelected Type = "selected"
	TypeRemoved  Type = "removed"
	TypeTyped    Type = "typed"
	TypeData     Type = "data"
)

// Event is a single log entry. ID and Text describe the item of selected
// and removed events; Query is the filter text of typed events; Count and
// Values describe the active set of data events.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      Type           `json:"type"`
	Session   string         `json:"session,omitempty"`
	ID        string         `json:"id,omitempty"`
	Text      string         `json:"text,omitempty"`
	Query     string         `json:"query,omitempty"`
	Count     int            `json:"count,omitempty"`
	Values    []option.Value `json:"values,omitempty"`
}

// Logger appends events to a JSONL file. It implements selectbox.Sink.
type Logger struct {
	path    string
	session string

	mu sync.Mutex
}

// NewLogger creates a logger writing to path. Every event carries session.
func NewLogger(path, session string) *Logger {
	return &Logger{path: path, session: session}
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event to the log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Session == "" {
		event.Session = l.session
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create event log directory: %w", err)
	}

	if IsDatabase(l.path) {
		return insertEvent(context.Background(), l.path, event, data)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// record logs an event from a notification, where errors cannot be
// returned.
func (l *Logger) record(event Event) {
	if err := l.Log(event); err != nil {
		logging.Debug("failed to record event", "type", event.Type, "error", err)
	}
}

// Selected records a committed option.
func (l *Logger) Selected(item *option.Item) {
	l.record(Event{Type: TypeSelected, ID: item.ID, Text: item.Text})
}

// Removed records an option leaving the selection.
func (l *Logger) Removed(item *option.Item) {
	l.record(Event{Type: TypeRemoved, ID: item.ID, Text: item.Text})
}

// Typed records a change of the filter text.
func (l *Logger) Typed(text string) {
	l.record(Event{Type: TypeTyped, Query: text})
}

// Data records the selection after a change.
func (l *Logger) Data(active []*option.Item) {
	l.record(Event{Type: TypeData, Count: len(active), Values: option.Project(active)})
}

// Events reads all events in path in the order they were written. A
// missing file holds no events. Malformed lines are skipped.
func Events(path string) ([]Event, error) {
	if IsDatabase(path) {
		return databaseEvents(context.Background(), path, "")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading event log: %w", err)
	}

	return events, nil
}

// SessionEvents reads the events of one session in path. Databases filter
// in the query.
func SessionEvents(path, session string) ([]Event, error) {
	if IsDatabase(path) {
		return databaseEvents(context.Background(), path, session)
	}
	events, err := Events(path)
	return BySession(events, session), err
}

// BySession returns the events of one session.
func BySession(events []Event, session string) []Event {
	var out []Event
	for _, e := range events {
		if e.Session == session {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes the event log.
func (l *Logger) Remove() error {
	paths := []string{l.path}
	if IsDatabase(l.path) {
		paths = append(paths, l.path+"-wal", l.path+"-shm")
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
