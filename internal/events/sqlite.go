package events

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	_ "modernc.org/sqlite"
)

// IsDatabase reports whether path names a SQLite event log rather than a
// JSONL file.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			issued_at_unixms INTEGER NOT NULL,
			session TEXT NOT NULL,
			type TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS events_session ON events(session, seq);",
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// insertEvent appends one marshalled event to the database at path.
func insertEvent(ctx context.Context, path string, event Event, payload []byte) error {
	db, err := openDatabase(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open event database: %w", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		"INSERT INTO events (issued_at_unixms, session, type, payload_json) VALUES (?, ?, ?, ?)",
		event.Timestamp.UnixMilli(), event.Session, string(event.Type), string(payload))
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// databaseEvents reads the events of the database at path in insertion
// order. A non-empty session restricts the rows read.
func databaseEvents(ctx context.Context, path, session string) ([]Event, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := openDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event database: %w", err)
	}
	defer db.Close()

	query := "SELECT payload_json FROM events ORDER BY seq"
	var args []any
	if session != "" {
		query = "SELECT payload_json FROM events WHERE session = ? ORDER BY seq"
		args = append(args, session)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return events, fmt.Errorf("failed to read event: %w", err)
		}
		var event Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
