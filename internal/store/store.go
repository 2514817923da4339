// Package store keeps a local history of player events in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	event TEXT NOT NULL,
	mode TEXT NOT NULL,
	button TEXT NOT NULL DEFAULT '',
	track TEXT NOT NULL DEFAULT '',
	bpm INTEGER NOT NULL DEFAULT 0,
	band TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts);
CREATE INDEX IF NOT EXISTS idx_events_session ON events(session);
`

// Store appends player events to a SQLite database.
type Store struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	insert, err := db.Prepare(`INSERT INTO events (ts, event, mode, button, track, bpm, band, session)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &Store{db: db, insert: insert}, nil
}

// Record appends one event.
func (s *Store) Record(e logic.Event) error {
	_, err := s.insert.Exec(e.Timestamp.UnixMilli(), string(e.Type), string(e.Mode),
		e.Button, e.Track, e.BPM, e.Band, e.Session)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Type, err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(limit int) ([]logic.Event, error) {
	rows, err := s.db.Query(`SELECT ts, event, mode, button, track, bpm, band, session
		FROM events ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []logic.Event
	for rows.Next() {
		var (
			e         logic.Event
			ts        int64
			typ, mode string
		)
		if err := rows.Scan(&ts, &typ, &mode, &e.Button, &e.Track, &e.BPM, &e.Band, &e.Session); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		e.Type = logic.EventType(typ)
		e.Mode = logic.Mode(mode)
		out = append(out, e)
	}
	return out, rows.Err()
}

// TrackPlays returns how many times each track was started.
func (s *Store) TrackPlays() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT track, COUNT(*) FROM events
		WHERE event = ? AND track != '' GROUP BY track`, string(logic.EventTrackStarted))
	if err != nil {
		return nil, fmt.Errorf("query plays: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var track string
		var n int
		if err := rows.Scan(&track, &n); err != nil {
			return nil, fmt.Errorf("scan plays: %w", err)
		}
		out[track] = n
	}
	return out, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	var errs []error
	if err := s.insert.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
