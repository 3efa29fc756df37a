package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Status values recorded for a request
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS requests (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT    NOT NULL,
	created_at  INTEGER NOT NULL,
	endpoint    TEXT    NOT NULL,
	language    TEXT    NOT NULL,
	leaves      INTEGER NOT NULL DEFAULT 0,
	structured  INTEGER NOT NULL DEFAULT 0,
	raw         INTEGER NOT NULL DEFAULT 0,
	original    INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	status      TEXT    NOT NULL,
	error       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);`

// Entry is one recorded request
type Entry struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	Time       time.Time `json:"time"`
	Endpoint   string    `json:"endpoint"`
	Language   string    `json:"language"`
	Leaves     int       `json:"leaves"`
	Structured int       `json:"structured"`
	Raw        int       `json:"raw"`
	Original   int       `json:"original"`
	Duration   int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// Statistics aggregates all recorded requests
type Statistics struct {
	Requests    int     `json:"requests"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
	Leaves      int     `json:"leaves"`
	Degraded    int     `json:"degraded_leaves"`
}

// Store is a SQLite-backed request log
type Store struct {
	db *sql.DB
}

// Open opens or creates the log at path. ":memory:" gives a private
// in-memory log.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite serialises writers; one connection also keeps ":memory:" shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends e to the log and returns its ID. A zero Time is set to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO requests
		(request_id, created_at, endpoint, language, leaves, structured, raw, original, duration_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Time.UnixMilli(), e.Endpoint, e.Language,
		e.Leaves, e.Structured, e.Raw, e.Original, e.Duration, e.Status, e.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to record request %s: %w", e.RequestID, err)
	}

	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, request_id, created_at, endpoint, language, leaves, structured, raw, original, duration_ms, status, error
		FROM requests ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var millis int64
		if err := rows.Scan(&e.ID, &e.RequestID, &millis, &e.Endpoint, &e.Language,
			&e.Leaves, &e.Structured, &e.Raw, &e.Original, &e.Duration, &e.Status, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to read history row: %w", err)
		}
		e.Time = time.UnixMilli(millis)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats aggregates the whole log
func (s *Store) Stats(ctx context.Context) (Statistics, error) {
	var st Statistics
	err := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(leaves), 0),
		COALESCE(SUM(original), 0)
		FROM requests`, StatusSuccess).Scan(&st.Requests, &st.Succeeded, &st.Leaves, &st.Degraded)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to compute history statistics: %w", err)
	}

	st.Failed = st.Requests - st.Succeeded
	if st.Requests > 0 {
		st.SuccessRate = float64(st.Succeeded) / float64(st.Requests)
	}
	return st, nil
}
