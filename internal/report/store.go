package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	method        TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	k             INTEGER NOT NULL,
	beta          REAL NOT NULL,
	n             INTEGER NOT NULL,
	converged     INTEGER NOT NULL,
	non_converged INTEGER NOT NULL,
	body          TEXT NOT NULL
)`

// Entry is the listing view of a stored run.
type Entry struct {
	ID           string
	Method       string
	CreatedAt    string
	K            int
	Beta         float64
	N            int
	Converged    int
	NonConverged int
}

// Store persists reports in a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts r. Saving the same id twice is an error.
func (s *Store) Save(ctx context.Context, r Report) error {
	body, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", r.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, method, created_at, k, beta, n, converged, non_converged, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Method, r.CreatedAt, r.Params.K, r.Params.Beta, r.Params.N,
		r.Summary.Converged, r.Summary.NonConverged, string(body))
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. limit ≤ 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, method, created_at, k, beta, n, converged, non_converged
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Method, &e.CreatedAt, &e.K, &e.Beta, &e.N, &e.Converged, &e.NonConverged); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get loads the full report with the given id.
func (s *Store) Get(ctx context.Context, id string) (Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM runs WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Report{}, fmt.Errorf("get run %s: %w", id, err)
	}
	r, err := Unmarshal([]byte(body))
	if err != nil {
		return Report{}, fmt.Errorf("decode run %s: %w", id, err)
	}
	return r, nil
}
