package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/validate"
)

const (
	dirPermissions = 0750

	defaultListLimit = 20
	maxListLimit     = 200
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    board      TEXT NOT NULL,
    mcu        TEXT NOT NULL,
    errors     INTEGER NOT NULL,
    warnings   INTEGER NOT NULL,
    infos      INTEGER NOT NULL,
    findings   TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

// Run is one recorded validation run, newest-first in listings.
type Run struct {
	ID        string
	Board     string
	MCU       string
	Errors    int
	Warnings  int
	Infos     int
	CreatedAt time.Time
}

// Store is a SQLite-backed archive of validation reports.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// ensures the schema exists. The directory is created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one finished report and returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, meta board.Meta, rep *validate.Report) (string, error) {
	findings, err := json.Marshal(rep.Findings)
	if err != nil {
		return "", fmt.Errorf("marshalling findings: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (id, board, mcu, errors, warnings, infos, findings) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id,
		meta.Name,
		meta.MCU,
		len(rep.Errors()),
		len(rep.Warnings()),
		len(rep.Infos()),
		string(findings),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// ListRuns returns recent runs, newest first. Limit defaults to 20 and
// is capped at 200.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, board, mcu, errors, warnings, infos, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Board, &r.MCU, &r.Errors, &r.Warnings, &r.Infos, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFindings returns the stored findings of one run.
func (s *Store) RunFindings(ctx context.Context, id string) ([]validate.Finding, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT findings FROM runs WHERE id = ?", id).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}

	var findings []validate.Finding
	if err := json.Unmarshal([]byte(raw), &findings); err != nil {
		return nil, fmt.Errorf("unmarshalling findings: %w", err)
	}
	return findings, nil
}
