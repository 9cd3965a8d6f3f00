// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists build records in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pypack/pkg/types"
)

const (
	stateDir   = ".pypack"
	dbFile     = "history.db"
	exportFile = "history.yaml"

	defaultLimit = 20
)

// Store manages the build history SQLite database.
type Store struct {
	db      *sql.DB
	baseDir string
}

// Open opens or creates the history database at baseDir/.pypack/history.db,
// creating the schema if it does not exist.
func Open(baseDir string) (*Store, error) {
	dir := filepath.Join(baseDir, stateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, baseDir: baseDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		entry TEXT NOT NULL,
		artifact TEXT,
		status TEXT NOT NULL,
		failed_step TEXT,
		error TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one build record.
func (s *Store) Record(ctx context.Context, rec types.BuildRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (started_at, duration_ms, entry, artifact, status, failed_step, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Duration.Milliseconds(),
		rec.Entry, rec.Artifact, string(rec.Status), string(rec.FailedStep), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting build record: %w", err)
	}
	return nil
}

// List returns build records newest-first. A limit of 0 applies the default
// of 20; a negative limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]types.BuildRecord, error) {
	if limit == 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, entry, artifact, status, failed_step, error
		 FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var recs []types.BuildRecord
	for rows.Next() {
		var rec types.BuildRecord
		var startedAt string
		var durationMS int64
		var status, failedStep string
		if err := rows.Scan(&rec.ID, &startedAt, &durationMS, &rec.Entry,
			&rec.Artifact, &status, &failedStep, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning build record: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = ts
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.Status = types.BuildStatus(status)
		rec.FailedStep = types.StepName(failedStep)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// ExportYAML writes the full history, newest-first, to
// baseDir/.pypack/history.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	recs, err := s.List(ctx, -1)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("marshalling history: %w", err)
	}

	path := filepath.Join(s.baseDir, stateDir, exportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
