package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tsawler/rubrica"
)

// runLogSchema holds the run log tables. Applied on open.
const runLogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	input_dir TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	documents INTEGER NOT NULL,
	succeeded INTEGER NOT NULL,
	failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	run_id TEXT NOT NULL REFERENCES runs(id),
	input TEXT NOT NULL,
	output TEXT,
	title TEXT,
	headings INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
`

// runLog records batch runs in a SQLite database.
type runLog struct {
	db *sql.DB
}

// openRunLog opens or creates the run log database and applies the schema.
func openRunLog(path string) (*runLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(runLogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &runLog{db: db}, nil
}

// Close closes the underlying database.
func (l *runLog) Close() error {
	return l.db.Close()
}

// Record writes one batch run and all its documents, failures included.
// Returns the generated run id.
func (l *runLog) Record(inDir, outDir string, started time.Time, result *rubrica.BatchResult) (string, error) {
	id := uuid.NewString()

	tx, err := l.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, started_at, finished_at, input_dir, output_dir, documents, succeeded, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, started.UnixMilli(), started.Add(result.Duration).UnixMilli(),
		inDir, outDir, len(result.Documents), result.Succeeded(), result.Failed())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO documents (run_id, input, output, title, headings, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, doc := range result.Documents {
		var errText any
		if doc.Err != nil {
			errText = doc.Err.Error()
		}
		if _, err := stmt.Exec(id, doc.Input, doc.Output, doc.Title, doc.Headings,
			doc.Duration.Milliseconds(), errText); err != nil {
			return "", fmt.Errorf("insert document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}
