// Package history persists task completion records in SQLite. The habit
// predictor reads them back to derive completion patterns.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"dayplan/models"
)

// Store is a SQLite-backed completion log.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the completion database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id TEXT NOT NULL,
		title TEXT NOT NULL,
		source_type TEXT NOT NULL,
		completed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completions_completed_at ON completions(completed_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one completion.
func (s *Store) Record(r models.CompletionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO completions (task_id, title, source_type, completed_at) VALUES (?, ?, ?, ?)`,
		r.TaskID, r.Title, string(r.SourceType), r.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// Completions returns all completions since the given time, oldest first.
// A zero since returns everything.
func (s *Store) Completions(since time.Time) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(
		`SELECT task_id, title, source_type, completed_at
		 FROM completions
		 WHERE completed_at >= ?
		 ORDER BY completed_at`,
		since.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		var source, completedAt string
		if err := rows.Scan(&r.TaskID, &r.Title, &source, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		t, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parse completion timestamp %q: %w", completedAt, err)
		}
		r.SourceType = models.SourceType(source)
		r.CompletedAt = t
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return records, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
