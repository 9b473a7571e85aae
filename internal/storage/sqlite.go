// Package storage records funnel milestones in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The log is append-only and is never read back into story progress.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Kind names a milestone class.
type Kind string

const (
	KindChapterStarted   Kind = "chapter_started"
	KindSceneReached     Kind = "scene_reached"
	KindChapterCompleted Kind = "chapter_completed"
	KindOffersShown      Kind = "offers_shown"
	KindStageReached     Kind = "stage_reached"
)

// Store manages the SQLite database connection for milestone records.
type Store struct {
	db *sql.DB
}

// Milestone is a single recorded event.
type Milestone struct {
	ID        int64
	Kind      Kind
	Subject   string
	Session   string
	CreatedAt time.Time
}

// MilestoneCount aggregates milestones by kind and subject.
type MilestoneCount struct {
	Kind    Kind
	Subject string
	Count   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS milestones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_milestones_kind ON milestones(kind, subject);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordMilestone appends a milestone. Returns the ID of the inserted record.
func (s *Store) RecordMilestone(ctx context.Context, kind Kind, subject, session string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO milestones (kind, subject, session) VALUES (?, ?, ?)",
		string(kind), subject, session,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record milestone: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MilestoneCounts returns milestone totals grouped by kind and subject,
// ordered by kind then subject.
func (s *Store) MilestoneCounts(ctx context.Context) ([]MilestoneCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, subject, COUNT(*)
		 FROM milestones
		 GROUP BY kind, subject
		 ORDER BY kind, subject`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query milestones: %w", err)
	}
	defer rows.Close()

	var counts []MilestoneCount
	for rows.Next() {
		var c MilestoneCount
		var kind string
		if err := rows.Scan(&kind, &c.Subject, &c.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Kind = Kind(kind)
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// Recent returns the latest milestones, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Milestone, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, subject, session, created_at
		 FROM milestones
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query milestones: %w", err)
	}
	defer rows.Close()

	var entries []Milestone
	for rows.Next() {
		var m Milestone
		var kind string
		var createdAt any
		if err := rows.Scan(&m.ID, &kind, &m.Subject, &m.Session, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.Kind = Kind(kind)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			m.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				m.CreatedAt = parsed
			}
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
