package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS stacks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	time_block TEXT NOT NULL,
	reminder_time TEXT NOT NULL,
	scheduled_days TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	stack_id TEXT NOT NULL REFERENCES stacks(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	icon TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL,
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	total_completions INTEGER NOT NULL DEFAULT 0,
	last_completed TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	timestamp TEXT NOT NULL,
	duration_min INTEGER NOT NULL DEFAULT 0,
	mood TEXT NOT NULL DEFAULT '',
	energy TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_habits_stack ON habits(stack_id, position);
CREATE INDEX IF NOT EXISTS idx_completions_habit ON completions(habit_id, timestamp);
`

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'stackline init' first")
	}

	return s.open()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Cascade deletes from stacks to habits to completions rely on this
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return filepath.Dir(s.path)
}
