package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

func (s *Store) AddCompletion(e models.CompletionEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertCompletion(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func insertCompletion(tx *sql.Tx, e models.CompletionEvent) error {
	_, err := tx.Exec(`
		INSERT INTO completions (id, habit_id, timestamp, duration_min, mood, energy)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.HabitID, e.Timestamp.Format(time.RFC3339),
		e.DurationMin, e.Mood, e.Energy)
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

func (s *Store) GetCompletionsForHabit(habitID string) ([]models.CompletionEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, timestamp, duration_min, mood, energy
		FROM completions WHERE habit_id = ? ORDER BY timestamp`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CompletionEvent
	for rows.Next() {
		var e models.CompletionEvent
		var timestamp string

		if err := rows.Scan(&e.ID, &e.HabitID, &timestamp, &e.DurationMin,
			&e.Mood, &e.Energy); err != nil {
			return nil, err
		}

		e.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}

		events = append(events, e)
	}
	return events, rows.Err()
}
