package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

func (s *Store) AddHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertHabit(tx, habit); err != nil {
		return err
	}
	return tx.Commit()
}

func insertHabit(tx *sql.Tx, h models.Habit) error {
	var lastCompleted interface{}
	if t, ok := h.LastCompleted.Time(); ok {
		lastCompleted = t.Format(time.RFC3339)
	}

	_, err := tx.Exec(`
		INSERT INTO habits (id, stack_id, name, icon, position, current_streak,
			longest_streak, total_completions, last_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.StackID, h.Name, h.Icon, h.Position, h.CurrentStreak,
		h.LongestStreak, h.TotalCompletions, lastCompleted,
		h.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	for _, e := range h.Events {
		if err := insertCompletion(tx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, stack_id, name, icon, position, current_streak,
			longest_streak, total_completions, last_completed, created_at
		FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, err
	}

	h.Events, err = s.GetCompletionsForHabit(h.ID)
	if err != nil {
		return models.Habit{}, err
	}

	return h, nil
}

func (s *Store) UpdateHabit(h models.Habit) error {
	var lastCompleted interface{}
	if t, ok := h.LastCompleted.Time(); ok {
		lastCompleted = t.Format(time.RFC3339)
	}

	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, icon = ?, position = ?, current_streak = ?,
			longest_streak = ?, total_completions = ?, last_completed = ?
		WHERE id = ?`,
		h.Name, h.Icon, h.Position, h.CurrentStreak,
		h.LongestStreak, h.TotalCompletions, lastCompleted, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found: %s", h.ID)
	}
	return nil
}

func (s *Store) habitsForStack(stackID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, stack_id, name, icon, position, current_streak,
			longest_streak, total_completions, last_completed, created_at
		FROM habits WHERE stack_id = ? ORDER BY position`, stackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].Events, err = s.GetCompletionsForHabit(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return habits, nil
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var lastCompleted sql.NullString
	var createdAt string

	err := row.Scan(&h.ID, &h.StackID, &h.Name, &h.Icon, &h.Position,
		&h.CurrentStreak, &h.LongestStreak, &h.TotalCompletions,
		&lastCompleted, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	if lastCompleted.Valid {
		t, err := time.Parse(time.RFC3339, lastCompleted.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed: %w", err)
		}
		h.LastCompleted = models.CompletedAt(t)
	} else {
		h.LastCompleted = models.Never()
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return h, nil
}
