package sqlite

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

func (s *Store) AddStack(stack models.HabitStack) error {
	stack.NormalizeScheduledDays()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO stacks (id, name, time_block, reminder_time, scheduled_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stack.ID, stack.Name, string(stack.TimeBlock), stack.ReminderTime,
		encodeWeekdays(stack.ScheduledDays), stack.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert stack: %w", err)
	}

	for _, h := range stack.Habits {
		if err := insertHabit(tx, h); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetStack(id string) (models.HabitStack, error) {
	return s.getStackBy("id", id)
}

func (s *Store) GetStackByName(name string) (models.HabitStack, error) {
	return s.getStackBy("name", name)
}

func (s *Store) getStackBy(column, value string) (models.HabitStack, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		SELECT id, name, time_block, reminder_time, scheduled_days, created_at
		FROM stacks WHERE %s = ?`, column), value)

	stack, err := scanStack(row)
	if err != nil {
		return models.HabitStack{}, err
	}

	stack.Habits, err = s.habitsForStack(stack.ID)
	if err != nil {
		return models.HabitStack{}, err
	}

	return stack, nil
}

func (s *Store) GetAllStacks() ([]models.HabitStack, error) {
	rows, err := s.db.Query(`
		SELECT id, name, time_block, reminder_time, scheduled_days, created_at
		FROM stacks ORDER BY reminder_time, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stacks []models.HabitStack
	for rows.Next() {
		stack, err := scanStack(rows)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stack)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stacks {
		stacks[i].Habits, err = s.habitsForStack(stacks[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return stacks, nil
}

func (s *Store) UpdateStack(stack models.HabitStack) error {
	stack.NormalizeScheduledDays()

	result, err := s.db.Exec(`
		UPDATE stacks SET name = ?, time_block = ?, reminder_time = ?, scheduled_days = ?
		WHERE id = ?`,
		stack.Name, string(stack.TimeBlock), stack.ReminderTime,
		encodeWeekdays(stack.ScheduledDays), stack.ID)
	if err != nil {
		return fmt.Errorf("failed to update stack: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("stack not found: %s", stack.ID)
	}
	return nil
}

func (s *Store) DeleteStack(id string) error {
	result, err := s.db.Exec(`DELETE FROM stacks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stack: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("stack not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStack(row rowScanner) (models.HabitStack, error) {
	var stack models.HabitStack
	var timeBlock, scheduledDays, createdAt string

	if err := row.Scan(&stack.ID, &stack.Name, &timeBlock, &stack.ReminderTime,
		&scheduledDays, &createdAt); err != nil {
		return models.HabitStack{}, err
	}

	stack.TimeBlock = models.TimeBlock(timeBlock)

	var err error
	stack.ScheduledDays, err = decodeWeekdays(scheduledDays)
	if err != nil {
		return models.HabitStack{}, err
	}

	stack.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.HabitStack{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return stack, nil
}

// encodeWeekdays renders the scheduled day set as a canonical
// comma-separated list of weekday numbers, e.g. "0,1,5".
func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(encoded string) ([]time.Weekday, error) {
	if encoded == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(encoded, ",") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday value %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
