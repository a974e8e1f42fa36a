package models

import (
	"encoding/json"
	"time"
)

// Habit represents one recurring action inside a stack
type Habit struct {
	ID               string            `json:"id"`
	StackID          string            `json:"stack_id"`
	Name             string            `json:"name"`
	Icon             string            `json:"icon"`
	Position         int               `json:"position"`
	CurrentStreak    int               `json:"current_streak"`
	LongestStreak    int               `json:"longest_streak"`
	TotalCompletions int               `json:"total_completions"`
	LastCompleted    LastCompletion    `json:"last_completed"`
	Events           []CompletionEvent `json:"events,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// CompletionEvent is one record of a habit being marked done.
// Events are append-only; they are removed only when the owning habit
// is deleted by cascade.
type CompletionEvent struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	Timestamp   time.Time `json:"timestamp"`
	DurationMin int       `json:"duration_min,omitempty"` // 0 means not recorded
	Mood        string    `json:"mood,omitempty"`
	Energy      string    `json:"energy,omitempty"`
}

// LastCompletion distinguishes "never completed" from a real timestamp,
// so callers cannot silently propagate a zero time.
type LastCompletion struct {
	at    time.Time
	valid bool
}

// Never returns a LastCompletion for a habit with no completions.
func Never() LastCompletion {
	return LastCompletion{}
}

// CompletedAt returns a LastCompletion at the given timestamp.
func CompletedAt(t time.Time) LastCompletion {
	return LastCompletion{at: t, valid: true}
}

// Time returns the completion timestamp and whether one exists.
func (lc LastCompletion) Time() (time.Time, bool) {
	return lc.at, lc.valid
}

// IsNever returns true if the habit has never been completed.
func (lc LastCompletion) IsNever() bool {
	return !lc.valid
}

// HoursSince returns the hours elapsed between the last completion and now.
// The second return is false when the habit has never been completed.
func (lc LastCompletion) HoursSince(now time.Time) (float64, bool) {
	if !lc.valid {
		return 0, false
	}
	return now.Sub(lc.at).Hours(), true
}

func (lc LastCompletion) MarshalJSON() ([]byte, error) {
	if !lc.valid {
		return []byte("null"), nil
	}
	return json.Marshal(lc.at.Format(time.RFC3339))
}

func (lc *LastCompletion) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*lc = Never()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*lc = CompletedAt(t)
	return nil
}
