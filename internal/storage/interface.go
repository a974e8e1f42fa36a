package storage

import "github.com/ewagner/stackline/internal/models"

// Provider is the persistence boundary. Reads return stacks with their
// habits' full completion history attached; the analytics packages never
// touch storage directly.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Stacks
	AddStack(models.HabitStack) error
	GetStack(id string) (models.HabitStack, error)
	GetStackByName(name string) (models.HabitStack, error)
	GetAllStacks() ([]models.HabitStack, error)
	UpdateStack(models.HabitStack) error
	// DeleteStack removes a stack and cascades to its habits and their
	// completion events.
	DeleteStack(id string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	UpdateHabit(models.Habit) error

	// Completion events (append-only)
	AddCompletion(models.CompletionEvent) error
	GetCompletionsForHabit(habitID string) ([]models.CompletionEvent, error)

	// Utils
	GetConfigPath() string
}
