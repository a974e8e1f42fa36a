package models

import (
	"fmt"
	"time"
)

// SuggestionType tags what kind of advice a suggestion carries
type SuggestionType string

const (
	SuggestionStreakRisk       SuggestionType = "streak_risk"
	SuggestionOptimization     SuggestionType = "optimization"
	SuggestionNewHabit         SuggestionType = "new_habit"
	SuggestionScheduleOptimize SuggestionType = "schedule_optimization"
	SuggestionPatternInsight   SuggestionType = "pattern_insight"
)

// Priority orders suggestions; higher values sort first
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Suggestion is a transient advisory record produced by an analysis pass.
// Suggestions are never persisted; they live only for the current session.
type Suggestion struct {
	ID          string         `json:"id"`
	Type        SuggestionType `json:"type"`
	Priority    Priority       `json:"priority"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at,omitempty"` // zero means no expiry
	HabitID     string         `json:"habit_id,omitempty"`
	StackID     string         `json:"stack_id,omitempty"`
	Dismissible bool           `json:"dismissible"`
}

// ContentKey identifies a suggestion by what it says rather than by its
// generated ID, so dismissing one suppresses regenerated duplicates in
// later passes.
func (s Suggestion) ContentKey() string {
	return fmt.Sprintf("%s|%s|%s|%s", s.Type, s.StackID, s.HabitID, s.Title)
}

// Expired returns true if the suggestion carries an expiry that has passed.
func (s Suggestion) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
