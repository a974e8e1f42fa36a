package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/models"
)

// RecordCompletion appends a completion event to the habit and updates its
// streak counters. The longest streak is raised to match whenever the
// current streak passes it, so CurrentStreak <= LongestStreak always holds.
func RecordCompletion(h *models.Habit, ts time.Time, durationMin int, mood, energy string) models.CompletionEvent {
	event := models.CompletionEvent{
		ID:          uuid.NewString(),
		HabitID:     h.ID,
		Timestamp:   ts,
		DurationMin: durationMin,
		Mood:        mood,
		Energy:      energy,
	}

	h.Events = append(h.Events, event)
	h.TotalCompletions++
	h.CurrentStreak++
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	h.LastCompleted = models.CompletedAt(ts)

	return event
}

// RecordMiss resets the habit's current streak. A miss is the absence of an
// event, so nothing is appended and neither LongestStreak nor
// TotalCompletions changes.
func RecordMiss(h *models.Habit) {
	h.CurrentStreak = 0
}

// WeeklyCompletionRate returns the fraction of the trailing 7 calendar days
// (inclusive of asOf's day) on which at least one event exists. This is a
// rate over days with activity, not over event counts, so multiple
// completions on one day count once.
func WeeklyCompletionRate(events []models.CompletionEvent, asOf time.Time) float64 {
	if len(events) == 0 {
		return 0
	}

	windowStart := dayStart(asOf).AddDate(0, 0, -6)
	days := make(map[string]bool)
	for _, e := range events {
		if e.Timestamp.Before(windowStart) || e.Timestamp.After(dayEnd(asOf)) {
			continue
		}
		days[e.Timestamp.Format(constants.DateFormat)] = true
	}

	return float64(len(days)) / 7
}

// RunStreak walks backward day by day counting consecutive days with at
// least one completion. The walk starts at asOf's day, or the prior day
// when asOf's day has no completions yet (an unfinished today does not
// break the streak). Returns 0 when there are no events at all.
func RunStreak(events []models.CompletionEvent, asOf time.Time) int {
	if len(events) == 0 {
		return 0
	}

	days := make(map[string]bool, len(events))
	for _, e := range events {
		days[e.Timestamp.Format(constants.DateFormat)] = true
	}

	day := dayStart(asOf)
	if !days[day.Format(constants.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// StackRunStreak computes the aggregate run streak over all habits in a
// stack, counting a day when any habit in the stack has a completion.
func StackRunStreak(stack models.HabitStack, asOf time.Time) int {
	var merged []models.CompletionEvent
	for _, h := range stack.Habits {
		merged = append(merged, h.Events...)
	}
	return RunStreak(merged, asOf)
}

// StackTodayRate returns the fraction of the stack's habits completed on
// asOf's calendar day. Returns 0 for a stack with no habits.
func StackTodayRate(stack models.HabitStack, asOf time.Time) float64 {
	if len(stack.Habits) == 0 {
		return 0
	}

	today := asOf.Format(constants.DateFormat)
	done := 0
	for _, h := range stack.Habits {
		for _, e := range h.Events {
			if e.Timestamp.Format(constants.DateFormat) == today {
				done++
				break
			}
		}
	}
	return float64(done) / float64(len(stack.Habits))
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// EndOfDay returns 23:59:59 on t's calendar day, used as the expiry for
// suggestions that are meaningless after the day rolls over.
func EndOfDay(t time.Time) time.Time {
	return dayEnd(t)
}
