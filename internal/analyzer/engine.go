package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/ledger"
	"github.com/ewagner/stackline/internal/models"
)

// Engine runs analysis passes over the full set of stacks and holds the
// session state that must survive between passes: the set of dismissed
// suggestion keys and the current suggestion list. The host constructs one
// Engine and reuses it for the whole process; dismissals are not persisted
// across restarts.
type Engine struct {
	now       func() time.Time
	dismissed map[string]bool
	current   []models.Suggestion
}

// New creates an Engine. A nil clock defaults to time.Now.
func New(clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		now:       clock,
		dismissed: make(map[string]bool),
	}
}

// Risks runs one risk-detection pass over all habits in all stacks.
func (e *Engine) Risks(stacks []models.HabitStack) []models.RiskReport {
	return DetectRisks(flatten(stacks), e.now())
}

// Suggestions returns the live suggestion list from the last Analyze pass.
func (e *Engine) Suggestions() []models.Suggestion {
	return e.current
}

// Dismiss removes the suggestion with the given ID from the live list and
// suppresses any suggestion with the same content for the rest of the
// session. Returns false if no live suggestion has that ID.
func (e *Engine) Dismiss(id string) bool {
	for i, s := range e.current {
		if s.ID != id {
			continue
		}
		if !s.Dismissible {
			return false
		}
		e.dismissed[s.ContentKey()] = true
		e.current = append(e.current[:i], e.current[i+1:]...)
		return true
	}
	return false
}

// Analyze runs one full suggestion pass. The working list is rebuilt from
// scratch each time; steps are independent and additive. The result is
// filtered against dismissals and expiries, stably sorted by priority
// descending, and capped.
func (e *Engine) Analyze(stacks []models.HabitStack) []models.Suggestion {
	now := e.now()
	var working []models.Suggestion

	working = append(working, e.streakRiskSuggestions(stacks, now)...)
	working = append(working, e.reorderSuggestions(stacks, now)...)
	working = append(working, e.scheduleReviewSuggestions(stacks, now)...)
	working = append(working, e.peakWindowSuggestions(stacks, now)...)

	var kept []models.Suggestion
	for _, s := range working {
		if e.dismissed[s.ContentKey()] {
			continue
		}
		if s.Expired(now) {
			continue
		}
		kept = append(kept, s)
	}

	// Stable sort keeps emission order for equal priorities, so repeated
	// runs on identical input produce identical lists.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Priority > kept[j].Priority
	})

	if len(kept) > constants.MaxSuggestions {
		kept = kept[:constants.MaxSuggestions]
	}

	e.current = kept
	return kept
}

// streakRiskSuggestions emits one high-priority suggestion per
// high-severity risk report, expiring at the end of the current day.
func (e *Engine) streakRiskSuggestions(stacks []models.HabitStack, now time.Time) []models.Suggestion {
	var out []models.Suggestion
	for _, report := range DetectRisks(flatten(stacks), now) {
		if report.Level != models.RiskHigh {
			continue
		}
		out = append(out, models.Suggestion{
			ID:          uuid.NewString(),
			Type:        models.SuggestionStreakRisk,
			Priority:    models.PriorityHigh,
			Title:       fmt.Sprintf("%s streak at risk", report.HabitName),
			Message:     report.SuggestedAction,
			CreatedAt:   now,
			ExpiresAt:   ledger.EndOfDay(now),
			HabitID:     report.HabitID,
			Dismissible: true,
		})
	}
	return out
}

// reorderSuggestions emits at most one tip per stack: if the habit with the
// best weekly rate (above the reorder threshold) is not already the anchor,
// suggest moving it up.
func (e *Engine) reorderSuggestions(stacks []models.HabitStack, now time.Time) []models.Suggestion {
	var out []models.Suggestion
	for _, stack := range stacks {
		bestIdx := -1
		bestRate := 0.0
		for i, h := range stack.Habits {
			rate := ledger.WeeklyCompletionRate(h.Events, now)
			if bestIdx == -1 || rate > bestRate {
				bestIdx = i
				bestRate = rate
			}
		}
		if bestIdx <= 0 || bestRate <= constants.ReorderMinRate {
			continue
		}
		best := stack.Habits[bestIdx]
		out = append(out, models.Suggestion{
			ID:          uuid.NewString(),
			Type:        models.SuggestionOptimization,
			Priority:    models.PriorityLow,
			Title:       fmt.Sprintf("Reorder %s", stack.Name),
			Message:     fmt.Sprintf("%q is your most consistent habit in this stack; moving it first could pull the others along", best.Name),
			CreatedAt:   now,
			HabitID:     best.ID,
			StackID:     stack.ID,
			Dismissible: true,
		})
	}
	return out
}

// scheduleReviewSuggestions emits a medium-priority suggestion for each
// stack whose completion rate for today has fallen below the review
// threshold.
func (e *Engine) scheduleReviewSuggestions(stacks []models.HabitStack, now time.Time) []models.Suggestion {
	var out []models.Suggestion
	for _, stack := range stacks {
		if len(stack.Habits) == 0 {
			continue
		}
		if ledger.StackTodayRate(stack, now) >= constants.ScheduleReviewRate {
			continue
		}
		out = append(out, models.Suggestion{
			ID:          uuid.NewString(),
			Type:        models.SuggestionScheduleOptimize,
			Priority:    models.PriorityMedium,
			Title:       fmt.Sprintf("Revisit %s's schedule", stack.Name),
			Message:     fmt.Sprintf("%s is mostly untouched today; a different reminder time might fit your day better", stack.Name),
			CreatedAt:   now,
			StackID:     stack.ID,
			Dismissible: true,
		})
	}
	return out
}

// peakWindowSuggestions buckets every completion across all stacks by hour
// of day and, when one hour clearly dominates, names the two-hour window
// starting there.
func (e *Engine) peakWindowSuggestions(stacks []models.HabitStack, now time.Time) []models.Suggestion {
	counts := make(map[int]int)
	for _, h := range flatten(stacks) {
		for _, ev := range h.Events {
			counts[ev.Timestamp.Hour()]++
		}
	}

	peakHour, peakCount := -1, 0
	for hour := 0; hour < 24; hour++ {
		if counts[hour] > peakCount {
			peakHour, peakCount = hour, counts[hour]
		}
	}
	if peakCount < constants.PeakHourMinEvents {
		return nil
	}

	return []models.Suggestion{{
		ID:       uuid.NewString(),
		Type:     models.SuggestionPatternInsight,
		Priority: models.PriorityLow,
		Title:    "Peak productivity window",
		Message: fmt.Sprintf("Most of your completions land between %02d:00 and %02d:00; consider anchoring new habits there",
			peakHour, (peakHour+2)%24),
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, constants.PeakWindowExpiryDays),
		Dismissible: true,
	}}
}

func flatten(stacks []models.HabitStack) []models.Habit {
	var habits []models.Habit
	for _, s := range stacks {
		habits = append(habits, s.Habits...)
	}
	return habits
}
