package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleStack(now time.Time) models.HabitStack {
	return models.HabitStack{
		ID:            "stack-1",
		Name:          "Morning Kickstart",
		TimeBlock:     models.TimeBlockMorning,
		ReminderTime:  "07:00",
		ScheduledDays: []time.Weekday{time.Monday, time.Wednesday},
		CreatedAt:     now,
		Habits: []models.Habit{
			{
				ID: "habit-1", StackID: "stack-1", Name: "Drink water",
				Position: 0, CurrentStreak: 3, LongestStreak: 5, TotalCompletions: 12,
				LastCompleted: models.CompletedAt(now.Add(-2 * time.Hour)),
				CreatedAt:     now,
				Events: []models.CompletionEvent{
					{ID: "ev-1", HabitID: "habit-1", Timestamp: now.Add(-2 * time.Hour), DurationMin: 1, Mood: "fresh"},
				},
			},
			{
				ID: "habit-2", StackID: "stack-1", Name: "Stretch",
				Position: 1, LastCompleted: models.Never(), CreatedAt: now,
			},
		},
	}
}

func TestStackRoundtrip(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	if err := store.AddStack(sampleStack(now)); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	stacks, err := store.GetAllStacks()
	if err != nil {
		t.Fatalf("failed to load stacks: %v", err)
	}
	if len(stacks) != 1 {
		t.Fatalf("expected 1 stack, got %d", len(stacks))
	}

	s := stacks[0]
	if s.Name != "Morning Kickstart" || s.ReminderTime != "07:00" {
		t.Errorf("unexpected stack fields: %+v", s)
	}
	if len(s.ScheduledDays) != 2 || s.ScheduledDays[0] != time.Monday {
		t.Errorf("unexpected scheduled days: %v", s.ScheduledDays)
	}
	if len(s.Habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(s.Habits))
	}
	if s.Habits[0].Position != 0 || s.Habits[0].Name != "Drink water" {
		t.Errorf("habits not ordered by position: %+v", s.Habits)
	}
	if len(s.Habits[0].Events) != 1 {
		t.Errorf("expected completion history loaded with habit, got %d events", len(s.Habits[0].Events))
	}
	if s.Habits[1].LastCompleted.IsNever() != true {
		t.Error("expected habit-2 never completed")
	}
	if got, ok := s.Habits[0].LastCompleted.Time(); !ok || !got.Equal(now.Add(-2*time.Hour)) {
		t.Errorf("last completed mismatch: %v (%v)", got, ok)
	}
}

func TestGetStackByName(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.AddStack(sampleStack(now)); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	s, err := store.GetStackByName("Morning Kickstart")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if s.ID != "stack-1" {
		t.Errorf("expected stack-1, got %s", s.ID)
	}

	if _, err := store.GetStackByName("Nope"); err == nil {
		t.Error("expected error for unknown stack")
	}
}

func TestUpdateStackNormalizesEmptyDays(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	stack := sampleStack(now)
	if err := store.AddStack(stack); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	stack.ScheduledDays = nil
	if err := store.UpdateStack(stack); err != nil {
		t.Fatalf("failed to update stack: %v", err)
	}

	got, err := store.GetStack(stack.ID)
	if err != nil {
		t.Fatalf("failed to load stack: %v", err)
	}
	if len(got.ScheduledDays) != 7 {
		t.Errorf("expected empty set normalized to every day, got %v", got.ScheduledDays)
	}
}

func TestUpdateHabitCounters(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.AddStack(sampleStack(now)); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	h, err := store.GetHabit("habit-2")
	if err != nil {
		t.Fatalf("failed to load habit: %v", err)
	}

	h.CurrentStreak = 1
	h.LongestStreak = 1
	h.TotalCompletions = 1
	h.LastCompleted = models.CompletedAt(now)
	if err := store.UpdateHabit(h); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	got, err := store.GetHabit("habit-2")
	if err != nil {
		t.Fatalf("failed to reload habit: %v", err)
	}
	if got.CurrentStreak != 1 || got.TotalCompletions != 1 {
		t.Errorf("counters not persisted: %+v", got)
	}
	if got.LastCompleted.IsNever() {
		t.Error("last completed not persisted")
	}
}

func TestAddCompletionAppends(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.AddStack(sampleStack(now)); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	err := store.AddCompletion(models.CompletionEvent{
		ID: "ev-2", HabitID: "habit-1", Timestamp: now, DurationMin: 3,
	})
	if err != nil {
		t.Fatalf("failed to add completion: %v", err)
	}

	events, err := store.GetCompletionsForHabit("habit-1")
	if err != nil {
		t.Fatalf("failed to load completions: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestDeleteStackCascades(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.AddStack(sampleStack(now)); err != nil {
		t.Fatalf("failed to add stack: %v", err)
	}

	if err := store.DeleteStack("stack-1"); err != nil {
		t.Fatalf("failed to delete stack: %v", err)
	}

	if _, err := store.GetHabit("habit-1"); err == nil {
		t.Error("expected habit deleted by cascade")
	}

	events, err := store.GetCompletionsForHabit("habit-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected completions deleted by cascade, got %d", len(events))
	}

	stacks, err := store.GetAllStacks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stacks) != 0 {
		t.Errorf("expected no stacks, got %d", len(stacks))
	}
}
