package presets

import (
	"testing"
	"time"

	"github.com/ewagner/stackline/internal/validation"
)

func TestInstantiate(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)

	for _, p := range All {
		t.Run(p.Name, func(t *testing.T) {
			stack, err := p.Instantiate(now)
			if err != nil {
				t.Fatalf("instantiate failed: %v", err)
			}

			if err := validation.ValidateStack(stack); err != nil {
				t.Errorf("preset produced invalid stack: %v", err)
			}
			if len(stack.Habits) != len(p.Habits) {
				t.Errorf("expected %d habits, got %d", len(p.Habits), len(stack.Habits))
			}
			if stack.Habits[0].Position != 0 {
				t.Errorf("anchor must sit at position 0")
			}
			if len(stack.ScheduledDays) != 7 {
				t.Errorf("presets schedule every day, got %v", stack.ScheduledDays)
			}
			for _, h := range stack.Habits {
				if h.StackID != stack.ID {
					t.Errorf("habit %s not linked to stack", h.Name)
				}
				if !h.LastCompleted.IsNever() {
					t.Errorf("fresh habit %s must start never-completed", h.Name)
				}
			}
		})
	}
}

func TestFind(t *testing.T) {
	if _, ok := Find("Morning Kickstart"); !ok {
		t.Error("expected to find Morning Kickstart")
	}
	if _, ok := Find("nonsense"); ok {
		t.Error("expected miss for unknown preset")
	}
}
