package validation

import (
	"testing"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

func validStack() models.HabitStack {
	return models.HabitStack{
		ID:           "s1",
		Name:         "Morning",
		TimeBlock:    models.TimeBlockMorning,
		ReminderTime: "07:00",
		Habits:       []models.Habit{{ID: "h1", Name: "Water", Position: 0}},
	}
}

func TestValidateStack(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.HabitStack)
		wantErr bool
	}{
		{"valid", func(s *models.HabitStack) {}, false},
		{"empty name", func(s *models.HabitStack) { s.Name = "  " }, true},
		{"bad reminder time", func(s *models.HabitStack) { s.ReminderTime = "7am" }, true},
		{"bad time block", func(s *models.HabitStack) { s.TimeBlock = "dawn" }, true},
		{"bad weekday", func(s *models.HabitStack) { s.ScheduledDays = []time.Weekday{9} }, true},
		{"empty habit name", func(s *models.HabitStack) { s.Habits[0].Name = "" }, true},
		{"negative position", func(s *models.HabitStack) { s.Habits[0].Position = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStack()
			tt.mutate(&s)
			err := ValidateStack(s)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStack() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"names", "mon,wed,fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"full names", "monday,Friday", []time.Weekday{time.Monday, time.Friday}, false},
		{"numbers", "0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"empty is nil", "", nil, false},
		{"garbage", "mon,funday", nil, true},
		{"out of range number", "7", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}
