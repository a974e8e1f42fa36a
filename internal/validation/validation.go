package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/models"
)

// ValidateStack checks a stack's fields before it is persisted.
func ValidateStack(s models.HabitStack) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("stack name cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, s.ReminderTime); err != nil {
		return fmt.Errorf("invalid reminder time format (expected HH:MM): %w", err)
	}

	if !models.ValidTimeBlock(s.TimeBlock) {
		return fmt.Errorf("invalid time block %q (expected morning, midday, evening, or night)", s.TimeBlock)
	}

	for _, d := range s.ScheduledDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday value %d", d)
		}
	}

	for _, h := range s.Habits {
		if err := ValidateHabit(h); err != nil {
			return err
		}
	}

	return nil
}

// ValidateHabit checks a habit's fields before it is persisted.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if h.Position < 0 {
		return fmt.Errorf("habit position cannot be negative")
	}
	return nil
}

// ParseWeekdays parses a comma-separated list of weekdays, accepting names
// ("mon", "monday") or numbers (0=Sunday, 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}

	return weekdays, nil
}
