package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeBlock is a coarse part-of-day classification used for display grouping
type TimeBlock string

const (
	TimeBlockMorning TimeBlock = "morning"
	TimeBlockMidday  TimeBlock = "midday"
	TimeBlockEvening TimeBlock = "evening"
	TimeBlockNight   TimeBlock = "night"
)

// HabitStack is an ordered group of habits sharing one reminder time and
// one anchor habit. The anchor is always the habit at position 0.
type HabitStack struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TimeBlock     TimeBlock      `json:"time_block"`
	ReminderTime  string         `json:"reminder_time"` // HH:MM format
	ScheduledDays []time.Weekday `json:"scheduled_days"`
	Habits        []Habit        `json:"habits"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Anchor returns the stack's anchor habit (position 0), or nil for an
// empty stack.
func (s *HabitStack) Anchor() *Habit {
	if len(s.Habits) == 0 {
		return nil
	}
	return &s.Habits[0]
}

// ReminderHourMinute parses the stack's HH:MM reminder time.
func (s *HabitStack) ReminderHourMinute() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.ReminderTime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reminder time %q: %w", s.ReminderTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// NormalizeScheduledDays canonicalizes the scheduled weekday set: an empty
// set becomes every day, duplicates are removed, and the result is sorted.
// Called on every write so read sites never see an empty set.
func (s *HabitStack) NormalizeScheduledDays() {
	if len(s.ScheduledDays) == 0 {
		s.ScheduledDays = AllWeekdays()
		return
	}
	seen := make(map[time.Weekday]bool, len(s.ScheduledDays))
	var days []time.Weekday
	for _, d := range s.ScheduledDays {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	s.ScheduledDays = days
}

// ScheduledOn returns true if the stack is scheduled on the given weekday.
func (s *HabitStack) ScheduledOn(day time.Weekday) bool {
	for _, d := range s.ScheduledDays {
		if d == day {
			return true
		}
	}
	return false
}

// FormatScheduledDays renders the weekday set as a canonical
// comma-separated string, e.g. "Sun,Mon,Fri".
func (s *HabitStack) FormatScheduledDays() string {
	days := make([]string, len(s.ScheduledDays))
	for i, d := range s.ScheduledDays {
		days[i] = d.String()[:3]
	}
	return strings.Join(days, ",")
}

// AllWeekdays returns all seven weekdays in Sunday-first order.
func AllWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// ValidTimeBlock reports whether tb is one of the four known time blocks.
func ValidTimeBlock(tb TimeBlock) bool {
	switch tb {
	case TimeBlockMorning, TimeBlockMidday, TimeBlockEvening, TimeBlockNight:
		return true
	}
	return false
}
