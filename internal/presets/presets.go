package presets

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewagner/stackline/internal/models"
)

// Preset is a canned starter stack. Instantiate turns it into a real
// HabitStack with fresh identities and zeroed counters.
type Preset struct {
	Name         string
	TimeBlock    models.TimeBlock
	ReminderTime string
	Habits       []string // anchor first
}

var All = []Preset{
	{
		Name:         "Morning Kickstart",
		TimeBlock:    models.TimeBlockMorning,
		ReminderTime: "07:00",
		Habits:       []string{"Drink a glass of water", "Make the bed", "Two-minute stretch"},
	},
	{
		Name:         "Midday Reset",
		TimeBlock:    models.TimeBlockMidday,
		ReminderTime: "12:30",
		Habits:       []string{"Step outside", "Ten deep breaths", "Refill water bottle"},
	},
	{
		Name:         "Evening Shutdown",
		TimeBlock:    models.TimeBlockEvening,
		ReminderTime: "18:00",
		Habits:       []string{"Close open tabs", "Write tomorrow's top task", "Tidy desk"},
	},
	{
		Name:         "Wind Down",
		TimeBlock:    models.TimeBlockNight,
		ReminderTime: "21:30",
		Habits:       []string{"Phone on charger outside bedroom", "Read one page", "Lights low"},
	},
}

// Find returns the preset with the given name, matched case-sensitively.
func Find(name string) (Preset, bool) {
	for _, p := range All {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Instantiate creates a HabitStack from the preset, scheduled every day.
func (p Preset) Instantiate(now time.Time) (models.HabitStack, error) {
	if len(p.Habits) == 0 {
		return models.HabitStack{}, fmt.Errorf("preset %q has no habits", p.Name)
	}

	stack := models.HabitStack{
		ID:           uuid.NewString(),
		Name:         p.Name,
		TimeBlock:    p.TimeBlock,
		ReminderTime: p.ReminderTime,
		CreatedAt:    now,
	}
	stack.NormalizeScheduledDays()

	for i, name := range p.Habits {
		stack.Habits = append(stack.Habits, models.Habit{
			ID:            uuid.NewString(),
			StackID:       stack.ID,
			Name:          name,
			Position:      i,
			LastCompleted: models.Never(),
			CreatedAt:     now,
		})
	}

	return stack, nil
}
