package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewagner/stackline/internal/ledger"
	"github.com/ewagner/stackline/internal/models"
	"github.com/ewagner/stackline/internal/validation"
)

type HabitAddCmd struct {
	Stack string `arg:"" help:"Stack to add the habit to."`
	Name  string `arg:"" help:"Habit name."`
	Icon  string `short:"i" help:"Display icon or label."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	stack, err := ctx.Store.GetStackByName(c.Stack)
	if err != nil {
		return fmt.Errorf("stack %q not found", c.Stack)
	}

	habit := models.Habit{
		ID:            uuid.NewString(),
		StackID:       stack.ID,
		Name:          c.Name,
		Icon:          c.Icon,
		Position:      len(stack.Habits),
		LastCompleted: models.Never(),
		CreatedAt:     time.Now(),
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	fmt.Printf("Added %q to stack %q\n", c.Name, stack.Name)
	ctx.Refresh()
	return nil
}

type HabitDoneCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Duration int    `short:"d" help:"Minutes spent (optional)."`
	Mood     string `short:"m" help:"Mood note (optional)."`
	Energy   string `short:"e" help:"Energy note (optional)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, stack, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	event := ledger.RecordCompletion(&habit, time.Now(), c.Duration, c.Mood, c.Energy)

	if err := ctx.Store.AddCompletion(event); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	fmt.Printf("Completed %q in %q (streak %d, best %d)\n",
		habit.Name, stack.Name, habit.CurrentStreak, habit.LongestStreak)
	ctx.Refresh()
	return nil
}

type HabitMissCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitMissCmd) Run(ctx *Context) error {
	habit, stack, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	ledger.RecordMiss(&habit)

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	fmt.Printf("Reset streak for %q in %q (best stays at %d)\n",
		habit.Name, stack.Name, habit.LongestStreak)
	ctx.Refresh()
	return nil
}

type HabitLogCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Limit int    `short:"n" help:"Show at most this many recent completions." default:"14"`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	habit, stack, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s): weekly rate %.0f%%\n",
		titleStyle.Render(habit.Name), stack.Name,
		ledger.WeeklyCompletionRate(habit.Events, time.Now())*100)

	events := habit.Events
	if len(events) > c.Limit {
		events = events[len(events)-c.Limit:]
	}
	if len(events) == 0 {
		printEmpty("No completions recorded yet.")
		return nil
	}

	for _, e := range events {
		line := e.Timestamp.Format("2006-01-02 15:04")
		if e.DurationMin > 0 {
			line += fmt.Sprintf("  %dm", e.DurationMin)
		}
		if e.Mood != "" {
			line += "  mood: " + e.Mood
		}
		if e.Energy != "" {
			line += "  energy: " + e.Energy
		}
		fmt.Println(line)
	}
	return nil
}

// findHabit locates a habit by name across all stacks.
func findHabit(ctx *Context, name string) (models.Habit, models.HabitStack, error) {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return models.Habit{}, models.HabitStack{}, fmt.Errorf("failed to load stacks: %w", err)
	}

	matches := 0
	var foundStack models.HabitStack
	var foundHabit models.Habit
	for _, s := range stacks {
		for _, h := range s.Habits {
			if h.Name == name {
				matches++
				foundStack = s
				foundHabit = h
			}
		}
	}

	switch matches {
	case 0:
		return models.Habit{}, models.HabitStack{}, fmt.Errorf("habit %q not found", name)
	case 1:
		return foundHabit, foundStack, nil
	default:
		return models.Habit{}, models.HabitStack{}, fmt.Errorf("habit %q exists in %d stacks; rename one to disambiguate", name, matches)
	}
}
