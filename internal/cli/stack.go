package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/ewagner/stackline/internal/models"
	"github.com/ewagner/stackline/internal/presets"
	"github.com/ewagner/stackline/internal/validation"
)

type StackNewCmd struct {
	Preset string `short:"p" help:"Instantiate a named preset instead of authoring interactively."`
}

func (c *StackNewCmd) Run(ctx *Context) error {
	now := time.Now()

	if c.Preset != "" {
		preset, ok := presets.Find(c.Preset)
		if !ok {
			var names []string
			for _, p := range presets.All {
				names = append(names, p.Name)
			}
			return fmt.Errorf("unknown preset %q (available: %s)", c.Preset, strings.Join(names, ", "))
		}

		stack, err := preset.Instantiate(now)
		if err != nil {
			return err
		}
		if err := ctx.Store.AddStack(stack); err != nil {
			return fmt.Errorf("failed to save stack: %w", err)
		}

		fmt.Printf("Created stack %q with %d habits\n", stack.Name, len(stack.Habits))
		ctx.Refresh()
		return nil
	}

	var (
		name       string
		block      string
		reminder   string
		habitsText string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Stack name").Value(&name),
			huh.NewSelect[string]().
				Title("Time block").
				Options(huh.NewOptions("morning", "midday", "evening", "night")...).
				Value(&block),
			huh.NewInput().Title("Reminder time (HH:MM)").Placeholder("07:00").Value(&reminder),
			huh.NewText().Title("Habits, one per line (anchor habit first)").Value(&habitsText),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	stack := models.HabitStack{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		TimeBlock:    models.TimeBlock(block),
		ReminderTime: strings.TrimSpace(reminder),
		CreatedAt:    now,
	}
	stack.NormalizeScheduledDays()

	position := 0
	for _, line := range strings.Split(habitsText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stack.Habits = append(stack.Habits, models.Habit{
			ID:            uuid.NewString(),
			StackID:       stack.ID,
			Name:          line,
			Position:      position,
			LastCompleted: models.Never(),
			CreatedAt:     now,
		})
		position++
	}

	if len(stack.Habits) == 0 {
		return fmt.Errorf("a stack needs at least one habit (the anchor)")
	}
	if err := validation.ValidateStack(stack); err != nil {
		return err
	}
	if err := ctx.Store.AddStack(stack); err != nil {
		return fmt.Errorf("failed to save stack: %w", err)
	}

	fmt.Printf("Created stack %q with %d habits\n", stack.Name, len(stack.Habits))
	ctx.Refresh()
	return nil
}

type StackAddCmd struct {
	Name     string `arg:"" help:"Stack name."`
	Anchor   string `short:"a" help:"Anchor habit name." required:""`
	Time     string `short:"t" help:"Reminder time (HH:MM)." required:""`
	Block    string `short:"b" help:"Time block (morning|midday|evening|night)." default:"morning"`
	Weekdays string `short:"w" help:"Comma-separated scheduled weekdays (empty means every day)."`
}

func (c *StackAddCmd) Run(ctx *Context) error {
	days, err := validation.ParseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	now := time.Now()
	stack := models.HabitStack{
		ID:            uuid.NewString(),
		Name:          c.Name,
		TimeBlock:     models.TimeBlock(c.Block),
		ReminderTime:  c.Time,
		ScheduledDays: days,
		CreatedAt:     now,
	}
	stack.NormalizeScheduledDays()
	stack.Habits = []models.Habit{{
		ID:            uuid.NewString(),
		StackID:       stack.ID,
		Name:          c.Anchor,
		Position:      0,
		LastCompleted: models.Never(),
		CreatedAt:     now,
	}}

	if err := validation.ValidateStack(stack); err != nil {
		return err
	}
	if err := ctx.Store.AddStack(stack); err != nil {
		return fmt.Errorf("failed to save stack: %w", err)
	}

	fmt.Printf("Created stack %q anchored on %q\n", stack.Name, c.Anchor)
	ctx.Refresh()
	return nil
}

type StackListCmd struct{}

func (c *StackListCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}
	if len(stacks) == 0 {
		printEmpty("No stacks yet. Create one with 'stackline stack new'.")
		return nil
	}

	for _, s := range stacks {
		fmt.Printf("%s  %s (%s, %s on %s)\n",
			dimStyle.Render(shortID(s.ID)),
			titleStyle.Render(s.Name),
			s.TimeBlock, s.ReminderTime, s.FormatScheduledDays())
		for _, h := range s.Habits {
			marker := " "
			if h.Position == 0 {
				marker = "*" // anchor
			}
			fmt.Printf("  %s %s %s\n", marker, h.Name,
				dimStyle.Render(fmt.Sprintf("(streak %d, best %d, total %d)",
					h.CurrentStreak, h.LongestStreak, h.TotalCompletions)))
		}
	}
	return nil
}

type StackDeleteCmd struct {
	Name string `arg:"" help:"Stack name."`
}

func (c *StackDeleteCmd) Run(ctx *Context) error {
	stack, err := ctx.Store.GetStackByName(c.Name)
	if err != nil {
		return fmt.Errorf("stack %q not found", c.Name)
	}

	if err := ctx.Store.DeleteStack(stack.ID); err != nil {
		return fmt.Errorf("failed to delete stack: %w", err)
	}

	fmt.Printf("Deleted stack %q and its habits\n", stack.Name)
	ctx.Refresh()
	return nil
}
