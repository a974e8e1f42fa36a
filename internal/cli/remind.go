package cli

import (
	"fmt"

	"github.com/ewagner/stackline/internal/reminders"
)

type RemindSyncCmd struct{}

func (c *RemindSyncCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}

	if err := ctx.Scheduler.Sync(stacks); err != nil {
		return fmt.Errorf("some reminders failed to schedule: %w", err)
	}

	fmt.Printf("Scheduled %d reminder bucket(s)\n", len(reminders.Plan(stacks)))
	return nil
}

type RemindClearCmd struct{}

func (c *RemindClearCmd) Run(ctx *Context) error {
	if err := ctx.Scheduler.Clear(); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	fmt.Println("Cleared all pending reminders")
	return nil
}

type RemindStatusCmd struct{}

func (c *RemindStatusCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}

	requests := reminders.Plan(stacks)
	if len(requests) == 0 {
		printEmpty("No reminders would be scheduled.")
		return nil
	}

	for _, r := range requests {
		fmt.Printf("%02d:%02d  %s\n", r.Hour, r.Minute, titleStyle.Render(r.Title))
		fmt.Printf("       %s\n", r.Body)
	}
	return nil
}
