package cli

import (
	"fmt"
)

type SuggestCmd struct {
	Dismiss string `short:"x" help:"Dismiss the suggestion with this ID (prefix match)."`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}

	suggestions := ctx.Engine.Analyze(stacks)

	if c.Dismiss != "" {
		dismissed := false
		for _, s := range suggestions {
			if s.ID == c.Dismiss || shortID(s.ID) == c.Dismiss {
				if ctx.Engine.Dismiss(s.ID) {
					dismissed = true
					fmt.Printf("Dismissed %q\n", s.Title)
				}
				break
			}
		}
		if !dismissed {
			return fmt.Errorf("no dismissible suggestion with ID %q", c.Dismiss)
		}
		suggestions = ctx.Engine.Suggestions()
	}

	if len(suggestions) == 0 {
		printEmpty("No suggestions right now. Keep stacking.")
		return nil
	}

	for _, s := range suggestions {
		style := priorityStyle(s.Priority)
		fmt.Printf("%s %s [%s] %s\n", dimStyle.Render(shortID(s.ID)),
			style.Render(s.Priority.String()), s.Type, titleStyle.Render(s.Title))
		fmt.Printf("   %s\n", s.Message)
		if !s.ExpiresAt.IsZero() {
			fmt.Printf("   %s\n", dimStyle.Render("expires "+s.ExpiresAt.Format("2006-01-02 15:04")))
		}
	}
	return nil
}

type RisksCmd struct{}

func (c *RisksCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}

	reports := ctx.Engine.Risks(stacks)
	if len(reports) == 0 {
		printEmpty("No habits at risk.")
		return nil
	}

	for _, r := range reports {
		fmt.Printf("%s %s (%s)\n", riskStyle(r.Level).Render(string(r.Level)),
			titleStyle.Render(r.HabitName), r.Reason)
		fmt.Printf("   %s\n", r.SuggestedAction)
	}
	return nil
}
