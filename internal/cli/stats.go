package cli

import (
	"fmt"
	"time"

	"github.com/ewagner/stackline/internal/ledger"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	stacks, err := ctx.Store.GetAllStacks()
	if err != nil {
		return fmt.Errorf("failed to load stacks: %w", err)
	}
	if len(stacks) == 0 {
		printEmpty("No stacks yet.")
		return nil
	}

	now := time.Now()
	for _, s := range stacks {
		fmt.Printf("%s  run streak %d day(s), %.0f%% done today\n",
			titleStyle.Render(s.Name),
			ledger.StackRunStreak(s, now),
			ledger.StackTodayRate(s, now)*100)
		for _, h := range s.Habits {
			fmt.Printf("   %-30s weekly %.0f%%  streak %d  best %d\n",
				h.Name,
				ledger.WeeklyCompletionRate(h.Events, now)*100,
				h.CurrentStreak, h.LongestStreak)
		}
	}
	return nil
}
