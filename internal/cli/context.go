package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewagner/stackline/internal/analyzer"
	"github.com/ewagner/stackline/internal/logger"
	"github.com/ewagner/stackline/internal/models"
	"github.com/ewagner/stackline/internal/reminders"
	"github.com/ewagner/stackline/internal/storage"
)

// Context carries the shared collaborators into every command. The engine
// and scheduler are constructed once per process; there is no global state.
type Context struct {
	Store     storage.Provider
	Engine    *analyzer.Engine
	Scheduler *reminders.Scheduler
}

// Refresh runs one analysis pass and one reminder scheduling pass. Every
// mutating command calls this before exiting; failures are logged and never
// interrupt the user's workflow.
func (c *Context) Refresh() {
	stacks, err := c.Store.GetAllStacks()
	if err != nil {
		logger.Warn("Refresh pass failed to load stacks", "error", err)
		return
	}

	c.Engine.Analyze(stacks)

	if err := c.Scheduler.Sync(stacks); err != nil {
		logger.Warn("Reminder sync reported errors", "error", err)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func priorityStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return highStyle
	case models.PriorityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

func riskStyle(level models.RiskLevel) lipgloss.Style {
	switch level {
	case models.RiskHigh:
		return highStyle
	case models.RiskMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printEmpty(msg string) {
	fmt.Println(dimStyle.Render(msg))
}
