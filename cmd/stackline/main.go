package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ewagner/stackline/internal/analyzer"
	"github.com/ewagner/stackline/internal/cli"
	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/errors"
	"github.com/ewagner/stackline/internal/logger"
	"github.com/ewagner/stackline/internal/notifier"
	"github.com/ewagner/stackline/internal/reminders"
	"github.com/ewagner/stackline/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize stackline storage."`
	Stack struct {
		New    cli.StackNewCmd    `cmd:"" help:"Author a stack interactively or from a preset."`
		Add    cli.StackAddCmd    `cmd:"" help:"Add a stack from flags."`
		List   cli.StackListCmd   `cmd:"" help:"List all stacks." default:"1"`
		Delete cli.StackDeleteCmd `cmd:"" help:"Delete a stack and its habits."`
	} `cmd:"" help:"Manage habit stacks."`
	Habit struct {
		Add  cli.HabitAddCmd  `cmd:"" help:"Add a habit to a stack."`
		Done cli.HabitDoneCmd `cmd:"" help:"Record a habit completion."`
		Miss cli.HabitMissCmd `cmd:"" help:"Record a missed day (resets the streak)."`
		Log  cli.HabitLogCmd  `cmd:"" help:"Show a habit's completion history."`
	} `cmd:"" help:"Track habits."`
	Suggest cli.SuggestCmd `cmd:"" help:"Show (and dismiss) analysis suggestions."`
	Risks   cli.RisksCmd   `cmd:"" help:"Show habits at risk of breaking their streak."`
	Remind  struct {
		Sync   cli.RemindSyncCmd   `cmd:"" help:"Rebuild all scheduled reminders." default:"1"`
		Clear  cli.RemindClearCmd  `cmd:"" help:"Cancel all pending reminders."`
		Status cli.RemindStatusCmd `cmd:"" help:"Show the reminder buckets that would be scheduled."`
	} `cmd:"" help:"Manage reminder notifications."`
	Stats cli.StatsCmd `cmd:"" help:"Show streaks and completion rates."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit stack tracker with streak analytics and batched reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	dbPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(dbPath)}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	delivery := notifier.New()

	appCtx := &cli.Context{
		Store:     store,
		Engine:    analyzer.New(nil),
		Scheduler: reminders.NewScheduler(delivery, delivery.Authorized),
	}

	// Every command except init expects an existing database
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
