package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/cli/backups"
	"github.com/julianstephens/cortisol/internal/cli/entries"
	"github.com/julianstephens/cortisol/internal/cli/settings"
	"github.com/julianstephens/cortisol/internal/cli/system"
	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/errors"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage location: a .db or .json file, diskv://<dir>, 'memory', 'postgres' (connection from CORTISOL_DB_CONNECTION or the OS keyring) or a PostgreSQL connection string without a password." env:"CORTISOL_CONFIG" default:"~/.config/cortisol/cortisol.db"`
	Debug   bool   `help:"Enable debug logging." env:"CORTISOL_DEBUG"`

	Init     system.InitCmd      `cmd:"" help:"Initialize cortisol storage."`
	Tui      system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Log      entries.LogCmd      `cmd:"" help:"Submit today's entry."`
	Today    entries.TodayCmd    `cmd:"" help:"Show today's entry."`
	History  entries.HistoryCmd  `cmd:"" help:"List past entries."`
	Progress entries.ProgressCmd `cmd:"" help:"Show level, XP and phase."`
	Habits   entries.HabitsCmd   `cmd:"" help:"List the daily habits."`
	Clear    entries.ClearCmd    `cmd:"" help:"Delete entries."`
	Export   entries.ExportCmd   `cmd:"" help:"Export the history as JSON."`
	Import   entries.ImportCmd   `cmd:"" help:"Import a history JSON file."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Validate system.ValidateCmd   `cmd:"" help:"Check the history for inconsistent entries."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Metrics  system.MetricsCmd    `cmd:"" help:"Export progress gauges for Prometheus."`
	DebugCmd system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// needsStore reports whether the selected command reads or writes the store
func needsStore(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "keyring", "habits":
		return false
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily mood, energy and habit tracker with levels and XP"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := cli.ConfigDir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", CLI.Config)

	appCtx := &cli.Context{
		Engine:    engine.Default(),
		Clock:     utils.SystemClock,
		ConfigDir: configDir,
	}

	if needsStore(ctx.Command()) {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		// Init handles its own loading
		if ctx.Command() != "init" {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}
