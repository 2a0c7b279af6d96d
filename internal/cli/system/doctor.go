package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cortisol/internal/backup"
	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/history"
	"github.com/julianstephens/cortisol/internal/lock"
	"github.com/julianstephens/cortisol/internal/storage"
	"github.com/julianstephens/cortisol/internal/utils"
	"github.com/julianstephens/cortisol/internal/validation"
)

// skipReason marks a check that does not apply to the current backend
type skipReason string

func (r skipReason) Error() string { return string(r) }

type DoctorCmd struct{}

type check struct {
	name    string
	warning bool // a failure is reported but does not fail the run
	needsDB bool
	run     func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Backups present", warning: true, run: checkBackupsPresent},
		{name: "History readable", needsDB: true, run: checkHistoryReadable},
		{name: "Data validation", needsDB: true, run: checkValidation},
		{name: "Settings", needsDB: true, run: checkSettings},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
		{name: "Session lock", warning: true, run: checkSessionLock},
	}

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var reason skipReason
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &reason):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, reason)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (int, int, error) {
	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return 0, 0, skipReason("no SQL schema for this backend")
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'cortisol migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !backup.Supported(ctx.Store.GetConfigPath()) {
		return skipReason("not supported for this backend")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'cortisol backup create'")
	}
	return nil
}

// checkHistoryReadable fails when the stored value is not an array or when
// entries would be dropped on load
func checkHistoryReadable(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.EntriesKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	decoded, err := history.DecodeFor([]byte(raw), ctx.GetEngine())
	if err != nil {
		return fmt.Errorf("stored history cannot be read (it loads as empty): %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err == nil && len(items) != len(decoded) {
		return fmt.Errorf("%d of %d stored entries are unreadable and are skipped on load", len(items)-len(decoded), len(items))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	h, err := ctx.History().Load()
	if err != nil {
		return err
	}
	result := validation.New(ctx.GetEngine()).ValidateHistory(h)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found - run 'cortisol validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q - fix it with 'cortisol settings --timezone'", settings.Timezone)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkSessionLock(ctx *cli.Context) error {
	if ctx.ConfigDir == "" {
		return skipReason("no config directory")
	}
	if holder, held := lock.Status(ctx.ConfigDir); held {
		return fmt.Errorf("another session (pid %d) has been running since %s", holder.PID, holder.StartedAt.Local().Format(time.Kitchen))
	}
	return nil
}
