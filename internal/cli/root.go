package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/cortisol/internal/backup"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/history"
	"github.com/julianstephens/cortisol/internal/lock"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/motivation"
	"github.com/julianstephens/cortisol/internal/storage"
	"github.com/julianstephens/cortisol/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Engine    *engine.Engine
	Clock     utils.Clock
	Picker    *motivation.Picker
	Out       io.Writer
	ConfigDir string
}

// Migrator is implemented by stores with a versioned SQL schema
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// History returns the repository over the current store
func (c *Context) History() *history.Repository {
	return history.NewRepositoryFor(c.Store, c.GetEngine())
}

// Settings returns the persisted settings, or defaults
func (c *Context) Settings() (models.Settings, error) {
	return storage.GetSettings(c.Store)
}

// Today returns today's date in the configured timezone
func (c *Context) Today() (string, error) {
	settings, err := c.Settings()
	if err != nil {
		return "", err
	}
	return utils.TodayFromSettings(c.Clock, settings)
}

// GetEngine returns the configured engine, falling back to the default habits
func (c *Context) GetEngine() *engine.Engine {
	if c.Engine == nil {
		c.Engine = engine.Default()
	}
	return c.Engine
}

// GetPicker returns the configured message picker, seeding one if needed
func (c *Context) GetPicker() *motivation.Picker {
	if c.Picker == nil {
		c.Picker = motivation.NewSeeded()
	}
	return c.Picker
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !backup.Supported(c.Store.GetConfigPath()) {
		logger.Debug("Automatic backup skipped", "store", c.Store.GetConfigPath())
		return
	}
	settings, err := c.Settings()
	if err == nil && !settings.AutoBackup {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// AcquireLock takes the session lock for commands that rewrite the history.
// Without a config directory (tests, in-memory stores) no lock is taken.
func (c *Context) AcquireLock() (*lock.Lock, error) {
	if c.ConfigDir == "" {
		return nil, nil
	}
	return lock.Acquire(c.ConfigDir)
}
