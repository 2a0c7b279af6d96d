package entries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/cortisol/internal/backup"
	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/history"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	h, err := ctx.History().Load()
	if err != nil {
		return err
	}

	data, err := history.Encode(h)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format export: %w", err)
	}
	pretty.WriteByte('\n')

	if c.Output == "" {
		ctx.Printf("%s", pretty.String())
		return nil
	}
	if err := os.WriteFile(c.Output, pretty.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %d entries to %s\n", len(h), c.Output)
	return nil
}

type ImportCmd struct {
	File    string `arg:"" help:"JSON file holding an exported history." type:"existingfile"`
	Replace bool   `help:"Replace the current history instead of merging."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	imported, err := history.DecodeFor(data, ctx.GetEngine())
	if err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	l, err := ctx.AcquireLock()
	if err != nil {
		return err
	}
	defer l.Release()

	repo := ctx.History()
	current, err := repo.Load()
	if err != nil {
		return err
	}

	var next models.History
	var added, skipped int
	if c.Replace {
		next, added = imported, len(imported)
	} else {
		next, added, skipped = Merge(current, imported)
	}

	if added == 0 && !c.Replace {
		ctx.Printf("Nothing to import (%d entries already present).\n", skipped)
		return nil
	}

	if backup.Supported(ctx.Store.GetConfigPath()) {
		if path, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup(); err != nil {
			logger.Warn("Pre-import backup failed", "error", err)
		} else {
			logger.Info("Pre-import backup created", "path", path)
		}
	}

	if err := repo.Save(next); err != nil {
		return err
	}

	if c.Replace {
		ctx.Printf("✓ Replaced history with %d imported entries (was %d).\n", added, len(current))
	} else {
		ctx.Printf("✓ Imported %d entries, skipped %d already recorded dates.\n", added, skipped)
	}
	return nil
}

// Merge appends the imported entries whose date is not yet recorded.
// When the import itself repeats a date, its first entry wins.
func Merge(current, imported models.History) (models.History, int, int) {
	next := current.Clone()
	if next == nil {
		next = models.History{}
	}
	seen := make(map[string]bool, len(current))
	for _, e := range current {
		seen[e.Date] = true
	}

	added, skipped := 0, 0
	for _, e := range imported {
		if seen[e.Date] {
			skipped++
			continue
		}
		seen[e.Date] = true
		next = append(next, e)
		added++
	}
	return next, added, skipped
}
