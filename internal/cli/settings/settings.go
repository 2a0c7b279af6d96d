package settings

import (
	"fmt"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/storage"
	"github.com/julianstephens/cortisol/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone       *string `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	AutoBackup     *bool   `help:"Back up automatically when the TUI starts."`
	ShowMotivation *bool   `help:"Show motivational messages."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:        %s\n", settings.Timezone)
		ctx.Printf("  Auto Backup:     %v\n", settings.AutoBackup)
		ctx.Printf("  Show Motivation: %v\n", settings.ShowMotivation)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}
	if c.ShowMotivation != nil {
		settings.ShowMotivation = *c.ShowMotivation
		updated = true
	}

	if updated {
		if err := storage.SaveSettings(ctx.Store, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
