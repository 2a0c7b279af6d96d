package models

import "github.com/julianstephens/cortisol/internal/constants"

// Settings are the user preferences persisted next to the history
type Settings struct {
	Timezone       string `json:"timezone"`
	AutoBackup     bool   `json:"auto_backup"`
	ShowMotivation bool   `json:"show_motivation"`
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() Settings {
	return Settings{
		Timezone:       constants.DefaultTimezone,
		AutoBackup:     constants.DefaultAutoBackup,
		ShowMotivation: constants.DefaultShowMotivation,
	}
}
