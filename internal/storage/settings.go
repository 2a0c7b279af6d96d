package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
)

// GetSettings reads the settings document, falling back to defaults when it
// is absent or unreadable. Missing fields keep their default values.
func GetSettings(kv KV) (models.Settings, error) {
	settings := models.DefaultSettings()

	raw, err := kv.Get(constants.SettingsKey)
	if errors.Is(err, ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("Ignoring malformed settings", "error", err)
		return models.DefaultSettings(), nil
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	return settings, nil
}

// SaveSettings writes the whole settings document
func SaveSettings(kv KV, settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := kv.Set(constants.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
