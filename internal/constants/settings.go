package constants

const (
	// Settings keys as stored in the settings document
	SettingTimezone       = "timezone"
	SettingAutoBackup     = "auto_backup"
	SettingShowMotivation = "show_motivation"

	// Default Settings Values
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultAutoBackup     = true
	DefaultShowMotivation = true
)
