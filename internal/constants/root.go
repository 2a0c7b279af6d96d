package constants

// SessionState represents the current state of the TUI application
type SessionState int

// Phase is the cosmetic progression bucket derived from the number of entries
type Phase string

const (
	AppName            = "cortisol"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cortisol/cortisol.db"
	Version            = "v0.3.0"

	// Environment overrides
	EnvConfig       = "CORTISOL_CONFIG"
	EnvDebug        = "CORTISOL_DEBUG"
	EnvDBConnection = "CORTISOL_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys. EntriesKey holds the whole serialized history.
	EntriesKey  = "cortisol_entries"
	SettingsKey = "cortisol_settings"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "cortisol-"
	BackupFileSuffix = ".db"

	// Session lock
	LockfileName      = "cortisol.lock"
	ProcessNamePrefix = "cortisol"

	// Phases
	PhaseStabilize Phase = "Stabilize"
	PhaseRebalance Phase = "Rebalance"
	PhaseRebuild   Phase = "Rebuild"
)

// Session states. The first three are the tabs, in display order.
const (
	StateToday SessionState = iota
	StateHistory
	StateProgress
	StateEditing
	StateConfirmation
)
