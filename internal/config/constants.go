package config

// Default paths for persisted state
const (
	// DefaultLibraryPath is the default path of the persisted catalog file
	DefaultLibraryPath = "./library.json"

	// DefaultAuditDatabasePath is the default path of the audit trail database
	DefaultAuditDatabasePath = "./librarium-audit.db"
)
