package constants

import "time"

const (
	AppName            = "lifetracker"
	DefaultKeyringUser = "database-connection"
	DefaultDBPath      = "~/.config/lifetracker/lifetracker.db"
	DefaultAddr        = ":8001"
	Version            = "v0.1.0"

	// APIPrefix is prepended to every HTTP route
	APIPrefix = "/api"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC timestamp so that stored values sort
	// lexically in chronological order.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

	// Life task defaults
	DefaultCategory    = "General"
	DefaultTargetValue = 100

	// Query caps
	ListLimit       = 1000
	WeekWindowDays  = 7
	WeekWindowLimit = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifetracker-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultShutdownTimeout = 10 * time.Second
	ReadHeaderTimeout      = 5 * time.Second

	// Postgres pool sizing
	PostgresMaxOpenConns    = 25
	PostgresMaxIdleConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)

// Response messages
const (
	MessageRoot                = "Journal & Life Tracker API"
	MessageJournalDeleted      = "Journal entry deleted successfully"
	MessageTaskDeleted         = "Task deleted successfully"
	MessageJournalExists       = "Journal entry already exists for this date"
	MessageJournalNotFound     = "Journal entry not found"
	MessageTaskNotFound        = "Task not found"
	MessageInternalServerError = "Internal server error"
)
