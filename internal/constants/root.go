package constants

import "time"

const (
	AppName            = "sitediary"
	DefaultKeyringUser = "sync-token"
	DefaultConfigPath  = "~/.config/sitediary/sitediary.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard wall-clock format for working hours (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "sitediary-"
	BackupFileSuffix = ".db"

	// Sync constants
	DefaultSyncTimeout = 30 * time.Second
	SyncMaxAttempts    = 3
	SyncRetryBaseDelay = 500 * time.Millisecond

	// Export constants
	ArtifactPrefix  = "aha-site-diary-"
	BulkArtifactID  = "exports"
	ListSeparator   = ", "
	ExportWorkers   = 4
	MaxColumnWidth  = 60
	ImageWidthMM    = 100.0
	ImageBreakMM    = 60.0
	PageMarginMM    = 20.0
	MinSectionSpace = 30.0
)
