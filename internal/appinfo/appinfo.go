// Package appinfo provides application identity constants.
// These are used across packages for consistent naming.
package appinfo

const (
	// AppName is the display name of the application.
	AppName = "PocketScore"

	// DirName is the directory name used for storing application data.
	// Location: %LOCALAPPDATA%/pocketscore/ (Windows) or ~/.config/pocketscore/ (other)
	DirName = "pocketscore"

	// MutexName is the Windows mutex name for single instance control.
	// "Local\" prefix means the mutex is scoped to the current user session,
	// not system-wide.
	MutexName = "Local\\pocketscore"

	// LockFileName is the lock file name for single instance control.
	LockFileName = "pocketscore.lock"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.json"

	// DatabaseFileName is the SQLite database file name.
	DatabaseFileName = "pocketscore.sqlite"

	// SnapshotDirName is the internal snapshot directory under the data dir.
	SnapshotDirName = "snapshots"

	// SyncDirName is the app-private sync mirror under the data dir.
	SyncDirName = "sync"
)
