package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// PrivateFilePermissions is used for files holding session state
	PrivateFilePermissions = 0600
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.redactcli)
	ConfigDir string

	// ConfigFile is the user configuration file
	ConfigFile string

	// SessionsDir holds per-session state files for the file backend
	SessionsDir string

	// DatabasePath is the SQLite database file for the sqlite backend
	DatabasePath string

	// LogFile is where the TUI writes its log
	LogFile string
)

// LocalConfigFile is the project-local configuration file name
const LocalConfigFile = ".redactcli.yaml"

// Initialize sets up the configuration directories
// It creates ~/.redactcli/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".redactcli"))
}

// InitializeAt sets up the configuration directories under dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	SessionsDir = filepath.Join(ConfigDir, "sessions")
	DatabasePath = filepath.Join(ConfigDir, "redactcli.db")
	LogFile = filepath.Join(ConfigDir, "redactcli.log")

	dirs := []string{ConfigDir, SessionsDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	return nil
}

// LocalConfigExists checks if there's a local .redactcli.yaml
func LocalConfigExists() bool {
	_, err := os.Stat(LocalConfigFile)
	return err == nil
}

// SessionID returns the identifier of the current terminal session.
// REDACTCLI_SESSION wins; otherwise the parent shell's PID scopes the state.
func SessionID() string {
	if id := os.Getenv("REDACTCLI_SESSION"); id != "" {
		return id
	}
	return fmt.Sprintf("ppid-%d", os.Getppid())
}
