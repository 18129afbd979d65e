package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = ".murmur"

// envDataDir overrides the default data directory when set.
const envDataDir = "MURMUR_DATA_DIR"

// DataDir returns the base data directory for murmur.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envDataDir)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// EnsureDataDir creates the data directory if it does not exist yet and
// returns its path.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// SnapshotPath returns the path to the persisted application snapshot.
func SnapshotPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "snapshot.json"), nil
}

// LogPath returns the path to the log file.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "murmur.log"), nil
}
