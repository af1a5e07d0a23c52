package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory and the log file.
const AppName = "agoricup"

// Dir returns the agoricup config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/agoricup; on macOS
// to ~/Library/Application Support/agoricup; and on Windows to %AppData%/agoricup.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, AppName), nil
}

// SettingsPath returns the default settings.yaml location.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// LogPath returns the log panel file location.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", AppName+".log"), nil
}
