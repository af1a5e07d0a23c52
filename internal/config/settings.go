package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Distribution channels for deciding whether an update is available.
const (
	ChannelGit = "git" // compare SDK commit hashes
	ChannelNpm = "npm" // compare published package versions
)

// Defaults.
const (
	DefaultRepository = "https://github.com/Agoric/agoric-sdk"
	DefaultBranch     = "master"
	DefaultLogLevel   = "info"
)

// ErrUnknownKey is returned by Set for keys settings.yaml does not define.
var ErrUnknownKey = errors.New("unknown setting")

// Settings is the user configuration stored in settings.yaml.
// Path: <user config dir>/agoricup/settings.yaml
type Settings struct {
	InstallDir string `yaml:"installDir,omitempty" json:"installDir,omitempty" jsonschema:"description=Directory the SDK is cloned into. Defaults to the home directory when unset or invalid."`
	AutoUpdate *bool  `yaml:"autoUpdate,omitempty" json:"autoUpdate,omitempty" jsonschema:"description=Apply updates without asking,default=true"`
	Channel    string `yaml:"channel,omitempty" json:"channel,omitempty" jsonschema:"enum=git,enum=npm,default=git,description=How the available version is determined"`
	Branch     string `yaml:"branch,omitempty" json:"branch,omitempty" jsonschema:"default=master,description=SDK branch to clone and track"`
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty" jsonschema:"default=https://github.com/Agoric/agoric-sdk"`
	LogLevel   string `yaml:"logLevel,omitempty" json:"logLevel,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Channel:    ChannelGit,
		Branch:     DefaultBranch,
		Repository: DefaultRepository,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads settings from path.
// If the file does not exist, returns Defaults() and no error.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Defaults(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s.normalize(), nil
}

// Save writes settings to path, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (s Settings) normalize() Settings {
	d := Defaults()
	s.Channel = strings.ToLower(strings.TrimSpace(s.Channel))
	if s.Channel != ChannelGit && s.Channel != ChannelNpm {
		s.Channel = d.Channel
	}
	s.Branch = strings.TrimSpace(s.Branch)
	if s.Branch == "" {
		s.Branch = d.Branch
	}
	s.Repository = strings.TrimSpace(s.Repository)
	if s.Repository == "" {
		s.Repository = d.Repository
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		s.LogLevel = d.LogLevel
	}
	s.InstallDir = strings.TrimSpace(s.InstallDir)
	return s
}

// AutoUpdateEnabled reports the auto-update preference; unset means true.
// An explicit false is honoured.
func (s Settings) AutoUpdateEnabled() bool {
	if s.AutoUpdate == nil {
		return true
	}
	return *s.AutoUpdate
}

// ResolveInstallDir returns the configured install directory, or home when
// the setting is unset or does not name an existing directory. The second
// result is true when the fallback was used for a non-empty setting.
func (s Settings) ResolveInstallDir(home string) (string, bool) {
	dir := s.InstallDir
	if dir == "" {
		return home, false
	}
	if dir == "~" {
		dir = home
	} else if strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		dir = filepath.Join(home, dir[2:])
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return home, true
	}
	return dir, false
}

// Keys lists the settable keys in stable order.
func Keys() []string {
	keys := []string{"installDir", "autoUpdate", "channel", "branch", "repository", "logLevel"}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the setting named key.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "installDir":
		s.InstallDir = value
	case "autoUpdate":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("autoUpdate: %w", err)
		}
		s.AutoUpdate = &b
	case "channel":
		v := strings.ToLower(value)
		if v != ChannelGit && v != ChannelNpm {
			return fmt.Errorf("channel must be %q or %q", ChannelGit, ChannelNpm)
		}
		s.Channel = v
	case "branch":
		s.Branch = value
	case "repository":
		s.Repository = value
	case "logLevel":
		v := strings.ToLower(value)
		switch v {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("logLevel must be one of debug, info, warn, error")
		}
		s.LogLevel = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
