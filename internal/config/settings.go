package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultSignalCommand = "signal-cli"
	defaultSidebarWidth  = 28
	defaultLogLevel      = "info"
)

type Config struct {
	Signal        SignalConfig        `toml:"signal"`
	UI            UIConfig            `toml:"ui"`
	Notifications NotificationsConfig `toml:"notifications"`
	Logging       LoggingConfig       `toml:"logging"`
}

type SignalConfig struct {
	Command string `toml:"command"`
	Account string `toml:"account"`
	Name    string `toml:"name"`
}

type UIConfig struct {
	SidebarWidth int   `toml:"sidebar_width"`
	Markdown     *bool `toml:"markdown"`
}

type NotificationsConfig struct {
	Enabled *bool `toml:"enabled"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Signal: SignalConfig{
			Command: defaultSignalCommand,
		},
		UI: UIConfig{
			SidebarWidth: defaultSidebarWidth,
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
	}
}

// Load reads the settings file from the data directory, overlaying it on the
// defaults. A missing file yields the defaults unchanged.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) SignalCommand() string {
	cmd := strings.TrimSpace(c.Signal.Command)
	if cmd == "" {
		return defaultSignalCommand
	}
	return cmd
}

func (c Config) Account() string {
	return strings.TrimSpace(c.Signal.Account)
}

// UserName is the display name used for locally authored messages when the
// protocol client cannot resolve one.
func (c Config) UserName() string {
	name := strings.TrimSpace(c.Signal.Name)
	if name == "" {
		return "You"
	}
	return name
}

func (c Config) SidebarWidth() int {
	if c.UI.SidebarWidth <= 0 {
		return defaultSidebarWidth
	}
	return c.UI.SidebarWidth
}

func (c Config) MarkdownEnabled() bool {
	if c.UI.Markdown == nil {
		return true
	}
	return *c.UI.Markdown
}

func (c Config) NotificationsEnabled() bool {
	if c.Notifications.Enabled == nil {
		return true
	}
	return *c.Notifications.Enabled
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
