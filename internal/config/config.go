package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional batchsplit configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults. Nil means "not set".
type DefaultsConfig struct {
	Quiet   *bool   `toml:"quiet"`
	Verbose *bool   `toml:"verbose"`
	Lock    *bool   `toml:"lock"`
	Journal *string `toml:"journal"`
	Log     *string `toml:"log"`
}

// ThemeConfig holds optional color overrides for terminal output.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Red    *string `toml:"red"`
	Yellow *string `toml:"yellow"`
	Muted  *string `toml:"muted"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "batchsplit", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file yields a zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
