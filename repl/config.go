package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user's repl configuration.
type Config struct {
	Prompt         string      `toml:"prompt"`
	Echo           *bool       `toml:"echo"`
	HistoryFile    string      `toml:"history_file"`
	HistoryEntries int         `toml:"history_entries"`
	PathCompletion *bool       `toml:"path_completion"`
	Login          LoginConfig `toml:"login"`
}

// LoginConfig enables the login gate when both user and password are set.
type LoginConfig struct {
	User     string `toml:"user"`
	Password string `toml:"password"`
	Trigger  string `toml:"trigger"` // single byte, default "\r"
}

// ConfigDir returns the config directory path.
// Resolution order: $TINYSH_CONFIG_DIR > $XDG_CONFIG_HOME/tinysh > ~/.config/tinysh
func ConfigDir() string {
	if dir := os.Getenv("TINYSH_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tinysh")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "tinysh-config")
	}
	return filepath.Join(home, ".config", "tinysh")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	echo := true
	pathComp := true
	return &Config{
		Prompt:         "> ",
		Echo:           &echo,
		HistoryFile:    filepath.Join(ConfigDir(), "history"),
		HistoryEntries: 500,
		PathCompletion: &pathComp,
		Login:          LoginConfig{Trigger: "\r"},
	}
}

// LoadConfig loads config from disk or returns defaults if not found.
func LoadConfig() (*Config, error) {
	path := ConfigPath()
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.Echo == nil {
		cfg.Echo = defaults.Echo
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaults.HistoryFile
	}
	if cfg.HistoryEntries == 0 {
		cfg.HistoryEntries = defaults.HistoryEntries
	}
	if cfg.PathCompletion == nil {
		cfg.PathCompletion = defaults.PathCompletion
	}
	if cfg.Login.Trigger == "" {
		cfg.Login.Trigger = defaults.Login.Trigger
	}

	return &cfg, nil
}

// ValidateConfig checks configuration for potential issues and returns warnings.
func ValidateConfig(cfg *Config) []string {
	var warnings []string
	if cfg == nil {
		return warnings
	}
	if len(cfg.Login.Trigger) > 1 {
		warnings = append(warnings, "login.trigger is longer than one byte; only the first byte is used")
	}
	if cfg.Login.User != "" && cfg.Login.Password == "" {
		warnings = append(warnings, "login.user is set without login.password; the gate is disabled")
	}
	return warnings
}
