// Package config provides configuration types and defaults for vertext.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/vertext/internal/log"
)

// Config holds all configuration options for vertext.
type Config struct {
	TabStop        int           `mapstructure:"tab_stop"`        // Columns per tab stop when rendering
	QuitTimes      int           `mapstructure:"quit_times"`      // Extra Ctrl-Q presses required to quit with unsaved changes
	MessageTimeout time.Duration `mapstructure:"message_timeout"` // How long a status message stays visible
	Watch          bool          `mapstructure:"watch"`           // Warn when the open file changes on disk
	WatchDebounce  time.Duration `mapstructure:"watch_debounce"`  // Quiet period before reporting a disk change
	LogFile        string        `mapstructure:"log_file"`        // Debug log path (used with --debug)
	LogLevel       string        `mapstructure:"log_level"`       // Minimum level written to the debug log
	Debug          bool          `mapstructure:"debug"`
}

// Limits enforced by Validate.
const (
	MinTabStop = 1
	MaxTabStop = 32
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		TabStop:        8,
		QuitTimes:      2,
		MessageTimeout: 5 * time.Second,
		Watch:          true,
		WatchDebounce:  500 * time.Millisecond,
		LogFile:        "debug.log",
		LogLevel:       "debug",
		Debug:          false,
	}
}

// Validate checks that every option is usable.
func Validate(c Config) error {
	if c.TabStop < MinTabStop || c.TabStop > MaxTabStop {
		return fmt.Errorf("tab_stop must be between %d and %d, got %d", MinTabStop, MaxTabStop, c.TabStop)
	}
	if c.QuitTimes < 0 {
		return fmt.Errorf("quit_times must not be negative, got %d", c.QuitTimes)
	}
	if c.MessageTimeout <= 0 {
		return fmt.Errorf("message_timeout must be positive, got %s", c.MessageTimeout)
	}
	if c.Watch && c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	tmpl, err := DefaultConfigTemplate()
	if err != nil {
		return fmt.Errorf("rendering default config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(tmpl), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
