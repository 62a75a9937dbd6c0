package logger

import (
	"errors"
	"strings"
)

// Config defines the logger configuration.
type Config struct {
	Level  string     `mapstructure:"level"`  // debug, info, warn, error
	Format string     `mapstructure:"format"` // json, console
	Output string     `mapstructure:"output"` // console, stderr, file, both
	File   FileConfig `mapstructure:"file"`
}

// FileConfig configures rotated file output.
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxAge     int    `mapstructure:"max_age"`  // days
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns JSON logging to stdout at info level.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: "console",
		File: FileConfig{
			Filename:   "logs/mina.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			Compress:   true,
		},
	}
}

// Validate checks level, format, output and the file settings when a file is written.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log level, must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return errors.New("invalid log format, must be 'json' or 'console'")
	}

	switch c.Output {
	case "console", "stderr", "file", "both":
	default:
		return errors.New("invalid log output, must be one of: console, stderr, file, both")
	}

	if c.Output == "file" || c.Output == "both" {
		if c.File.Filename == "" {
			return errors.New("log file filename is required when output is 'file' or 'both'")
		}
		if c.File.MaxSize <= 0 {
			return errors.New("log file max_size must be greater than 0")
		}
	}
	return nil
}
