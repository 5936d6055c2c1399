package config

import (
	"fmt"
	"log/slog"
)

// validLogLevels maps the accepted log_level values to slog levels
var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// validLogFormats contains the accepted log_format values
var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// SlogLevel returns the configured level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	if level, ok := validLogLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// validateLogging ensures the log level and format are supported
// Empty values are valid and fall back to info/text
func validateLogging(level, format string) error {
	if _, ok := validLogLevels[level]; level != "" && !ok {
		return fmt.Errorf("unsupported log level '%s': supported levels are debug, info, warn, error", level)
	}

	if format != "" && !validLogFormats[format] {
		return fmt.Errorf("unsupported log format '%s': supported formats are text, json", format)
	}

	return nil
}
