package config

import (
	"strconv"
)

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		"data_file",
		"ui",
		"capitalize_names",
		"no_color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_dir",
	}
}

// Value returns the current value of field formatted for display.
// It returns false for unknown fields.
func (c *Config) Value(field string) (string, bool) {
	switch field {
	case "data_file":
		return c.DataFile, true
	case "ui":
		return c.UI, true
	case "capitalize_names":
		return strconv.FormatBool(c.CapitalizeNames), true
	case "no_color":
		return strconv.FormatBool(c.NoColor), true
	case "log_level":
		return c.LogLevel, true
	case "log_format":
		return c.LogFormat, true
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps), true
	case "log_caller":
		return strconv.FormatBool(c.LogCaller), true
	case "log_dir":
		return c.LogDir, true
	default:
		return "", false
	}
}

// UseTUI reports whether the default interface is the full-screen TUI.
func (c *Config) UseTUI() bool {
	return c.UI == UITUI
}
