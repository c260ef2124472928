package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables and records the
// environment as the source of every value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODO_DATA_FILE"); v != "" {
		cfg.DataFile = v
		set("data_file")
	}
	if v := os.Getenv("TODO_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TODO_UI"); v != "" {
		cfg.UI = v
		set("ui")
	}
	if v := os.Getenv("TODO_CAPITALIZE"); v != "" {
		cfg.CapitalizeNames = boolFromString(v)
		set("capitalize_names")
	}

	// NO_COLOR disables color when set to any non-empty value.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.NoColor = true
		set("no_color")
	}
	if v := os.Getenv("TODO_NO_COLOR"); v != "" {
		cfg.NoColor = boolFromString(v)
		set("no_color")
	}

	// Logging configuration
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString reports whether v is one of 1, true, yes or on (any case).
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
