package config

import (
	"github.com/nibzard/todo-go/internal/datadir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were loaded, lowest priority first.
	Files []string
}

// UI modes.
const (
	UIMenu = "menu"
	UITUI  = "tui"
)

// Default values.
var DefaultDataFile = datadir.DataPath(datadir.Root)

const (
	DefaultUI              = UIMenu
	DefaultCapitalizeNames = true
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	DataFile string `toml:"data_file" validate:"required"`
	LogDir   string `toml:"log_dir"`

	// Interface
	UI              string `toml:"ui" validate:"oneof=menu tui"`
	CapitalizeNames bool   `toml:"capitalize_names"`
	NoColor         bool   `toml:"no_color"`

	// Logging configuration
	LogLevel      string `toml:"log_level" validate:"oneof=debug info warn error fatal"`
	LogFormat     string `toml:"log_format" validate:"oneof=text json logfmt"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}
