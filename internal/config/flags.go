package config

import (
	"flag"
)

// flagToField maps global flag names to config field names.
var flagToField = map[string]string{
	"data":           "data_file",
	"log-dir":        "log_dir",
	"ui":             "ui",
	"capitalize":     "capitalize_names",
	"no-color":       "no_color",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args and applies only the
// flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	// Bind to copies so that unset flags never clobber file or env values.
	v := *cfg

	// Paths
	fs.StringVar(&v.DataFile, "data", cfg.DataFile, "Path to the task data file")
	fs.StringVar(&v.LogDir, "log-dir", cfg.LogDir, "Write JSONL run logs under this directory")

	// Interface
	fs.StringVar(&v.UI, "ui", cfg.UI, "Default interface (menu, tui)")
	fs.BoolVar(&v.CapitalizeNames, "capitalize", cfg.CapitalizeNames, "Capitalize task names entered in the shell")
	fs.BoolVar(&v.NoColor, "no-color", cfg.NoColor, "Disable colored output")

	// Logging
	fs.StringVar(&v.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&v.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&v.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&v.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToField[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "data":
			cfg.DataFile = v.DataFile
		case "log-dir":
			cfg.LogDir = v.LogDir
		case "ui":
			cfg.UI = v.UI
		case "capitalize":
			cfg.CapitalizeNames = v.CapitalizeNames
		case "no-color":
			cfg.NoColor = v.NoColor
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "log-format":
			cfg.LogFormat = v.LogFormat
		case "log-timestamps":
			cfg.LogTimestamps = v.LogTimestamps
		case "log-caller":
			cfg.LogCaller = v.LogCaller
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
