package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by environment variables (TODO_*) or CLI flags

# Task data file (supports ~ and $VAR expansion; relative to the working directory)
data_file = "~/.todo/commander_db/to_do_list.csv"

# Default interface when no subcommand is given: menu or tui
ui = "menu"

# Capitalize task names typed into the shell ("buy milk" -> "Buy milk")
capitalize_names = true

# Disable colored output (NO_COLOR is honored as well)
no_color = false

# Logging: debug, info, warn, error or fatal
log_level = "warn"

# Log format: text, json or logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Write JSONL run logs under this directory instead of stderr
# log_dir = "~/.todo/logs"
`
}
