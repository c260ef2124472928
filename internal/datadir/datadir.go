// Package datadir provides constants and utilities for the todo data directory structure.
package datadir

import "path/filepath"

const (
	// Root is the default application directory (supports ~ expansion).
	Root = "~/.todo"

	// Dir is the name of the folder holding the task database.
	Dir = "commander_db"

	// DataFile is the task database file name (inside Dir).
	DataFile = "to_do_list.csv"

	// ConfigFile is the config file name used at user and project level.
	ConfigFile = "todo.toml"
)

// DataPath returns the full path to the task database under root.
func DataPath(root string) string {
	return filepath.Join(DirPath(root), DataFile)
}

// DirPath returns the full path to the database folder under root.
func DirPath(root string) string {
	if root == "." || root == "" {
		return Dir
	}
	return filepath.Join(root, Dir)
}

// ConfigPath returns the full path to the config file under root.
func ConfigPath(root string) string {
	if root == "." || root == "" {
		return ConfigFile
	}
	return filepath.Join(root, ConfigFile)
}
