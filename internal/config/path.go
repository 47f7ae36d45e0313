// Package config loads playdash settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and then expands $VAR
// references. An unresolvable home directory leaves the ~ in place.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

// DataDir is where playdash keeps its SQLite snapshot: $XDG_DATA_HOME/playdash,
// falling back to ~/.local/share/playdash.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "playdash")
	}
	return ExpandPath("~/.local/share/playdash")
}
