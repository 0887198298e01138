package config

import (
	"os"
	"path/filepath"
)

const appName = "autoinstall"

// DefaultConfigPath is $XDG_CONFIG_HOME/autoinstall/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.yaml")
}

// DefaultStorePath is $XDG_DATA_HOME/autoinstall/programs.txt.
func DefaultStorePath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), appName, "programs.txt")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, fallback)
}
