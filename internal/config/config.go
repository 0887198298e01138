// Package config handles loading and parsing the autoinstall settings file.
package config

import (
	"autoinstall/internal/pathutil"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the user settings. Every field is optional except version.
type Config struct {
	Version  string `yaml:"version"`
	Store    string `yaml:"store,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Version:  "1",
		Store:    DefaultStorePath(),
		LogLevel: "info",
	}
}

// Load reads and parses a config file from the given path. Relative store
// and log paths are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	expanded := pathutil.Expand(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Version == "" {
		return nil, errors.New("config missing version field")
	}

	if cfg.Version != "1" {
		return nil, fmt.Errorf("unsupported config version: %s", cfg.Version)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	dir := filepath.Dir(expanded)
	if cfg.Store == "" {
		cfg.Store = DefaultStorePath()
	} else {
		cfg.Store = resolve(dir, cfg.Store)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = resolve(dir, cfg.LogFile)
	}

	return &cfg, nil
}

// LoadOptional behaves like Load but returns Default when the file does
// not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func resolve(dir, p string) string {
	p = pathutil.Expand(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
