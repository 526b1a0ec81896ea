package config

import (
	"os"
	"path/filepath"

	"github.com/tacogips/gitignore-assist/internal/catalog"
)

// Environment variables that override the configuration file.
const (
	EnvSourceURL = "GITIGNORE_ASSIST_SOURCE_URL"
	EnvEditor    = "GITIGNORE_ASSIST_EDITOR"
)

// configNames are tried in order when locating the configuration file.
var configNames = []string{"config.json", "config.jsonc", "config.yaml", "config.yml"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:       catalog.DefaultURL,
			Timeout:   30,
			UserAgent: "gitignore-assist",
		},
	}
}

// DefaultConfigDir returns the directory holding the configuration file.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gitignore-assist")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "gitignore-assist")
}

// DefaultConfigPath returns the configuration file path: the first existing
// config.{json,jsonc,yaml,yml} in dir, or config.json when none exists.
func DefaultConfigPath(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, configNames[0])
}
