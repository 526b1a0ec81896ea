package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path. Files ending in
// .yaml or .yml are parsed as YAML; anything else as JSON, where comments
// and trailing commas are allowed.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	// Decode over the defaults so that absent fields keep them while
	// explicit zero values, such as a timeout of 0, are preserved.
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
		}
	}

	mergeConfig(cfg, DefaultConfig())

	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		// If file not found, return defaults
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if strings.TrimSpace(config.Source.URL) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "source.url", "URL cannot be empty")
	}
	if !strings.HasPrefix(config.Source.URL, "http://") && !strings.HasPrefix(config.Source.URL, "https://") {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "source.url", "URL must use http or https")
	}
	if config.Source.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "source.timeout", "timeout cannot be negative")
	}
	return nil
}

// ApplyEnv overrides configuration values from the environment.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvSourceURL); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv(EnvEditor); v != "" {
		cfg.Workspace.Editor = v
	}
}

// mergeConfig restores defaults for string fields set to empty values.
func mergeConfig(cfg, defaults *Config) {
	if cfg.Source.URL == "" {
		cfg.Source.URL = defaults.Source.URL
	}
	if cfg.Source.UserAgent == "" {
		cfg.Source.UserAgent = defaults.Source.UserAgent
	}
}
