package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	Check   CheckConfig   `toml:"check"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name" validate:"required"`
	Transport string `toml:"transport" validate:"oneof=stdio http"`
	Port      string `toml:"port" validate:"required,numeric"`
}

// APIConfig contains the upstream RapidAPI settings.
// Key may be empty; invocations then fail fast instead of calling out.
type APIConfig struct {
	Host           string `toml:"host" validate:"required,hostname"`
	BaseURL        string `toml:"base_url" validate:"required,url"`
	Key            string `toml:"key"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gt=0"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs" validate:"dive,oneof=console file"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int      `toml:"max_backups" validate:"gte=0"`
}

// CheckConfig contains settings for the diagnostic check command.
type CheckConfig struct {
	DelayMS int `toml:"delay_ms" validate:"gte=0"`
}

// HasCredential reports whether an upstream API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.API.Key) != ""
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies RAPIDAPI_KEY and YOUTUBE138_* environment variable overrides to config.
func applyEnvOverrides(config *Config) error {
	if key := os.Getenv("RAPIDAPI_KEY"); key != "" {
		config.API.Key = key
	}
	if baseURL := os.Getenv("YOUTUBE138_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("YOUTUBE138_TIMEOUT_SECONDS"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("invalid YOUTUBE138_TIMEOUT_SECONDS %q: expected whole seconds", timeout)
		}
		config.API.TimeoutSeconds = t
	}
	if port := os.Getenv("YOUTUBE138_MCP_PORT"); port != "" {
		config.Server.Port = port
	}
	if transport := os.Getenv("YOUTUBE138_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if level := os.Getenv("YOUTUBE138_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, logLevel string, http bool, port string) {
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if http {
		config.Server.Transport = "http"
	}
	if port != "" {
		config.Server.Port = port
	}
}
