package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
)

// Config represents the application configuration.
type Config struct {
	APIBaseURL     string `json:"api_base_url" env:"DEVLIFT_API_BASE_URL"`
	RequestTimeout string `json:"request_timeout,omitempty" env:"DEVLIFT_REQUEST_TIMEOUT"`
	StateDir       string `json:"state_dir,omitempty" env:"DEVLIFT_STATE_DIR"`
	LogLevel       string `json:"log_level,omitempty" env:"DEVLIFT_LOG_LEVEL"`
}

// Timeout parses the configured request timeout, falling back to 30s when
// unset or unparseable.
func (c *Config) Timeout() (timeout time.Duration) {
	timeout = 30 * time.Second
	if c.RequestTimeout == "" {
		return timeout
	}
	parsed, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return timeout
	}
	timeout = parsed
	return timeout
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".devlift", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable
// overrides. A missing config file is not an error: the defaults plus the
// environment are enough to run against the production API.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file when present
	data, readErr := os.ReadFile(path)
	if readErr == nil {
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	} else if !os.IsNotExist(readErr) {
		err = errors.Wrapf(readErr, "failed to read config file: %s", path)
		return cfg, err
	}

	// A .env file in the working directory overrides the file, and real
	// environment variables override both.
	_ = godotenv.Load()
	err = envconfig.Process(context.Background(), &cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to process environment overrides")
		return cfg, err
	}

	cfg.applyDefaults()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.StateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			c.StateDir = filepath.Join(homeDir, ".devlift")
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.StateDir == "" {
		err = errors.New("state_dir is required (set in config or DEVLIFT_STATE_DIR env var)")
		return err
	}

	if c.RequestTimeout != "" {
		_, parseErr := time.ParseDuration(c.RequestTimeout)
		if parseErr != nil {
			err = errors.Errorf("request_timeout is not a duration: %s", c.RequestTimeout)
			return err
		}
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		APIBaseURL:     "https://api.devlift.io",
		RequestTimeout: "30s",
		StateDir:       dir,
		LogLevel:       "warn",
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
