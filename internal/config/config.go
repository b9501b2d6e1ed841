package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the console configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Agency  AgencyConfig  `yaml:"agency"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout"`
}

// AgencyConfig points at the remote Spy Cat Agency service.
type AgencyConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:               ":3000",
			ShutdownTimeout:    10 * time.Second,
			SessionIdleTimeout: 30 * time.Minute,
		},
		Agency: AgencyConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SCA_AGENCY_URL"); v != "" {
		c.Agency.BaseURL = v
	}
	if v := os.Getenv("SCA_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SCA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Agency.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("agency.base_url %q is not an absolute URL", c.Agency.BaseURL)
	}
	if c.Agency.Timeout <= 0 {
		return errors.New("agency.timeout must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must be set")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Server.SessionIdleTimeout <= 0 {
		return errors.New("server.session_idle_timeout must be positive")
	}
	return nil
}
