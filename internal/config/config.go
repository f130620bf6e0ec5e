package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceConfig describes the availability endpoint: where it lives and the
// headers it requires. The endpoint URL and user ID are secrets in practice,
// so TBS_URL and TBS_USER_ID environment variables override the file.
type SourceConfig struct {
	URL            string            `yaml:"url"`
	UserID         string            `yaml:"user_id"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout for the availability source.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type Config struct {
	Source          SourceConfig `yaml:"source"`
	CacheTTLMinutes int          `yaml:"cache_ttl_minutes"`
}

// CacheTTL returns the payload cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Load reads the YAML config file, applies .env / environment overrides for
// the source credentials, and fills defaults. A missing config file is fine
// as long as the environment carries the endpoint settings.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Config file is optional.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// .env is optional for local development.
	_ = godotenv.Load()

	if v := os.Getenv("TBS_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("TBS_USER_ID"); v != "" {
		cfg.Source.UserID = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = 30
	}
	if c.CacheTTLMinutes == 0 {
		c.CacheTTLMinutes = 15
	}
}

func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source url is required (set source.url or TBS_URL)")
	}
	if c.Source.TimeoutSeconds < 1 || c.Source.TimeoutSeconds > 120 {
		return fmt.Errorf("source timeout_seconds must be between 1 and 120")
	}
	if c.CacheTTLMinutes < 1 {
		return fmt.Errorf("cache_ttl_minutes must be positive")
	}
	return nil
}
