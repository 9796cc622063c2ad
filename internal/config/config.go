// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config is the CLI configuration, loadable from a JSON file. All fields
// are optional; missing values use defaults or must come from CLI flags.
type Config struct {
	// Paths
	JobsFile         string `json:"jobs_file,omitempty"`          // Job records JSON export
	CacheFile        string `json:"cache_file,omitempty"`         // Skill cache snapshot
	ResponseCacheDir string `json:"response_cache_dir,omitempty"` // Raw taxonomy response cache

	// Connections
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL URL for the shared cache store
	OnetAPIKey   string `json:"onet_api_key,omitempty"` // O*NET Web Services key
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"`

	// Matching
	MatchThreshold    float64 `json:"match_threshold,omitempty" validate:"gte=0,lte=1"`
	PriorityBoost     float64 `json:"priority_boost,omitempty" validate:"gte=0,lte=2"`
	RequestIntervalMS int     `json:"request_interval_ms,omitempty" validate:"gte=0"`

	// Behavior
	Workers int  `json:"workers,omitempty" validate:"gte=0"`
	Verbose bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file and applies environment
// overrides for secrets.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills secrets from the environment when the file leaves them
// empty. Environment values never override explicit file values.
func (c *Config) applyEnv() {
	if c.OnetAPIKey == "" {
		c.OnetAPIKey = os.Getenv("ONET_API_KEY")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks value ranges and referenced files.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.JobsFile != "" {
		if _, err := os.Stat(c.JobsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs file not found: %s", c.JobsFile)
		}
	}
	return nil
}
