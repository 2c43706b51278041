// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the importer configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or the environment.
type Config struct {
	// Connections
	APIKey      string `json:"api_key,omitempty" validate:"omitempty,min=8"`    // Gemini API key
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,uri"` // PostgreSQL connection URL

	// Pipeline behavior
	BlockSize    int  `json:"block_size,omitempty" validate:"omitempty,min=1,max=500"`       // Records per enrichment block
	BlockDelayMs int  `json:"block_delay_ms,omitempty" validate:"omitempty,min=0,max=60000"` // Pause between blocks in milliseconds
	UseAI        bool `json:"use_ai,omitempty"`                                              // Enable Gemini enrichment
	Verbose      bool `json:"verbose,omitempty"`                                             // Print detailed progress information

	// HTTP server
	ListenAddr string `json:"listen_addr,omitempty" validate:"omitempty,hostname_port"` // serve bind address
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config error: field '%s' failed '%s' validation", e.Field(), e.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults, then from the environment. This is used to apply config file
// values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Int fields: use default if zero
	if result.BlockSize == 0 {
		result.BlockSize = defaults.BlockSize
	}
	if result.BlockDelayMs == 0 {
		result.BlockDelayMs = defaults.BlockDelayMs
	}

	// Environment wins only when nothing else set a value
	if result.APIKey == "" {
		result.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
