package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OMDBQ_OMDB_KEY
const EnvPrefix = "OMDBQ"

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".omdbq"))
		}

		// Check /etc
		v.AddConfigPath("/etc/omdbq/")
	}

	// Read config file. Without an explicit path a missing file is fine as long
	// as the environment supplies the API key.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// OMDB defaults
	v.SetDefault("omdb.base_uri", "http://www.omdbapi.com/")
	v.SetDefault("omdb.key", "")
	v.SetDefault("omdb.timeout", "30s")
	v.SetDefault("omdb.rate_limit", 1.0)
	v.SetDefault("omdb.burst", 1)

	// Output defaults
	v.SetDefault("output.format", "console")
	v.SetDefault("output.show_details", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.OMDB.BaseURI == "" {
		return fmt.Errorf("omdb.base_uri is required")
	}

	if cfg.OMDB.Key == "" || cfg.OMDB.Key == "your-api-key-here" {
		return fmt.Errorf("omdb.key must be set to a valid API key")
	}

	if cfg.OMDB.Timeout <= 0 {
		return fmt.Errorf("omdb.timeout must be positive")
	}

	if cfg.OMDB.RateLimit < 0 {
		return fmt.Errorf("omdb.rate_limit cannot be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging and output formats
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	for name, expression := range cfg.Match.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("match preset '%s' has an empty expression", name)
		}
	}

	return nil
}
