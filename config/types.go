package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	OMDB    OMDBConfig    `mapstructure:"omdb"`
	Match   MatchConfig   `mapstructure:"match"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDBConfig holds OMDB API connection details
type OMDBConfig struct {
	BaseURI   string        `mapstructure:"base_uri"`
	Key       string        `mapstructure:"key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
}

// MatchConfig contains named match expressions
type MatchConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// OutputConfig controls how entities are printed
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	ShowDetails bool   `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
