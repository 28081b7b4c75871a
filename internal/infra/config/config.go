// Package config provides configuration loading from YAML files and the environment.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable holding the YouTube API key.
const EnvAPIKey = "YOUTUBE_API_KEY"

// Config represents the application configuration.
type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// YouTubeConfig represents YouTube Data API configuration.
type YouTubeConfig struct {
	APIKey   string `yaml:"api_key" validate:"required"`
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`
	PageSize int    `yaml:"page_size" default:"50" validate:"gte=1,lte=50"`
}

// OutputConfig represents report output configuration.
type OutputConfig struct {
	Format string `yaml:"format" default:"text" validate:"oneof=text json yaml"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"stderr"` // "stderr", "stdout", or file path
}

// Load loads configuration from an optional YAML file.
// An empty path skips the file. Environment variables take precedence
// over file values for the API key.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.YouTube.APIKey = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
