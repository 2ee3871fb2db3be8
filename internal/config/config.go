// Package config loads tvctl's configuration: a YAML file for the stable
// settings plus environment variables (optionally from a .env file) for
// credentials.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything tvctl needs to construct a tradervue.Client.
type Config struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	UserAgent   string `yaml:"user_agent"`
	TargetUser  string `yaml:"target_user,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	VerboseHTTP bool   `yaml:"verbose_http,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// Load reads the config file at path (skipped when path is empty or the
// file does not exist) and then applies environment overrides. A .env file
// in the working directory is honored if present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; credentials may come from the real environment.
	_ = godotenv.Load()

	cfg := &Config{
		UserAgent: "tvctl (github.com/rustyeddy/tradervue-go)",
		LogLevel:  "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if v := os.Getenv("TRADERVUE_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("TRADERVUE_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("TRADERVUE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("TRADERVUE_TARGET_USER"); v != "" {
		c.TargetUser = v
	}
	if v := os.Getenv("TRADERVUE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TRADERVUE_VERBOSE_HTTP"); v == "true" || v == "1" {
		c.VerboseHTTP = true
	}
	if v := os.Getenv("TRADERVUE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the credentials needed for any API call are present.
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required (config file or TRADERVUE_USERNAME)")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required (config file or TRADERVUE_PASSWORD)")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}
	return nil
}
