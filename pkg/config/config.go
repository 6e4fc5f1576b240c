// Package config loads the agent configuration from YAML with environment
// fallbacks.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config represents the application configuration.
type Config struct {
	// Agent identity. Fixed at construction; shared read-only afterwards.
	SpeakerURI         string `yaml:"speaker_uri"`
	ServiceURL         string `yaml:"service_url"`
	Organization       string `yaml:"organization"`
	ConversationalName string `yaml:"conversational_name"`
	Synopsis           string `yaml:"synopsis"`

	// Search provider configuration.
	SearchBaseURL     string   `yaml:"search_base_url"`
	MinSearchInterval Duration `yaml:"min_search_interval"`

	// Server configuration.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file and applies defaults and
// environment fallbacks.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SpeakerURI == "" {
		c.SpeakerURI = os.Getenv("AGENT_SPEAKER_URI")
	}
	if c.SpeakerURI == "" {
		c.SpeakerURI = "tag:openfloor-dev,2025:search-agent"
	}
	if c.ServiceURL == "" {
		c.ServiceURL = os.Getenv("AGENT_SERVICE_URL")
	}
	if c.ServiceURL == "" {
		c.ServiceURL = fmt.Sprintf("http://localhost:%d", c.portOrDefault())
	}
	if c.Organization == "" {
		c.Organization = "openfloor-dev"
	}
	if c.ConversationalName == "" {
		c.ConversationalName = "Search Assistant"
	}
	if c.Synopsis == "" {
		c.Synopsis = "Answers questions using DuckDuckGo web search"
	}
	if c.SearchBaseURL == "" {
		c.SearchBaseURL = os.Getenv("SEARCH_BASE_URL")
	}
	if c.MinSearchInterval == 0 {
		c.MinSearchInterval = Duration(2 * time.Second)
	}
	if c.Server.Port == 0 {
		c.Server.Port = c.portOrDefault()
	}
}

func (c *Config) portOrDefault() int {
	if c.Server.Port != 0 {
		return c.Server.Port
	}
	if p := os.Getenv("PORT"); p != "" {
		var port int
		if _, err := fmt.Sscanf(p, "%d", &port); err == nil && port > 0 {
			return port
		}
	}
	return 8080
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SpeakerURI == "" {
		return fmt.Errorf("speaker_uri is required")
	}
	if c.ServiceURL == "" {
		return fmt.Errorf("service_url is required")
	}
	if c.MinSearchInterval < 0 {
		return fmt.Errorf("min_search_interval must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	return nil
}
