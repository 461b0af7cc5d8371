package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	GitLab GitLabConfig
	Slack  SlackConfig
	Server ServerConfig
}

// GitLabConfig holds GitLab API configuration
type GitLabConfig struct {
	Hostname    string
	Token       string
	Timeout     time.Duration
	JobsPerPage int
}

// SlackConfig holds Slack API configuration
type SlackConfig struct {
	Token   string
	Channel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// requiredVars are the environment variables the process cannot start without.
var requiredVars = []string{
	"GITLAB_API_TOKEN",
	"GITLAB_API_HOSTNAME",
	"SLACK_API_TOKEN",
	"SLACK_CHANNEL",
}

// overlay is the optional YAML tuning file pointed at by NOTIFIER_CONFIG.
// Environment variables always win over overlay values.
type overlay struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	GitLab struct {
		Timeout     string `yaml:"timeout"`
		JobsPerPage int    `yaml:"jobs_per_page"`
	} `yaml:"gitlab"`
}

// Load builds the process configuration from environment variables, with an
// optional YAML overlay for server tuning. All four API variables are
// required; a missing one is a startup error.
func Load() (*Config, error) {
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	cfg := &Config{
		GitLab: GitLabConfig{
			Hostname:    os.Getenv("GITLAB_API_HOSTNAME"),
			Token:       os.Getenv("GITLAB_API_TOKEN"),
			Timeout:     10 * time.Second,
			JobsPerPage: 100,
		},
		Slack: SlackConfig{
			Token:   os.Getenv("SLACK_API_TOKEN"),
			Channel: os.Getenv("SLACK_CHANNEL"),
		},
		Server: ServerConfig{
			Port: "3000",
		},
	}

	if path := os.Getenv("NOTIFIER_CONFIG"); path != "" {
		if err := applyOverlay(cfg, path); err != nil {
			return nil, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if cfg.GitLab.Timeout <= 0 {
		cfg.GitLab.Timeout = 10 * time.Second
	}
	if cfg.GitLab.JobsPerPage <= 0 {
		cfg.GitLab.JobsPerPage = 100
	}

	return cfg, nil
}

func applyOverlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config overlay %s: %w", path, err)
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("failed to parse config overlay %s: %w", path, err)
	}

	if o.Server.Port != "" {
		cfg.Server.Port = o.Server.Port
	}
	if o.GitLab.Timeout != "" {
		d, err := time.ParseDuration(o.GitLab.Timeout)
		if err != nil {
			return fmt.Errorf("invalid gitlab.timeout in %s: %w", path, err)
		}
		cfg.GitLab.Timeout = d
	}
	if o.GitLab.JobsPerPage > 0 {
		cfg.GitLab.JobsPerPage = o.GitLab.JobsPerPage
	}

	return nil
}

// HasGitLabToken returns true if a GitLab token is configured
func (c *Config) HasGitLabToken() bool {
	return c.GitLab.Token != ""
}

// HasSlackToken returns true if a Slack token is configured
func (c *Config) HasSlackToken() bool {
	return c.Slack.Token != ""
}
