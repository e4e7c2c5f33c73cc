// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
	Username    string `env:"POODLE_USERNAME"`
	// ProfileRepo is the owner/name of the repository hosting the widget and
	// its interaction issues. Defaults to the profile repo (username/username).
	ProfileRepo string `env:"POODLE_REPO"`

	StatePath   string `env:"POODLE_STATE_FILE" default:"poodle/state.json"`
	ReadmePath  string `env:"POODLE_README" default:"README.md"`
	PhrasesFile string `env:"POODLE_PHRASES_FILE"`

	RefreshInterval time.Duration `env:"POODLE_REFRESH_INTERVAL" default:"6h"`
	CooldownWindow  time.Duration `env:"POODLE_COOLDOWN_WINDOW" default:"10m"`
	RateLimitWindow time.Duration `env:"POODLE_RATE_WINDOW" default:"24h"`
	RateLimitMax    int           `env:"POODLE_RATE_MAX" default:"5"`

	Port          string `env:"PORT" default:"8080"`
	WebhookSecret string `env:"POODLE_WEBHOOK_SECRET"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.ProfileRepo == "" {
		cfg.ProfileRepo = cfg.Username + "/" + cfg.Username
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"GITHUB_TOKEN":    cfg.GitHubToken,
		"POODLE_USERNAME": cfg.Username,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.ProfileRepo != "" && len(strings.Split(cfg.ProfileRepo, "/")) != 2 {
		return fmt.Errorf("POODLE_REPO must be owner/name, got %q", cfg.ProfileRepo)
	}

	if cfg.RateLimitMax < 1 {
		return fmt.Errorf("POODLE_RATE_MAX must be at least 1, got %d", cfg.RateLimitMax)
	}

	return nil
}

// SplitRepo returns the owner and name of the profile repository.
func (c *Config) SplitRepo() (owner, name string) {
	parts := strings.SplitN(c.ProfileRepo, "/", 2)
	return parts[0], parts[1]
}
