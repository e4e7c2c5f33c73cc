package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")
	t.Setenv("POODLE_USERNAME", "ba4bes")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ba4bes/ba4bes", cfg.ProfileRepo, "profile repo defaults to username/username")
	assert.Equal(t, "poodle/state.json", cfg.StatePath)
	assert.Equal(t, "README.md", cfg.ReadmePath)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 10*time.Minute, cfg.CooldownWindow)
	assert.Equal(t, 24*time.Hour, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POODLE_REPO", "ba4bes/profile")
	t.Setenv("POODLE_REFRESH_INTERVAL", "30m")
	t.Setenv("POODLE_RATE_MAX", "3")
	t.Setenv("POODLE_WEBHOOK_SECRET", "hunter2")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ba4bes/profile", cfg.ProfileRepo)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.Equal(t, "hunter2", cfg.WebhookSecret)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		token string
		user  string
		want  string
	}{
		{"missing token", "", "ba4bes", "GITHUB_TOKEN"},
		{"missing username", "ghp_testtoken", "", "POODLE_USERNAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.token)
			t.Setenv("POODLE_USERNAME", tt.user)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRejectsMalformedRepo(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POODLE_REPO", "not-a-repo-path")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "POODLE_REPO")
}

func TestLoadRejectsZeroRateMax(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POODLE_RATE_MAX", "0")

	_, err := Load()

	assert.Error(t, err)
}

func TestSplitRepo(t *testing.T) {
	cfg := &Config{ProfileRepo: "ba4bes/profile"}

	owner, name := cfg.SplitRepo()

	assert.Equal(t, "ba4bes", owner)
	assert.Equal(t, "profile", name)
}
