package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredVars(t *testing.T) {
	t.Setenv("GITLAB_API_TOKEN", "glpat-test")
	t.Setenv("GITLAB_API_HOSTNAME", "gitlab.example.com")
	t.Setenv("SLACK_API_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL", "C12345")
	t.Setenv("PORT", "")
	t.Setenv("NOTIFIER_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "gitlab.example.com", cfg.GitLab.Hostname)
	assert.Equal(t, "glpat-test", cfg.GitLab.Token)
	assert.Equal(t, 10*time.Second, cfg.GitLab.Timeout)
	assert.Equal(t, 100, cfg.GitLab.JobsPerPage)
	assert.Equal(t, "xoxb-test", cfg.Slack.Token)
	assert.Equal(t, "C12345", cfg.Slack.Channel)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for _, name := range requiredVars {
		t.Run(name, func(t *testing.T) {
			setRequiredVars(t)
			t.Setenv(name, "")

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_PortOverride(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("PORT", "8080")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_Overlay(t *testing.T) {
	setRequiredVars(t)

	path := filepath.Join(t.TempDir(), "notifier.yaml")
	overlay := `
server:
  port: "9000"
gitlab:
  timeout: 3s
  jobs_per_page: 50
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0644))
	t.Setenv("NOTIFIER_CONFIG", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.GitLab.Timeout)
	assert.Equal(t, 50, cfg.GitLab.JobsPerPage)
}

func TestLoad_EnvWinsOverOverlay(t *testing.T) {
	setRequiredVars(t)

	path := filepath.Join(t.TempDir(), "notifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0644))
	t.Setenv("NOTIFIER_CONFIG", path)
	t.Setenv("PORT", "8080")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_BadOverlay(t *testing.T) {
	setRequiredVars(t)

	path := filepath.Join(t.TempDir(), "notifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0644))
	t.Setenv("NOTIFIER_CONFIG", path)

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_OverlayBadTimeout(t *testing.T) {
	setRequiredVars(t)

	path := filepath.Join(t.TempDir(), "notifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gitlab:\n  timeout: fast\n"), 0644))
	t.Setenv("NOTIFIER_CONFIG", path)

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gitlab.timeout")
}

func TestLoad_MissingOverlayFile(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("NOTIFIER_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestConfig_TokenHelpers(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.HasGitLabToken())
	assert.True(t, cfg.HasSlackToken())

	empty := &Config{}
	assert.False(t, empty.HasGitLabToken())
	assert.False(t, empty.HasSlackToken())
}
