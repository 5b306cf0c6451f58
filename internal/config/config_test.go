package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig_LoadsFromYAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "4000"
  session_secret: "test-secret"
  log_level: "debug"
  cors_origins:
    - "http://localhost:5173"
api:
  base_url: "https://api.bandly.test/"
  timeout: 10s
feedback:
  show_probability: 0.5
analytics:
  enabled: true
`)
	t.Setenv("BANDLY_CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Server.SessionSecret)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "https://api.bandly.test", cfg.APIBaseURL())
	assert.Equal(t, 10*time.Second, cfg.APITimeout())
	assert.InDelta(t, 0.5, cfg.ShowProbability(), 1e-9)
	assert.True(t, cfg.Analytics.Enabled)
}

func TestNewConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "4000"
api:
  base_url: "https://file.example.com"
`)
	t.Setenv("BANDLY_CONFIG_FILE", path)
	t.Setenv("BANDLY_SERVER_PORT", "9999")
	t.Setenv("BANDLY_API_BASE_URL", "https://env.example.com")
	t.Setenv("BANDLY_API_TIMEOUT", "5s")
	t.Setenv("BANDLY_SERVER_CORS_ORIGINS", "http://a.test,http://b.test")
	// Un-prefixed variables belong to other processes and are ignored.
	t.Setenv("SERVER_PORT", "1111")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL())
	assert.Equal(t, 5*time.Second, cfg.APITimeout())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestNewConfig_DefaultsWhenUnset(t *testing.T) {
	path := writeConfigFile(t, "{}\n")
	t.Setenv("BANDLY_CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL())
	assert.Equal(t, 30*time.Second, cfg.APITimeout())
	assert.Equal(t, "bandly-web", cfg.OpenTelemetry.ServiceName)
	assert.InDelta(t, 0.3, cfg.ShowProbability(), 1e-9)
	assert.InDelta(t, 1.0, cfg.OpenTelemetry.SamplingRate, 1e-9)
}

func TestShowProbability_RejectsOutOfRange(t *testing.T) {
	cfg := &Config{}
	cfg.Feedback.ShowProbability = 1.5
	assert.InDelta(t, 0.3, cfg.ShowProbability(), 1e-9)

	cfg.Feedback.ShowProbability = -0.1
	assert.InDelta(t, 0.3, cfg.ShowProbability(), 1e-9)
}
