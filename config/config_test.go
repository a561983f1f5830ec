package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "$HOME/.flicknest", cfg.StateDir)
	require.NotNil(t, cfg.API)
	assert.Equal(t, "http://localhost:3000", cfg.API.URL)
	assert.Equal(t, 15, cfg.API.Timeout)
	require.NotNil(t, cfg.Cache)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 300, cfg.Cache.TTL)
	require.NotNil(t, cfg.Watch)
	assert.Equal(t, 30, cfg.Watch.StatusInterval)
	assert.Equal(t, 60, cfg.Watch.CatalogInterval)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
api:
  url: https://api.flicknest.example
  timeout: 5
cache:
  enabled: true
  type: redis
  redis_url: redis.internal:6379
  ttl: 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://api.flicknest.example", cfg.API.URL)
	assert.Equal(t, 5, cfg.API.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 60, cfg.Cache.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty api url",
			content: `
api:
  url: ""
`,
		},
		{
			name: "non-positive timeout",
			content: `
api:
  url: http://localhost:3000
  timeout: 0
`,
		},
		{
			name: "unknown cache type",
			content: `
cache:
  enabled: true
  type: memcached
`,
		},
		{
			name: "redis without address",
			content: `
cache:
  enabled: true
  type: redis
  redis_url: ""
`,
		},
		{
			name: "non-positive watch interval",
			content: `
watch:
  status_interval: 0
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_DisabledCacheSkipsValidation(t *testing.T) {
	path := writeConfig(t, `
cache:
  enabled: false
  type: memcached
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}
