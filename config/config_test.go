package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
app_name: taskdesk-test
api:
  base_url: https://todo.example.com/api
  timeout: 3s
  query_dialect: PLAIN
  endpoints:
    list: v2/todo/list
paging:
  limit: 25
cache:
  redis:
    addr: localhost:6380
  assignee_ttl: 1m
logger:
  level: 5
  format: json
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "taskdesk-test", cfg.AppName)
	assert.Equal(t, "https://todo.example.com/api/", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, DialectPlain, cfg.API.Dialect)
	assert.Equal(t, "v2/todo/list", cfg.API.Endpoints.List)
	assert.Equal(t, "assignee", cfg.API.Endpoints.Assignee)
	assert.Equal(t, 25, cfg.Paging.Limit)
	assert.Equal(t, "localhost:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Cache.AssigneeTTL)
	assert.Equal(t, 5, cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.Desensitization.Enabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "app_name: bare\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DialectFilter, cfg.API.Dialect)
	assert.Equal(t, 10, cfg.Paging.Limit)
	assert.Equal(t, "todo", cfg.API.Endpoints.Todo)
	assert.Equal(t, uint32(5), cfg.API.Breaker.MinRequests)
	assert.Empty(t, cfg.Cache.Redis.Addr)
	assert.NotContains(t, cfg.Session.CredentialsFile, "~")
}

func TestExplicitZeroAndBlankValues(t *testing.T) {
	path := writeConfig(t, "tracing:\n  sampling_rate: 0\napi:\n  endpoints:\n    list: \"  \"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Tracing.SamplingRate)
	assert.Equal(t, "todo/list", cfg.API.Endpoints.List)
	assert.Equal(t, uint32(5), cfg.API.Breaker.MinRequests)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TASKDESK_PAGING_LIMIT", "7")
	path := writeConfig(t, "paging:\n  limit: 30\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Paging.Limit)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "paging:\n  limit: 12\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("paging:\n  limit: 40\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, 40, cfg.Paging.Limit)
}

func TestReloadWhileReading(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: 5\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			assert.NoError(t, cfg.Reload())
		}
	}()
	for i := 0; i < 20; i++ {
		assert.Equal(t, 5, cfg.LoggerConfig().Level)
	}
	<-done
	assert.Same(t, cfg.Logger, cfg.LoggerConfig())
}
