package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file that only sets the front end
		path := writeConfig(t, "frontend: server\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other field has its default
		require.NoError(t, err)
		assert.Equal(t, FrontendServer, conf.Frontend)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.GameTTL)
		assert.False(t, conf.Engine.Pruning)
	})

	t.Run("Reads nested values", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
log-file: /tmp/tictactoe.log
http-port: "8080"
redis:
  host: redis
  port: "6380"
  game-ttl: 30m
engine:
  pruning: true
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "/tmp/tictactoe.log", conf.LogFile)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Redis.GameTTL)
		assert.True(t, conf.Engine.Pruning)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})
}
