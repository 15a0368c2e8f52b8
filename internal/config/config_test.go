package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

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
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every field set
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
socket-port: "8081"
game:
  easy-mode: true
  seed: 7
  max-sessions: 3
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "8081", conf.SocketPort)
		assert.True(t, conf.Game.EasyMode)
		assert.Equal(t, int64(7), conf.Game.Seed)
		assert.Equal(t, 3, conf.Game.MaxSessions)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: warn\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the remaining fields have their defaults
		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.False(t, conf.Game.EasyMode)
		assert.Zero(t, conf.Game.Seed)
		assert.Equal(t, 1000, conf.Game.MaxSessions)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")
		t.Setenv("HTTP_PORT", "7070")
		t.Setenv("GAME_EASY_MODE", "true")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.True(t, conf.Game.EasyMode)
	})

	t.Run("Fails on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GAME_SEED", "99")

	conf, err := LoadEnv()

	require.NoError(t, err)
	assert.Equal(t, "error", conf.LogLevel)
	assert.Equal(t, int64(99), conf.Game.Seed)
	assert.Equal(t, "9090", conf.HTTPPort)
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		{level: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			conf := &Config{LogLevel: tt.level}

			assert.Equal(t, tt.expected, conf.SlogLevel())
		})
	}
}
