package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skill.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.Recipients)
}

func TestParseConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
run_addr = ":9000"
log_level = "warn"

[recipients]
alice = "u-alice"
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := parseConfig([]string{"-c", path}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.RunAddr)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, map[string]string{"alice": "u-alice"}, cfg.Recipients)
	})

	t.Run("flags_over_file", func(t *testing.T) {
		cfg, err := parseConfig([]string{"-c", path, "-a", ":7000"}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.RunAddr)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("env_over_flags", func(t *testing.T) {
		cfg, err := parseConfig([]string{"-a", ":7000", "-l", "info"}, env(map[string]string{
			"CONFIG":    path,
			"RUN_ADDR":  ":6000",
			"LOG_LEVEL": "error",
		}))
		require.NoError(t, err)
		assert.Equal(t, ":6000", cfg.RunAddr)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "u-alice", cfg.Recipients["alice"])
	})
}

func TestParseConfigErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := parseConfig([]string{"-c", filepath.Join(t.TempDir(), "nope.toml")}, env(nil))
		assert.Error(t, err)
	})

	t.Run("unknown_key", func(t *testing.T) {
		path := writeConfig(t, `database_uri = "postgres://"`)
		_, err := parseConfig([]string{"-c", path}, env(nil))
		assert.ErrorContains(t, err, "database_uri")
	})

	t.Run("empty_recipient", func(t *testing.T) {
		path := writeConfig(t, "[recipients]\nbob = \"\"\n")
		_, err := parseConfig([]string{"-c", path}, env(nil))
		assert.Error(t, err)
	})

	t.Run("bad_flag", func(t *testing.T) {
		_, err := parseConfig([]string{"-x"}, env(nil))
		assert.Error(t, err)
	})
}
