package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
log:
  level: debug
  pretty: true
ws:
  read_buffer: 2048
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Log.Pretty)
	require.Equal(t, 2048, cfg.WS.ReadBuffer)
	require.Equal(t, 1024, cfg.WS.WriteBuffer)
	require.Equal(t, 1024, cfg.MaxRooms)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CHECKERS_ADDR", "127.0.0.1:7000")
	t.Setenv("CHECKERS_LOG_LEVEL", "warn")

	cfg, err := Load(writeFile(t, "addr: \":9090\"\n"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.Addr)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "addr: [\n"))
		require.ErrorContains(t, err, "parse config")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := Load(writeFile(t, "log:\n  level: loud\n"))
		require.ErrorContains(t, err, "invalid config")
	})

	t.Run("no rooms allowed", func(t *testing.T) {
		_, err := Load(writeFile(t, "max_rooms: 0\n"))
		require.ErrorContains(t, err, "invalid config")
	})

	t.Run("tiny buffer", func(t *testing.T) {
		_, err := Load(writeFile(t, "ws:\n  read_buffer: 1\n"))
		require.ErrorContains(t, err, "invalid config")
	})
}
