package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, Default(), cfg)

	// The default file must now exist and be loadable.
	_, err = os.Stat(path)
	require.NoError(t, err)
	cfg2, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, cfg, cfg2)
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":6000\"\nlog_level: debug\nmax_conns: 64\nshutdown_timeout: 10s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":6000", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 64, cfg.MaxConns)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":6000\"\n"), 0o600))

	t.Setenv("NPCHAT_ADDR", ":7000")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Addr)
}
