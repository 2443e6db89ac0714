package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "", cfg.Format)
	require.Equal(t, 500*time.Millisecond, cfg.CPUSample())
	require.False(t, cfg.AllPartitions)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "127.0.0.1:8686", cfg.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("format: table\ncpu_sample_ms: 250\nserver_port: 9000\n"), 0o600))
	t.Setenv("SYSMON_SERVER_PORT", "9100")
	t.Setenv("SYSMON_ALL_PARTITIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "table", cfg.Format)
	require.Equal(t, 250*time.Millisecond, cfg.CPUSample())
	require.Equal(t, 9100, cfg.ServerPort)
	require.True(t, cfg.AllPartitions)
}

func TestLoadRejectsNegativeSample(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	v.Set("cpu_sample_ms", -1)

	_, err := load(v)
	require.Error(t, err)
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("format: [unterminated\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
