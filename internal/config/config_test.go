package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telwired.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
addr: ":7777"
metrics_addr: ":9100"
welcome_message: "hello\n"
translate: false
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, "hello\n", cfg.Welcome)
	assert.False(t, cfg.Translate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `addr: ":7777"`))
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Empty(t, cfg.MetricsAddr)
	assert.True(t, cfg.Translate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "addr: [:::"))
	require.Error(t, err)
}

func TestLoadEmptyAddr(t *testing.T) {
	_, err := Load(writeConfig(t, `addr: ""`))
	require.Error(t, err)
}
