package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConf struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Watch struct {
		Symbols []string `mapstructure:"symbols"`
	} `mapstructure:"watch"`
}

func writeConf(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644)
	require.NoError(t, err)
	return dir
}

func TestLoadReadsFileAndDefaults(t *testing.T) {
	dir := writeConf(t, "confproof", "log:\n  level: debug\n")
	t.Setenv("CONFPROOF_CONFIG_DIR", dir)

	var cfg testConf
	f, err := Load("confproof", map[string]any{
		"watch.symbols": []string{"TUPRS"},
	}, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	// 文件没写的键落到默认值
	assert.Equal(t, []string{"TUPRS"}, cfg.Watch.Symbols)
	assert.NotNil(t, f.Viper())
}

func TestLoadMissingFileIsErrNotFound(t *testing.T) {
	t.Setenv("NOSUCHCONF_CONFIG_DIR", t.TempDir())

	var cfg testConf
	_, err := Load("nosuchconf", nil, &cfg)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := writeConf(t, "confenv", "log:\n  level: info\n")
	t.Setenv("CONFENV_CONFIG_DIR", dir)
	t.Setenv("CONFENV_LOG_LEVEL", "warn")

	var cfg testConf
	_, err := Load("confenv", nil, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
