package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	for _, name := range []string{"PLOTER_LOG_LEVEL", "PLOTER_LOG_ENCODING"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", e.LogLevel)
	assert.Equal(t, "json", e.LogEncoding)
}

func TestResolvePaths_FromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PLOTER_HOME", home)
	t.Setenv("PLOTER_DB", "")

	e, err := LoadEnv()
	require.NoError(t, err)
	p, err := e.ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, home, p.Home)
	assert.Equal(t, filepath.Join(home, "config.json"), p.Settings)
	assert.Equal(t, filepath.Join(home, "history.db"), p.DB)
	assert.Equal(t, filepath.Join(home, "templates"), p.Templates)
	assert.Equal(t, filepath.Join(home, "ploter.log"), p.LogFile)
}

func TestResolvePaths_Overrides(t *testing.T) {
	t.Setenv("PLOTER_HOME", "/srv/ploter")
	t.Setenv("PLOTER_DB", "/tmp/h.db")
	t.Setenv("PLOTER_TEMPLATES", "/tmp/tpl")
	t.Setenv("PLOTER_LOG_FILE", "stderr")

	e, err := LoadEnv()
	require.NoError(t, err)
	p, err := e.ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/h.db", p.DB)
	assert.Equal(t, "/tmp/tpl", p.Templates)
	assert.Equal(t, "stderr", p.LogFile)
}
