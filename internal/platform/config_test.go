package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pilha/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/srv/stacks"
stack = "work"
format = "json"
storage = "yaml"
strict = true
`)

	cfg, err := platform.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/srv/stacks", cfg.DataDir)
	assert.Equal(t, "work", cfg.Stack)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "yaml", cfg.Storage)
	assert.Equal(t, "normal", cfg.Noise)
	assert.True(t, cfg.Strict)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := platform.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "an explicit config path must exist")

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := platform.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, platform.DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := platform.LoadConfig(writeConfig(t, `stack = [`))
	assert.Error(t, err)

	cfg, err := platform.LoadConfig(writeConfig(t, `format = "ron"`))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg, err = platform.LoadConfig(writeConfig(t, `storage = "xml"`))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestPrecedence(t *testing.T) {
	cfg, err := platform.LoadConfig(writeConfig(t, `
stack = "file"
format = "csv"
`))
	require.NoError(t, err)

	env := map[string]string{
		platform.EnvStack:  "env",
		platform.EnvFormat: "tsv",
		platform.EnvDir:    "/from/env",
	}
	cfg = cfg.WithEnv(func(k string) string { return env[k] })
	assert.Equal(t, "env", cfg.Stack)
	assert.Equal(t, "tsv", cfg.Format)

	cfg = cfg.With(platform.Overrides{Stack: "flag", Noise: "quiet"})
	assert.Equal(t, "flag", cfg.Stack)
	assert.Equal(t, "tsv", cfg.Format)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, "quiet", cfg.Noise)
	assert.NoError(t, cfg.Validate())
}

func TestResolveDataDir(t *testing.T) {
	cfg := platform.DefaultConfig()
	cfg.DataDir = "/explicit"
	assert.Equal(t, "/explicit", cfg.ResolveDataDir(t.TempDir()))

	project := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(project, platform.RootMarker), 0755))
	cfg.DataDir = ""
	assert.Equal(t, filepath.Join(project, platform.RootMarker), cfg.ResolveDataDir(project))

	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	assert.Equal(t, filepath.Join(xdg, "pilha"), platform.DefaultDataDir())
}
