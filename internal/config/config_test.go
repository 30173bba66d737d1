package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromString(t *testing.T) {
	toml := `
[project]
keyboards = "boards"

[generate]
keyboard = "clueboard/66"
keymap = "default"
quiet = true

[docs]
build-dir = "site"
`

	cfg, err := LoadFromString(toml)
	require.NoError(t, err)

	assert.Equal(t, "boards", cfg.Project.Keyboards)
	assert.Equal(t, "clueboard/66", cfg.Generate.Keyboard)
	assert.Equal(t, "default", cfg.Generate.Keymap)
	assert.True(t, cfg.Generate.Quiet)
	assert.Equal(t, "site", cfg.Docs.BuildDir)
}

func TestLoadFromStringDefaults(t *testing.T) {
	cfg, err := LoadFromString("")
	require.NoError(t, err)

	assert.Equal(t, "keyboards", cfg.Project.Keyboards)
	assert.Equal(t, "", cfg.Generate.Keyboard)
	assert.False(t, cfg.Generate.Quiet)
	assert.Equal(t, "docs-site", cfg.Docs.BuildDir)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("[project]\nkeyboards = \"kb\"\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kb", cfg.Project.Keyboards)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadFromStringRejectsBadToml(t *testing.T) {
	_, err := LoadFromString("[project\nkeyboards =")
	require.Error(t, err)
}

func TestUpdateFromEnv(t *testing.T) {
	t.Setenv("KBFORGE_GENERATE__KEYBOARD", "planck")
	t.Setenv("KBFORGE_GENERATE__QUIET", "true")
	t.Setenv("KBFORGE_DOCS__BUILD-DIR", "env-site")

	cfg := NewDefaultConfig()
	cfg.UpdateFromEnv()

	assert.Equal(t, "planck", cfg.Generate.Keyboard)
	assert.True(t, cfg.Generate.Quiet)
	assert.Equal(t, "env-site", cfg.Docs.BuildDir)
}

func TestEnvOverridesFileValues(t *testing.T) {
	t.Setenv("KBFORGE_PROJECT__KEYBOARDS", "env-boards")

	cfg, err := LoadFromString("[project]\nkeyboards = \"file-boards\"\n")
	require.NoError(t, err)
	assert.Equal(t, "env-boards", cfg.Project.Keyboards)
}

func TestSetIgnoresUnknownKeys(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Set("nonsense.key", "value")
	cfg.Set("generate.nonsense", "value")
	cfg.Set("flat", "value")

	assert.Equal(t, NewDefaultConfig(), cfg)
}
