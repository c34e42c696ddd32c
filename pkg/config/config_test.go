package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "icons", cfg.Paths.IconsDir)
	assert.Equal(t, "metadata/icons", cfg.Paths.MetadataDir)
	assert.Equal(t, "category", cfg.Build.Layout)
	assert.False(t, cfg.Build.SkipCollisions)
}

func TestLoadRootConfigOverride(t *testing.T) {
	root := t.TempDir()
	content := `
[paths]
output_dir = "generated"

[build]
layout = "variant"
skip_collisions = true
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "iconforge.toml"), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.Paths.OutputDir)
	assert.Equal(t, "variant", cfg.Build.Layout)
	assert.True(t, cfg.Build.SkipCollisions)
	// Untouched keys keep defaults
	assert.Equal(t, "icons", cfg.Paths.IconsDir)
}

func TestLoadDotfilePreferred(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".iconforge.toml"),
		[]byte("[build]\nauthor = \"acme\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "iconforge.toml"),
		[]byte("[build]\nauthor = \"plain\"\n"), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.Build.Author)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ICONFORGE_BUILD_LAYOUT", "variant")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "variant", cfg.Build.Layout)
}

func TestResolve(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	layout := cfg.Resolve("/lib")
	assert.Equal(t, filepath.Join("/lib", "icons"), layout.IconsDir)
	assert.Equal(t, filepath.Join("/lib", "metadata", "icons"), layout.MetadataDir)
	assert.Equal(t, filepath.Join("/lib", "icon-schema.json"), layout.SchemaPath)
}
