package migrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/metadata"
	"github.com/arthur-debert/iconforge/pkg/testutil"
	"github.com/arthur-debert/iconforge/pkg/variants"
)

func seedVariantFirst(t *testing.T, env *testutil.TestEnvironment) {
	t.Helper()
	registry := variants.New(env.FS, env.Layout)
	outline, _ := env.Schema.Variant("outline")
	_, err := registry.Create(outline)
	require.NoError(t, err)

	env.WriteSVG("outline", "bag.svg", testutil.StrokeSVG)
	env.WriteFile("icons/outline/bag.json",
		[]byte(`{"name":"Bag","category":"commerce","tags":["shopping"],"variant":"outline","deprecated":false}`))
}

func TestMigrateMovesToCategoryFirst(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	seedVariantFirst(t, env)

	result, err := Migrate(Options{Root: env.Root, FileSystem: env.FS})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tally.Generated)

	// Category comes from the legacy sidecar, marker from the variant.
	newSVG := filepath.Join(env.Layout.IconsDir, "commerce", "bag-01.svg")
	assert.True(t, env.FileExists(newSVG))
	assert.False(t, env.FileExists(filepath.Join(env.Layout.IconsDir, "outline", "bag.svg")))

	// The emptied variant directory is gone.
	assert.False(t, env.FileExists(filepath.Join(env.Layout.IconsDir, "outline")))

	store := metadata.New(env.FS, env.Layout)
	rec, err := store.Get("bag")
	require.NoError(t, err)
	assert.Equal(t, "commerce", rec.Category)
	assert.Equal(t, []string{"shopping"}, rec.Tags)
	assert.True(t, rec.Variants["outline"].Available)
	assert.Equal(t, "icons/commerce/bag-01.svg", rec.Variants["outline"].SVGPath)

	// The record projects a fresh category-first sidecar.
	sidecar := env.ReadFile(filepath.Join(env.Layout.IconsDir, "commerce", "bag-01.json"))
	assert.Contains(t, sidecar, `"variant": "outline"`)
	assert.Contains(t, sidecar, "shopping")
}

func TestMigrateClassifiesWithoutSidecar(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	registry := variants.New(env.FS, env.Layout)
	outline, _ := env.Schema.Variant("outline")
	_, err := registry.Create(outline)
	require.NoError(t, err)
	env.WriteSVG("outline", "Clock 1.svg", testutil.StrokeSVG)

	_, err = Migrate(Options{Root: env.Root, FileSystem: env.FS})
	require.NoError(t, err)

	assert.True(t, env.FileExists(filepath.Join(env.Layout.IconsDir, "time", "clock-one-01.svg")))
}

func TestMigrateRefusesExistingTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	seedVariantFirst(t, env)
	env.WriteSVG("commerce", "bag-01.svg", testutil.StrokeSVG)

	_, err := Migrate(Options{Root: env.Root, FileSystem: env.FS})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	// Nothing moved.
	assert.True(t, env.FileExists(filepath.Join(env.Layout.IconsDir, "outline", "bag.svg")))
}

func TestMigrateRequiresVariantFirstTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSVG("action", "arrow-right-01.svg", testutil.StrokeSVG)

	_, err := Migrate(Options{Root: env.Root, FileSystem: env.FS})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLayoutUnknown))
}
