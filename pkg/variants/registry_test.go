package variants

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/filesystem"
	"github.com/arthur-debert/iconforge/pkg/types"
)

func testRegistry(t *testing.T) (*Registry, types.FS) {
	t.Helper()
	fsys := filesystem.NewMemory()
	layout := config.Layout{
		Root:     "/lib",
		IconsDir: filepath.Join("/lib", "icons"),
	}
	require.NoError(t, fsys.MkdirAll(layout.IconsDir, 0755))
	return New(fsys, layout), fsys
}

func TestCreateAndGet(t *testing.T) {
	reg, fsys := testRegistry(t)

	created, err := reg.Create(types.VariantConfig{
		ID:   "sharp",
		Name: "Sharp",
		RenderingPolicy: types.RenderingPolicy{
			FillType:            types.FillTypeStroke,
			DefaultStrokeWidth:  1.5,
			SupportsStrokeWidth: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "sharp", created.ID)

	got, err := reg.Get("sharp")
	require.NoError(t, err)
	assert.Equal(t, "Sharp", got.Name)
	assert.Equal(t, 1.5, got.DefaultStrokeWidth)

	data, err := fsys.ReadFile(filepath.Join("/lib", "icons", "sharp", "variant.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "$schema")
	assert.Equal(t, "stroke", doc["fillType"])
}

func TestCreateDefaults(t *testing.T) {
	reg, _ := testRegistry(t)

	created, err := reg.Create(types.VariantConfig{ID: "rounded", Name: "Rounded"})
	require.NoError(t, err)
	assert.Equal(t, types.FillTypeStroke, created.FillType)
	assert.Equal(t, 2.0, created.DefaultStrokeWidth)
}

func TestCreateDuplicate(t *testing.T) {
	reg, _ := testRegistry(t)

	_, err := reg.Create(types.VariantConfig{ID: "sharp", Name: "Sharp"})
	require.NoError(t, err)

	_, err = reg.Create(types.VariantConfig{ID: "sharp", Name: "Sharp"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestCreateValidation(t *testing.T) {
	reg, _ := testRegistry(t)

	_, err := reg.Create(types.VariantConfig{ID: "sharp"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = reg.Create(types.VariantConfig{ID: "Sharp Edges", Name: "Sharp"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidIdentifier))
}

func TestListSkipsCategoryDirs(t *testing.T) {
	reg, fsys := testRegistry(t)

	_, err := reg.Create(types.VariantConfig{ID: "outline", Name: "Outline"})
	require.NoError(t, err)
	_, err = reg.Create(types.VariantConfig{ID: "bulk", Name: "Bulk", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeFill}})
	require.NoError(t, err)

	// A category directory carries no variant.json and must not be listed.
	require.NoError(t, fsys.MkdirAll(filepath.Join("/lib", "icons", "arrows"), 0755))

	configs, err := reg.List()
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "bulk", configs[0].ID)
	assert.Equal(t, "outline", configs[1].ID)
}

func TestGetNotFound(t *testing.T) {
	reg, _ := testRegistry(t)

	_, err := reg.Get("sharp")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
