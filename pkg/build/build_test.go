package build

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/filesystem"
	"github.com/arthur-debert/iconforge/pkg/metadata"
	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/arthur-debert/iconforge/pkg/types"
)

const strokeSVG = `<svg viewBox="0 0 24 24" fill="none"><path stroke="#000" stroke-width="2" d="M4 12h16"/></svg>`

func testLayout() config.Layout {
	root := "/lib"
	return config.Layout{
		Root:          root,
		IconsDir:      filepath.Join(root, "icons"),
		MetadataDir:   filepath.Join(root, "metadata", "icons"),
		CategoriesDir: filepath.Join(root, "categories"),
		OutputDir:     filepath.Join(root, "src", "components", "icons"),
		SchemaPath:    filepath.Join(root, "icon-schema.json"),
	}
}

func testEnv(t *testing.T) (types.FS, config.Layout, *metadata.Store) {
	t.Helper()
	fsys := filesystem.NewMemory()
	layout := testLayout()
	require.NoError(t, fsys.MkdirAll(layout.IconsDir, 0755))
	require.NoError(t, fsys.MkdirAll(layout.MetadataDir, 0755))
	store := metadata.New(fsys, layout).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	return fsys, layout, store
}

func writeSVG(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
}

func TestBuildStrokeIcon(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right-01.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{Author: "Admin"})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Records)

	component, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "outline", "ArrowRightOutline.tsx"))
	require.NoError(t, err)
	s := string(component)
	assert.Contains(t, s, "const ArrowRightOutline")
	assert.Contains(t, s, "size?: number | string;")
	assert.Contains(t, s, "color?: string;")
	assert.Contains(t, s, "strokeWidth?: number | string;")
	assert.NotContains(t, s, `stroke="#000"`)

	rec, err := store.Get("arrow-right")
	require.NoError(t, err)
	assert.Equal(t, "action", rec.Category)
	assert.Equal(t, types.StatusActive, rec.Status)
	assert.True(t, rec.Variants["outline"].Available)
	assert.Equal(t, "ArrowRightOutline", rec.Variants["outline"].ComponentName)
	assert.Equal(t, "icons/action/arrow-right-01.svg", rec.Variants["outline"].SVGPath)
}

func TestBuildCollisionFatalByDefault(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "outline", "Group1.svg"), strokeSVG)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "outline", "GroupOne.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{Layout: LayoutVariant})
	_, err := orch.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNameCollision))
	assert.Contains(t, err.Error(), "Group1.svg")
	assert.Contains(t, err.Error(), "GroupOne.svg")
}

func TestBuildCollisionSkipped(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "outline", "Group1.svg"), strokeSVG)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "outline", "GroupOne.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{Layout: LayoutVariant, SkipCollisions: true})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Collisions)
	assert.NotEmpty(t, result.Warnings)

	// The first source wins; the identity exists exactly once.
	_, err = fsys.Stat(filepath.Join(layout.OutputDir, "outline", "GroupOneOutline.tsx"))
	assert.NoError(t, err)
	rec, err := store.Get("group-one")
	require.NoError(t, err)
	assert.True(t, rec.Variants["outline"].Available)
}

func TestBuildMalformedSkipped(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right-01.svg"), strokeSVG)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "broken-icon-01.svg"), "<svg><path")

	orch := New(fsys, layout, schema.Default(), store, Options{})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Malformed)

	// The run still emits catalogs for everything that succeeded.
	_, err = fsys.ReadFile(filepath.Join(layout.OutputDir, "metadata.json"))
	assert.NoError(t, err)
}

func TestBuildUnknownFilenameSkipped(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 1, result.Skipped)
}

func TestBuildVariantFirstClassifies(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "outline", "Bag 2.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{Layout: LayoutVariant})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)

	rec, err := store.Get("bag-two")
	require.NoError(t, err)
	assert.Equal(t, "commerce", rec.Category)
}

func TestBuildCatalog(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right-01.svg"), strokeSVG)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right-03.svg"),
		`<svg viewBox="0 0 24 24"><path fill="#000" d="M4 12h16"/></svg>`)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "interface", "home-01.svg"), strokeSVG)

	orch := New(fsys, layout, schema.Default(), store, Options{})
	result, err := orch.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 2, result.Records)

	data, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "metadata.json"))
	require.NoError(t, err)
	var catalog types.Catalog
	require.NoError(t, json.Unmarshal(data, &catalog))

	assert.Equal(t, 3, catalog.Stats.Total)
	assert.Equal(t, 2, catalog.Stats.UniqueIcons)
	assert.Equal(t, 2, catalog.Stats.ByVariant["outline"])
	assert.Equal(t, 1, catalog.Stats.ByVariant["bulk"])
	assert.Equal(t, 2, catalog.Stats.ByCategory["action"])
	assert.Equal(t, []string{"arrow-right"}, catalog.Categories["action"][:1])
	assert.Equal(t, "ArrowRightOutline", catalog.Components["arrow-right/outline"])
	assert.Equal(t, "ArrowRightBulk", catalog.Components["arrow-right/bulk"])
	require.Len(t, catalog.Icons, 3)
	assert.Equal(t, "arrow-right", catalog.Icons[0].Name)

	index, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "outline", "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "export { default as ArrowRightOutline } from './ArrowRightOutline';")
	assert.Contains(t, string(index), "export { default as HomeOutline } from './HomeOutline';")

	root, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export * from './bulk';\nexport * from './outline';\n", string(root))
}

func TestBuildIdempotent(t *testing.T) {
	fsys, layout, store := testEnv(t)
	writeSVG(t, fsys, filepath.Join(layout.IconsDir, "action", "arrow-right-01.svg"), strokeSVG)

	_, err := New(fsys, layout, schema.Default(), store, Options{}).Run()
	require.NoError(t, err)
	first, err := fsys.ReadFile(filepath.Join(layout.MetadataDir, "arrow-right.json"))
	require.NoError(t, err)
	firstCatalog, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "metadata.json"))
	require.NoError(t, err)

	// Second run on a later day. Nothing changed, so nothing moves, not
	// even lastModified.
	laterStore := metadata.New(fsys, layout).WithClock(func() time.Time {
		return time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	})
	_, err = New(fsys, layout, schema.Default(), laterStore, Options{}).Run()
	require.NoError(t, err)

	second, err := fsys.ReadFile(filepath.Join(layout.MetadataDir, "arrow-right.json"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	secondCatalog, err := fsys.ReadFile(filepath.Join(layout.OutputDir, "metadata.json"))
	require.NoError(t, err)
	assert.Equal(t, string(firstCatalog), string(secondCatalog))
}
