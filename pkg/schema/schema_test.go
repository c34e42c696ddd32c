package schema

import (
	"testing"

	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/filesystem"
	"github.com/arthur-debert/iconforge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSchema = `{
	"variants": [
		{"id": "outline", "name": "Outline", "fillType": "stroke", "defaultStrokeWidth": 2, "supportsStrokeWidth": true},
		{"id": "bulk", "name": "Bulk", "fillType": "fill", "defaultStrokeWidth": 0, "supportsStrokeWidth": false}
	],
	"categories": [
		{"id": "action", "keywords": ["arrow", "play"]},
		{"id": "commerce", "keywords": ["bag", "cart"]}
	],
	"defaultSettings": {"size": 24}
}`

const yamlSchema = `
variants:
  - id: outline
    name: Outline
    fillType: stroke
    defaultStrokeWidth: 2
    supportsStrokeWidth: true
categories:
  - id: action
    keywords: [arrow]
`

func TestLoadJSON(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/lib/icon-schema.json", []byte(jsonSchema), 0644))

	s, err := Load(fs, "/lib/icon-schema.json")
	require.NoError(t, err)

	require.Len(t, s.Variants, 2)
	assert.Equal(t, "outline", s.Variants[0].ID)
	assert.Equal(t, types.FillTypeStroke, s.Variants[0].FillType)
	assert.True(t, s.Variants[0].SupportsStrokeWidth)
	assert.Equal(t, float64(2), s.Variants[0].DefaultStrokeWidth)

	// Category order must survive the round trip: it is the classifier
	// tie-break.
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "action", s.Categories[0].ID)
	assert.Equal(t, "commerce", s.Categories[1].ID)
}

func TestLoadYAML(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/lib/icon-schema.yaml", []byte(yamlSchema), 0644))

	s, err := Load(fs, "/lib/icon-schema.yaml")
	require.NoError(t, err)
	require.Len(t, s.Variants, 1)
	assert.Equal(t, "Outline", s.Variants[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	fs := filesystem.NewMemory()
	_, err := Load(fs, "/nope.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSchemaLoad))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{
			name:    "no variants",
			schema:  Schema{},
			wantErr: "no variants",
		},
		{
			name: "duplicate variant id",
			schema: Schema{Variants: []types.VariantConfig{
				{ID: "outline", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke}},
				{ID: "outline", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke}},
			}},
			wantErr: "duplicate variant id",
		},
		{
			name: "unknown fill type",
			schema: Schema{Variants: []types.VariantConfig{
				{ID: "outline", RenderingPolicy: types.RenderingPolicy{FillType: "gradient"}},
			}},
			wantErr: "unknown fillType",
		},
		{
			name: "duplicate category",
			schema: Schema{
				Variants: []types.VariantConfig{
					{ID: "outline", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke}},
				},
				Categories: []Category{{ID: "action"}, {ID: "action"}},
			},
			wantErr: "duplicate category id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	outline, ok := s.Variant("outline")
	require.True(t, ok)
	assert.Equal(t, types.FillTypeStroke, outline.FillType)

	_, ok = s.Variant("neon")
	assert.False(t, ok)

	assert.True(t, s.HasCategory("commerce"))
	assert.False(t, s.HasCategory(MiscCategory))
}
