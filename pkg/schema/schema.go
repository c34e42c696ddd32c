// Package schema loads the icon-schema document: the registered variants,
// the ordered category keyword tables, and default presentation settings.
//
// The document order of categories is significant: it is the tie-break used
// by the classifier when several keyword sets match a name.
package schema

import (
	"path/filepath"
	"strings"

	forgeerrors "github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/types"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Category is one entry of the ordered classification table.
type Category struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Keywords []string `json:"keywords"`
}

// Schema is the parsed icon-schema document.
type Schema struct {
	Variants        []types.VariantConfig `json:"variants"`
	Categories      []Category            `json:"categories"`
	DefaultSettings map[string]any        `json:"defaultSettings,omitempty"`
}

// MiscCategory is the reserved fallback category for names no keyword
// matches.
const MiscCategory = "misc"

// Load reads and validates a schema document. JSON and YAML are accepted,
// chosen by file extension.
func Load(fsys types.FS, path string) (*Schema, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, forgeerrors.Wrapf(err, forgeerrors.ErrSchemaLoad, "failed to read schema %s", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = json.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, forgeerrors.Wrapf(err, forgeerrors.ErrSchemaLoad, "failed to parse schema %s", path)
	}

	var s Schema
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, forgeerrors.Wrapf(err, forgeerrors.ErrSchemaLoad, "failed to decode schema %s", path)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks structural invariants of the document.
func (s *Schema) Validate() error {
	if len(s.Variants) == 0 {
		return forgeerrors.New(forgeerrors.ErrSchemaLoad, "schema declares no variants")
	}

	variantIDs := make(map[string]bool, len(s.Variants))
	for _, v := range s.Variants {
		if v.ID == "" {
			return forgeerrors.New(forgeerrors.ErrSchemaLoad, "variant with empty id")
		}
		if variantIDs[v.ID] {
			return forgeerrors.Newf(forgeerrors.ErrSchemaLoad, "duplicate variant id %q", v.ID)
		}
		variantIDs[v.ID] = true

		switch v.FillType {
		case types.FillTypeStroke, types.FillTypeFill, types.FillTypeMixed:
		default:
			return forgeerrors.Newf(forgeerrors.ErrSchemaLoad, "variant %q has unknown fillType %q", v.ID, v.FillType)
		}
	}

	categoryIDs := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == "" {
			return forgeerrors.New(forgeerrors.ErrSchemaLoad, "category with empty id")
		}
		if categoryIDs[c.ID] {
			return forgeerrors.Newf(forgeerrors.ErrSchemaLoad, "duplicate category id %q", c.ID)
		}
		categoryIDs[c.ID] = true
	}

	return nil
}

// Variant returns the config for a variant id.
func (s *Schema) Variant(id string) (types.VariantConfig, bool) {
	for _, v := range s.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return types.VariantConfig{}, false
}

// HasCategory reports whether the table declares a category id.
func (s *Schema) HasCategory(id string) bool {
	for _, c := range s.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Default returns the schema used when a library has no schema document:
// the five standard variants and a starter category table.
func Default() *Schema {
	return &Schema{
		Variants: []types.VariantConfig{
			{ID: "outline", Name: "Outline", Description: "Stroke outlines, 2px weight", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke, DefaultStrokeWidth: 2, SupportsStrokeWidth: true}},
			{ID: "broken", Name: "Broken", Description: "Interrupted stroke outlines", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke, DefaultStrokeWidth: 2, SupportsStrokeWidth: true}},
			{ID: "bulk", Name: "Bulk", Description: "Solid fills with opacity accents", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeFill, DefaultStrokeWidth: 0, SupportsStrokeWidth: false}},
			{ID: "light", Name: "Light", Description: "Stroke outlines, 1.5px weight", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeStroke, DefaultStrokeWidth: 1.5, SupportsStrokeWidth: true}},
			{ID: "two-tone", Name: "TwoTone", Description: "Dual-layer fills and strokes", RenderingPolicy: types.RenderingPolicy{FillType: types.FillTypeMixed, DefaultStrokeWidth: 2, SupportsStrokeWidth: false}},
		},
		Categories: []Category{
			{ID: "action", Title: "Action", Keywords: []string{"arrow", "chevron", "caret", "play", "pause", "refresh", "undo", "redo", "download", "upload"}},
			{ID: "commerce", Title: "Commerce", Keywords: []string{"bag", "cart", "shop", "wallet", "card", "coin", "tag", "receipt"}},
			{ID: "communication", Title: "Communication", Keywords: []string{"chat", "message", "mail", "phone", "call", "send", "notification", "bell"}},
			{ID: "files", Title: "Files", Keywords: []string{"file", "folder", "document", "clipboard", "archive", "paper"}},
			{ID: "media", Title: "Media", Keywords: []string{"camera", "image", "video", "music", "volume", "mic", "gallery"}},
			{ID: "people", Title: "People", Keywords: []string{"user", "profile", "people", "person", "team"}},
			{ID: "interface", Title: "Interface", Keywords: []string{"home", "search", "setting", "menu", "filter", "grid", "list", "edit", "trash", "lock", "eye", "star", "heart"}},
			{ID: "time", Title: "Time", Keywords: []string{"clock", "calendar", "timer", "watch", "alarm"}},
		},
		DefaultSettings: map[string]any{
			"size":        24,
			"color":       "currentColor",
			"strokeWidth": 2,
		},
	}
}
