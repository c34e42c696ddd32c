package types

// CatalogIcon is one flattened (identity, variant) entry of the aggregate
// catalog, the shape browsing UIs consume.
type CatalogIcon struct {
	Name                string   `json:"name"`
	OriginalName        string   `json:"originalName"`
	Path                string   `json:"path"`
	Variant             string   `json:"variant"`
	Category            string   `json:"category"`
	SupportsStrokeWidth bool     `json:"supportsStrokeWidth"`
	DefaultStrokeWidth  float64  `json:"defaultStrokeWidth"`
	FillType            FillType `json:"fillType"`
}

// CatalogStats are the derived counters of one build run.
type CatalogStats struct {
	Total       int            `json:"total"`
	UniqueIcons int            `json:"uniqueIcons"`
	ByVariant   map[string]int `json:"byVariant"`
	ByCategory  map[string]int `json:"byCategory"`
}

// Catalog is the aggregate artifact emitted by the build orchestrator. It is
// fully derived: rebuilt from scratch on every run, never patched in place.
type Catalog struct {
	Icons      []CatalogIcon       `json:"icons"`
	Variants   []VariantConfig     `json:"variants"`
	Categories map[string][]string `json:"categories"`
	Components map[string]string   `json:"components"`
	Defaults   map[string]any      `json:"defaultSettings,omitempty"`
	Stats      CatalogStats        `json:"stats"`
}

// ComponentKey is the structured lookup key of the catalog's component
// table, so consumers resolve components without reassembling names from
// strings.
func ComponentKey(id, variant string) string {
	return id + "/" + variant
}
