package types

// Status values for an icon record. A draft record has no available variant
// yet; it is a placeholder awaiting upload, not a data error.
const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

// VariantInfo is the per-variant slice of an icon record.
type VariantInfo struct {
	Available           bool     `json:"available"`
	ComponentName       string   `json:"componentName,omitempty"`
	SVGPath             string   `json:"svgPath,omitempty"`
	SupportsStrokeWidth bool     `json:"supportsStrokeWidth"`
	DefaultStrokeWidth  float64  `json:"defaultStrokeWidth,omitempty"`
	FillType            FillType `json:"fillType,omitempty"`
}

// Audit holds the bookkeeping block of an icon record. AddedDate is set once
// on create; LastModified is refreshed on every mutating write.
type Audit struct {
	AddedDate         string `json:"addedDate,omitempty"`
	LastModified      string `json:"lastModified,omitempty"`
	Version           string `json:"version,omitempty"`
	Author            string `json:"author,omitempty"`
	Popularity        int    `json:"popularity,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

// IconRecord is the durable metadata document for one icon identity. The
// record is the single source of truth; per-asset sidecar files are a pure
// projection of it.
type IconRecord struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	ComponentBaseName string                 `json:"componentBaseName,omitempty"`
	Category          string                 `json:"category"`
	Tags              []string               `json:"tags,omitempty"`
	Aliases           []string               `json:"aliases,omitempty"`
	Description       string                 `json:"description,omitempty"`
	Status            string                 `json:"status,omitempty"`
	Variants          map[string]VariantInfo `json:"variants,omitempty"`
	Metadata          Audit                  `json:"metadata"`
}

// AvailableVariants returns the IDs of variants marked available, sorted
// order is the caller's concern.
func (r *IconRecord) AvailableVariants() []string {
	var ids []string
	for id, v := range r.Variants {
		if v.Available {
			ids = append(ids, id)
		}
	}
	return ids
}

// Sidecar is the per-asset metadata file living next to one SVG in the
// category-first layout. It duplicates a subset of the icon record and is
// regenerated from it after every mutation.
type Sidecar struct {
	Schema       string   `json:"$schema"`
	Variant      string   `json:"variant"`
	Contributors []string `json:"contributors"`
	Tags         []string `json:"tags"`
	Categories   []string `json:"categories"`
	Aliases      []string `json:"aliases"`
	Deprecated   bool     `json:"deprecated"`
}

// LegacySidecar is the per-asset metadata shape of variant-first trees,
// read by the one-time layout migrator.
type LegacySidecar struct {
	Schema      string   `json:"$schema,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Variant     string   `json:"variant"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Deprecated  bool     `json:"deprecated"`
}
