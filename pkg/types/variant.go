package types

// FillType classifies which paint channel carries the theme color for a
// variant family.
type FillType string

const (
	FillTypeStroke FillType = "stroke"
	FillTypeFill   FillType = "fill"
	FillTypeMixed  FillType = "mixed"
)

// RenderingPolicy governs how transcoding substitutes the theme color and
// stroke width into a variant's SVGs. A policy is immutable once components
// have been generated against it; changing it means regenerating the whole
// variant.
type RenderingPolicy struct {
	FillType            FillType `json:"fillType"`
	DefaultStrokeWidth  float64  `json:"defaultStrokeWidth"`
	SupportsStrokeWidth bool     `json:"supportsStrokeWidth"`
}

// VariantConfig describes one visual style family: its identity and
// presentation plus the rendering policy.
type VariantConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Directory is the source directory for variant-first trees. Empty for
	// the canonical category-first layout.
	Directory string `json:"directory,omitempty"`
	RenderingPolicy
}

// Suffix returns the component-name suffix for this variant, e.g. "Outline".
func (v VariantConfig) Suffix() string {
	return v.Name
}
