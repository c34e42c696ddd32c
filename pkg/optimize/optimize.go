// Package optimize cleans stored SVG sources before they are committed to
// the library tree. An external optimizer can be plugged in; the built-in
// Normalizer is always available as the fallback.
package optimize

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Optimizer rewrites an SVG source according to a variant's rendering
// policy. Implementations must return a complete, parseable document.
type Optimizer interface {
	Name() string
	Optimize(svg []byte, policy types.RenderingPolicy) ([]byte, error)
}

var shapeTags = map[string]bool{
	"path":     true,
	"circle":   true,
	"rect":     true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
}

var junkAttrs = []string{"class", "data-name", "style"}

var shapePaintAttrs = []string{
	"fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin",
}

// Normalizer is the built-in optimizer. It strips editor junk everywhere
// and, for stroke-policy variants, moves all paint to canonical root
// attributes so every shape inherits the same stroke.
type Normalizer struct{}

func (Normalizer) Name() string { return "normalizer" }

func (Normalizer) Optimize(svg []byte, policy types.RenderingPolicy) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedSVG, "failed to parse SVG")
	}
	root := doc.SelectElement("svg")
	if root == nil {
		return nil, errors.New(errors.ErrMalformedSVG, "document has no <svg> root")
	}

	strip(root)

	if policy.FillType == types.FillTypeStroke {
		stripShapePaint(root)
		enforceStrokeRoot(root, policy)
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to serialize SVG")
	}
	return []byte(strings.TrimSpace(out) + "\n"), nil
}

// strip removes class/data-name/style attributes and <style> elements.
func strip(el *etree.Element) {
	for _, attr := range junkAttrs {
		el.RemoveAttr(attr)
	}
	for _, child := range el.ChildElements() {
		if child.Tag == "style" {
			el.RemoveChild(child)
			continue
		}
		strip(child)
	}
}

func stripShapePaint(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if shapeTags[child.Tag] {
			for _, attr := range shapePaintAttrs {
				child.RemoveAttr(attr)
			}
		}
		stripShapePaint(child)
	}
}

func enforceStrokeRoot(root *etree.Element, policy types.RenderingPolicy) {
	viewBox := root.SelectAttrValue("viewBox", "0 0 24 24")
	width := policy.DefaultStrokeWidth
	if width == 0 {
		width = 2
	}

	// RemoveAttr matches on the local key only, so clearing one attribute at
	// a time loops forever on namespaced attributes like xmlns:xlink.
	root.Attr = root.Attr[:0]
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", "24")
	root.CreateAttr("height", "24")
	root.CreateAttr("viewBox", viewBox)
	root.CreateAttr("fill", "none")
	root.CreateAttr("stroke", "currentColor")
	root.CreateAttr("stroke-width", strconv.FormatFloat(width, 'f', -1, 64))
	root.CreateAttr("stroke-linecap", "round")
	root.CreateAttr("stroke-linejoin", "round")
}

// Runner applies a primary optimizer and falls back to the Normalizer when
// it fails. Fallback warnings are capped per Runner, so a batch over a
// broken optimizer does not flood the log. Build a fresh Runner for each
// command invocation.
type Runner struct {
	primary     Optimizer
	fallback    Normalizer
	warnings    int
	maxWarnings int
}

const maxFallbackWarnings = 5

// NewRunner wraps primary with normalizer fallback. A nil primary runs the
// normalizer alone.
func NewRunner(primary Optimizer) *Runner {
	return &Runner{primary: primary, maxWarnings: maxFallbackWarnings}
}

// Fallbacks reports how many times the primary optimizer failed.
func (r *Runner) Fallbacks() int { return r.warnings }

func (r *Runner) Optimize(svg []byte, policy types.RenderingPolicy) ([]byte, error) {
	if r.primary == nil {
		return r.fallback.Optimize(svg, policy)
	}

	out, err := r.primary.Optimize(svg, policy)
	if err == nil {
		return out, nil
	}

	r.warnings++
	if r.warnings <= r.maxWarnings {
		logger := logging.GetLogger("optimize")
		logger.Warn().
			Str("optimizer", r.primary.Name()).
			Int("count", r.warnings).
			Int("max", r.maxWarnings).
			Err(err).
			Msg("optimizer failed, falling back to normalizer")
		if r.warnings == r.maxWarnings {
			logger.Warn().Msg("further optimizer errors will be suppressed")
		}
	}
	return r.fallback.Optimize(svg, policy)
}
