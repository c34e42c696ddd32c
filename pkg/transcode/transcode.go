// Package transcode converts one SVG document into one parametrized TSX
// component source string, according to a variant's rendering policy.
//
// The transcoder is pure: the same markup and policy always produce
// byte-identical output. The policy's fill type decides which paint channel
// is rewired to the component's color prop; everything else is mechanical
// attribute rewriting.
package transcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/types"
	"github.com/beevik/etree"
)

const defaultViewBox = "0 0 24 24"

// Placeholder attribute values survive XML serialization and are swapped
// for JSX expressions in a final pass.
const (
	colorToken = "__iconforge:color__"
	widthToken = "__iconforge:strokeWidth__"
)

// camelAttrs maps hyphenated SVG presentation attributes to the camelCase
// form the target framework requires.
var camelAttrs = map[string]string{
	"fill-rule":         "fillRule",
	"clip-rule":         "clipRule",
	"clip-path":         "clipPath",
	"fill-opacity":      "fillOpacity",
	"stroke-width":      "strokeWidth",
	"stroke-linecap":    "strokeLinecap",
	"stroke-linejoin":   "strokeLinejoin",
	"stroke-miterlimit": "strokeMiterlimit",
	"stroke-dasharray":  "strokeDasharray",
	"stroke-dashoffset": "strokeDashoffset",
	"stroke-opacity":    "strokeOpacity",
}

// blackish reports whether a fill value is one the fill policy treats as
// the themable color.
func blackish(v string) bool {
	switch strings.ToLower(v) {
	case "black", "#000", "#000000":
		return true
	}
	return false
}

// Component transcodes svg into the source of a component named
// componentName under the given rendering policy. Fails with MALFORMED_SVG
// when the markup has no parsable <svg> root.
func Component(svg []byte, componentName string, policy types.RenderingPolicy) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return "", errors.Wrapf(err, errors.ErrMalformedSVG, "unparsable SVG for %s", componentName)
	}
	root := doc.SelectElement("svg")
	if root == nil {
		return "", errors.Newf(errors.ErrMalformedSVG, "no <svg> root element for %s", componentName)
	}

	viewBox := root.SelectAttrValue("viewBox", defaultViewBox)
	rootExtra := rootPaint(root, policy)

	for _, child := range root.ChildElements() {
		rewriteTree(child, policy)
	}

	inner, err := serializeChildren(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrMalformedSVG, "failed to serialize SVG body for %s", componentName)
	}
	inner = expandTokens(inner)

	return emit(componentName, viewBox, rootExtra, inner, policy), nil
}

// rootPaint carries root-level stroke paint into the emitted <svg> root.
// Normalized sources hoist per-shape stroke attributes to the root, so
// shapes inherit their paint from there; dropping it would leave them
// unpainted. The stroke channel gets the same color substitution as
// shape-level paint. Stroke width is skipped when the policy already
// exposes it as a prop.
func rootPaint(root *etree.Element, policy types.RenderingPolicy) string {
	if policy.FillType != types.FillTypeStroke && policy.FillType != types.FillTypeMixed {
		return ""
	}
	var b strings.Builder
	for _, attr := range root.Attr {
		if attr.Space != "" {
			continue
		}
		switch attr.Key {
		case "stroke":
			if attr.Value != "none" {
				b.WriteString("        stroke={color}\n")
			}
		case "stroke-width":
			if !policy.SupportsStrokeWidth {
				b.WriteString(fmt.Sprintf("        strokeWidth=%q\n", attr.Value))
			}
		case "stroke-linecap":
			b.WriteString(fmt.Sprintf("        strokeLinecap=%q\n", attr.Value))
		case "stroke-linejoin":
			b.WriteString(fmt.Sprintf("        strokeLinejoin=%q\n", attr.Value))
		}
	}
	return b.String()
}

// rewriteTree applies attribute renaming, style stripping, and paint
// substitution to el and all its descendants.
func rewriteTree(el *etree.Element, policy types.RenderingPolicy) {
	el.RemoveAttr("style")

	// Rename in place so attribute order is preserved.
	for i := range el.Attr {
		if camel, ok := camelAttrs[el.Attr[i].Key]; ok {
			el.Attr[i].Key = camel
		}
	}

	for i := range el.Attr {
		attr := &el.Attr[i]
		switch attr.Key {
		case "stroke":
			if attr.Value != "none" &&
				(policy.FillType == types.FillTypeStroke || policy.FillType == types.FillTypeMixed) {
				attr.Value = colorToken
			}
		case "fill":
			if blackish(attr.Value) &&
				(policy.FillType == types.FillTypeFill || policy.FillType == types.FillTypeMixed) {
				attr.Value = colorToken
			}
		case "strokeWidth":
			if policy.SupportsStrokeWidth {
				attr.Value = widthToken
			}
		}
	}

	for _, child := range el.ChildElements() {
		rewriteTree(child, policy)
	}
}

// serializeChildren renders the root's child elements, indented two spaces,
// joined in document order.
func serializeChildren(root *etree.Element) (string, error) {
	var parts []string
	for _, child := range root.ChildElements() {
		sub := etree.NewDocument()
		sub.SetRoot(child.Copy())
		sub.Indent(2)
		s, err := sub.WriteToString()
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(s, "\n"))
	}
	return strings.Join(parts, "\n"), nil
}

// expandTokens swaps quoted placeholder values for JSX expressions.
func expandTokens(markup string) string {
	markup = strings.ReplaceAll(markup, `"`+colorToken+`"`, "{color}")
	markup = strings.ReplaceAll(markup, `"`+widthToken+`"`, "{strokeWidth}")
	return markup
}

// formatWidth renders a stroke width without trailing zeros: 2 not 2.0.
func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// indentBlock prefixes every line of s with the given indent.
func indentBlock(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// emit renders the component source. The root <svg> attributes are hard-set
// here so hand-authored sources need not supply them correctly.
func emit(componentName, viewBox, rootExtra, inner string, policy types.RenderingPolicy) string {
	strokeWidthProp := ""
	strokeWidthDefault := ""
	strokeWidthAttr := ""
	if policy.SupportsStrokeWidth {
		strokeWidthProp = "  strokeWidth?: number | string;\n"
		strokeWidthDefault = fmt.Sprintf(", strokeWidth = %s", formatWidth(policy.DefaultStrokeWidth))
		strokeWidthAttr = "        strokeWidth={strokeWidth}\n"
	}

	return fmt.Sprintf(`import * as React from 'react';

export interface IconProps extends React.SVGProps<SVGSVGElement> {
  size?: number | string;
  color?: string;
%s}

const %s = React.forwardRef<SVGSVGElement, IconProps>(
  ({ size = 24, color = 'currentColor'%s, ...props }, ref) => {
    return (
      <svg
        ref={ref}
        width={size}
        height={size}
        viewBox="%s"
        fill="none"
        xmlns="http://www.w3.org/2000/svg"
%s%s        {...props}
      >
%s
      </svg>
    );
  }
);

%s.displayName = '%s';

export default %s;
`, strokeWidthProp, componentName, strokeWidthDefault, viewBox, rootExtra, strokeWidthAttr,
		indentBlock(inner, "        "), componentName, componentName, componentName)
}
