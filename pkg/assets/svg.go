package assets

import (
	"regexp"
	"strings"
)

var (
	strokeAttr      = regexp.MustCompile(`stroke="[^"]*"`)
	strokeWidthAttr = regexp.MustCompile(`stroke-width="([^"]+)"`)
	fillNoneAttr    = regexp.MustCompile(`fill="none"`)
	paintedFillAttr = regexp.MustCompile(`fill="(?:[^n"][^"]*|n[^o"][^"]*)"`)
	shapeWithStroke = regexp.MustCompile(`<(path|circle|rect|line|polyline|polygon|ellipse)([^>]*stroke="[^"]*"[^>]*)>`)
)

// IsStrokeBased reports whether an SVG draws through the stroke channel:
// it has stroke attributes and either fill="none" or no painted fill at all.
// Fill-based icons must not have their stroke widths rewritten.
func IsStrokeBased(svg string) bool {
	hasStroke := strokeAttr.MatchString(svg) || strokeWidthAttr.MatchString(svg)
	hasFillNone := fillNoneAttr.MatchString(svg)
	hasPaintedFill := paintedFillAttr.MatchString(svg)
	return hasStroke && (hasFillNone || !hasPaintedFill)
}

// StrokeWidth extracts the first stroke-width value, or "" when none is set.
func StrokeWidth(svg string) string {
	if m := strokeWidthAttr.FindStringSubmatch(svg); m != nil {
		return m[1]
	}
	return ""
}

// SetStrokeWidth rewrites every stroke-width to the given value, and adds
// one to shape elements that carry a stroke but no stroke-width.
func SetStrokeWidth(svg, width string) string {
	if strokeWidthAttr.MatchString(svg) {
		svg = strokeWidthAttr.ReplaceAllString(svg, `stroke-width="`+width+`"`)
	}
	return shapeWithStroke.ReplaceAllStringFunc(svg, func(m string) string {
		if strings.Contains(m, "stroke-width") {
			return m
		}
		sub := shapeWithStroke.FindStringSubmatch(m)
		attrs := sub[2]
		closing := ">"
		if trimmed, ok := strings.CutSuffix(attrs, "/"); ok {
			attrs = strings.TrimRight(trimmed, " ")
			closing = "/>"
		}
		return "<" + sub[1] + attrs + ` stroke-width="` + width + `"` + closing
	})
}
