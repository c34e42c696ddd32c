// Package identity derives canonical icon identifiers and component names.
//
// An identity is the kebab-case, digit-free key naming one conceptual icon
// across all of its variants: "Bag 2.svg" and "bag-two.svg" both resolve to
// "bag-two". Identities are valid identifier material in every target
// language, which is why digits are spelled out as words.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/types"
)

var digitWords = map[rune]string{
	'0': "zero",
	'1': "one",
	'2': "two",
	'3': "three",
	'4': "four",
	'5': "five",
	'6': "six",
	'7': "seven",
	'8': "eight",
	'9': "nine",
}

// specialCases short-circuits the generic algorithm for display names whose
// digit or hyphen structure it would mangle. Checked before anything else.
var specialCases = map[string]string{
	"Arrow - Right 2": "arrow-right-two",
	"Arrow - Left 2":  "arrow-left-two",
	"3D":              "three-d",
	"4K":              "four-k",
	"2FA":             "two-fa",
	"360 View":        "three-six-zero-view",
}

var (
	kebabPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	invalidChars   = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedDashes = regexp.MustCompile(`-+`)
	upperRune      = regexp.MustCompile(`([A-Z])`)
	digitRun       = regexp.MustCompile(`[0-9]+`)
)

// Normalize maps a raw filename or display name to its canonical identity.
// The result contains only [a-z-]: digits are spelled out as words with
// hyphen boundaries, so "Group1" and "GroupOne" normalize to the same key.
func Normalize(raw string) string {
	if id, ok := specialCases[raw]; ok {
		return id
	}

	s := strings.TrimSuffix(raw, ".svg")
	s = upperRune.ReplaceAllString(s, "-$1")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = spellDigits(s)
	s = repeatedDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// spellDigits replaces every digit run with hyphen-separated words,
// inserting word boundaries so "group1" becomes "group-one".
func spellDigits(s string) string {
	return digitRun.ReplaceAllStringFunc(s, func(run string) string {
		words := make([]string, 0, len(run))
		for _, r := range run {
			words = append(words, digitWords[r])
		}
		return "-" + strings.Join(words, "-") + "-"
	})
}

// IsKebabCase reports whether s is a valid canonical identifier:
// lowercase alphanumeric words separated by single hyphens.
func IsKebabCase(s string) bool {
	return kebabPattern.MatchString(s)
}

// Pascal converts a kebab-case identity to PascalCase.
func Pascal(id string) string {
	var b strings.Builder
	for _, word := range strings.Split(id, "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	return b.String()
}

// ComponentName builds the generated component name for one
// (identity, variant) pair, e.g. ("arrow-right", "Outline") -> "ArrowRightOutline".
// Stable: the same pair always yields the same name. Collisions between
// distinct identities are the caller's job to detect and reject.
func ComponentName(id, variantSuffix string) string {
	return Pascal(id) + variantSuffix
}

// Humanize converts an identity back to a display name, e.g.
// "arrow-right" -> "Arrow Right".
func Humanize(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Fixed two-digit filename markers for the standard variants. Custom
// variants get the next free code in schema order.
var standardMarkers = map[string]string{
	"outline":  "01",
	"broken":   "02",
	"bulk":     "03",
	"light":    "04",
	"two-tone": "05",
}

// Markers assigns a two-digit filename marker to every variant: the fixed
// table for the standard five, then the next free code in declaration order
// for custom variants. Deterministic for a given variant list.
func Markers(variants []types.VariantConfig) map[string]string {
	markers := make(map[string]string, len(variants))
	used := make(map[string]bool, len(variants))
	for _, v := range variants {
		if m, ok := standardMarkers[v.ID]; ok {
			markers[v.ID] = m
			used[m] = true
		}
	}
	next := 1
	for _, v := range variants {
		if _, ok := markers[v.ID]; ok {
			continue
		}
		for {
			code := fmt.Sprintf("%02d", next)
			next++
			if !used[code] {
				markers[v.ID] = code
				used[code] = true
				break
			}
		}
	}
	return markers
}

// ParsedFilename is the result of splitting a source filename into its base
// name and variant marker.
type ParsedFilename struct {
	Base    string
	Variant string
	Numeric bool
}

var numericSuffix = regexp.MustCompile(`^(.+)-(\d{2})$`)

// ParseFilename detects a trailing variant marker in an SVG filename: a
// two-digit numeric suffix ("arrow-right-01.svg") or a literal variant id
// suffix ("arrow-right-outline.svg"). Returns false when neither matches or
// the marker names no registered variant.
func ParseFilename(filename string, variants []types.VariantConfig) (ParsedFilename, bool) {
	name := strings.TrimSuffix(filename, ".svg")

	if m := numericSuffix.FindStringSubmatch(name); m != nil {
		markers := Markers(variants)
		for id, code := range markers {
			if code == m[2] {
				return ParsedFilename{Base: m[1], Variant: id, Numeric: true}, true
			}
		}
		return ParsedFilename{}, false
	}

	for _, v := range variants {
		if strings.HasSuffix(name, "-"+v.ID) {
			return ParsedFilename{Base: strings.TrimSuffix(name, "-"+v.ID), Variant: v.ID}, true
		}
	}

	return ParsedFilename{}, false
}
