// Package classify maps icon names to categories using the schema's ordered
// keyword tables.
package classify

import (
	"sort"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/schema"
)

// Classify returns the first category whose keyword set has a substring
// match in name. Table order is the tie-break when several categories
// match; names nothing matches land in the reserved misc category.
func Classify(name string, categories []schema.Category) string {
	lower := strings.ToLower(name)
	for _, cat := range categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(lower, keyword) {
				return cat.ID
			}
		}
	}
	return schema.MiscCategory
}

// RelatedCategories accumulates every matching category rather than the
// first, for icons that should be discoverable under more than one heading.
// Result is in table order.
func RelatedCategories(name string, categories []schema.Category) []string {
	lower := strings.ToLower(name)
	var matched []string
	for _, cat := range categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, cat.ID)
				break
			}
		}
	}
	return matched
}

// GenerateTags derives the tag set for an icon: the keywords of its category
// that match the name, plus the identity's own hyphen-split words. Sorted
// and deduplicated.
func GenerateTags(name, category string, categories []schema.Category) []string {
	lower := strings.ToLower(name)
	seen := make(map[string]bool)
	var tags []string

	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, cat := range categories {
		if cat.ID != category {
			continue
		}
		for _, keyword := range cat.Keywords {
			if strings.Contains(lower, keyword) {
				add(keyword)
			}
		}
	}

	for _, word := range strings.Split(lower, "-") {
		add(word)
	}

	sort.Strings(tags)
	return tags
}
