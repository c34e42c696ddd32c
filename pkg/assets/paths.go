// Package assets derives on-disk locations for icon assets and provides the
// low-level file operations over them.
//
// An asset's location is a pure function of (identity, variant, category). It
// is never stored independently, which is why renaming an identity or
// re-categorizing an icon must physically move files.
package assets

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// CategoryDir returns the directory holding a category's assets in the
// canonical category-first layout.
func CategoryDir(layout config.Layout, category string) string {
	return filepath.Join(layout.IconsDir, category)
}

// SVGPath returns the asset path for (identity, marker) under a category.
func SVGPath(layout config.Layout, category, id, marker string) string {
	return filepath.Join(CategoryDir(layout, category), id+"-"+marker+".svg")
}

// SidecarPath returns the per-asset metadata path next to an SVG asset.
func SidecarPath(svgPath string) string {
	return strings.TrimSuffix(svgPath, ".svg") + ".json"
}

// RelPath rewrites an absolute asset path relative to the library root, the
// form stored inside icon records.
func RelPath(layout config.Layout, abs string) string {
	rel, err := filepath.Rel(layout.Root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// markerFile matches the tail of a canonical asset filename after the
// "<id>-" prefix, so "arrow" does not claim "arrow-right-01.svg".
var markerFile = regexp.MustCompile(`^\d{2}\.(svg|json)$`)

// IconFiles lists the names of every file in categoryDir belonging to an
// identity: SVG assets and their sidecars, all named "<id>-<NN>.svg|json".
func IconFiles(fsys types.FS, categoryDir, id string) ([]string, error) {
	entries, err := fsys.ReadDir(categoryDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		rest, ok := strings.CutPrefix(name, id+"-")
		if !ok || !markerFile.MatchString(rest) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}
