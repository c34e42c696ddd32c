package standardize

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Standardize command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Standardize renames every source file in the tree to the canonical
// <identity>-<NN>.svg shape, moving the paired sidecar alongside. Files
// whose variant cannot be detected are skipped with a warning; a rename
// whose target already exists is reported as a duplicate and left alone.
func Standardize(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.standardize")
	log.Debug().Str("command", "Standardize").Str("root", opts.Root).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}
	markers := identity.Markers(rt.Schema.Variants)

	entries, err := rt.FS.ReadDir(rt.Layout.IconsDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to read icons directory")
	}
	var categories []string
	for _, e := range entries {
		if e.IsDir() {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)

	result := &types.CommandResult{Command: "standardize", Timestamp: time.Now()}

	for _, category := range categories {
		dir := filepath.Join(rt.Layout.IconsDir, category)
		files, err := rt.FS.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", dir)
		}
		var names []string
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".svg") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			result.Tally.Processed++

			parsed, ok := identity.ParseFilename(name, rt.Schema.Variants)
			if !ok {
				log.Warn().Str("file", name).Str("category", category).Msg("no variant detected, file skipped")
				result.Tally.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("no variant detected: %s/%s", category, name))
				continue
			}

			id := identity.Normalize(parsed.Base)
			canonical := fmt.Sprintf("%s-%s.svg", id, markers[parsed.Variant])
			if name == canonical {
				continue
			}

			oldPath := filepath.Join(dir, name)
			newPath := filepath.Join(dir, canonical)
			if _, err := rt.FS.Stat(newPath); err == nil {
				log.Warn().Str("target", canonical).Str("category", category).Msg("duplicate detected, file left alone")
				result.Tally.Errors++
				result.Warnings = append(result.Warnings, fmt.Sprintf("duplicate: %s/%s already exists", category, canonical))
				continue
			}

			if err := rt.FS.Rename(oldPath, newPath); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to rename %s", oldPath)
			}
			oldSidecar := assets.SidecarPath(oldPath)
			if _, err := rt.FS.Stat(oldSidecar); err == nil {
				if err := rt.FS.Rename(oldSidecar, assets.SidecarPath(newPath)); err != nil {
					return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to rename %s", oldSidecar)
				}
			}

			result.Tally.Generated++
			result.Paths = append(result.Paths, fmt.Sprintf("%s/%s -> %s", category, name, canonical))
		}
	}

	if result.Tally.Generated == 0 && result.Tally.Skipped == 0 && result.Tally.Errors == 0 {
		result.Message = "All icons are already standardized."
	} else {
		result.Message = fmt.Sprintf("Renamed %d files.", result.Tally.Generated)
	}
	return result, nil
}
