package optimize

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	svgopt "github.com/arthur-debert/iconforge/pkg/optimize"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Optimize command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// Optimizer optionally replaces the built-in normalizer.
	Optimizer svgopt.Optimizer
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Optimize sweeps the whole source tree and rewrites each SVG through the
// optimizer for its variant's policy. Files already in normal form are
// untouched.
func Optimize(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.optimize")
	log.Debug().Str("command", "Optimize").Str("root", opts.Root).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}
	runner := svgopt.NewRunner(opts.Optimizer)

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

	result := &types.CommandResult{Command: "optimize", Timestamp: time.Now()}

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
				result.Tally.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("unrecognized filename: %s/%s", category, name))
				continue
			}
			cfg, _ := rt.Schema.Variant(parsed.Variant)

			path := filepath.Join(dir, name)
			svg, err := rt.FS.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", path)
			}

			cleaned, err := runner.Optimize(svg, cfg.RenderingPolicy)
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("optimization failed, file skipped")
				result.Tally.Errors++
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed: %s/%s", category, name))
				continue
			}
			if bytes.Equal(cleaned, svg) {
				continue
			}
			if err := rt.FS.WriteFile(path, cleaned, 0644); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
			}
			result.Tally.Generated++
		}
	}

	result.Message = fmt.Sprintf("Rewrote %d of %d files.", result.Tally.Generated, result.Tally.Processed)
	return result, nil
}
