package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/classify"
	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/optimize"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Upload command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// Variant is the target variant for every uploaded file.
	Variant string
	// Category forces a category; empty means classify from each name.
	Category string
	// Overwrite replaces an existing asset for the same (variant, name)
	// instead of skipping it.
	Overwrite bool
	// Files are the SVG source paths to import.
	Files []string
	// Optimizer optionally replaces the built-in normalizer.
	Optimizer optimize.Optimizer
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Upload bulk-imports SVG files into the library: normalizes each name to
// its identity, classifies it, normalizes the SVG source, writes it to the
// canonical path, and creates or extends the icon record. Duplicate targets
// are skipped unless Overwrite is set.
func Upload(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.upload")
	log.Debug().Str("command", "Upload").Int("files", len(opts.Files)).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	cfg, ok := rt.Schema.Variant(opts.Variant)
	if !ok {
		return nil, errors.Newf(errors.ErrVariantUnknown, "variant %q is not in the schema", opts.Variant)
	}
	marker := identity.Markers(rt.Schema.Variants)[cfg.ID]
	runner := optimize.NewRunner(opts.Optimizer)

	result := &types.CommandResult{Command: "upload", Timestamp: time.Now()}

	for _, file := range opts.Files {
		result.Tally.Processed++

		base := strings.TrimSuffix(filepath.Base(file), ".svg")
		id := identity.Normalize(base)
		if id == "" {
			result.Tally.Errors++
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid name: %s", file))
			continue
		}

		category := opts.Category
		if category == "" {
			category = classify.Classify(id, rt.Schema.Categories)
		}

		svg, err := rt.FS.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", file)
		}
		cleaned, err := runner.Optimize(svg, cfg.RenderingPolicy)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrMalformedSVG) {
				log.Warn().Str("file", file).Err(err).Msg("malformed SVG, file skipped")
				result.Tally.Errors++
				result.Warnings = append(result.Warnings, fmt.Sprintf("malformed SVG: %s", file))
				continue
			}
			return nil, err
		}

		target := assets.SVGPath(rt.Layout, category, id, marker)
		if _, err := rt.FS.Stat(target); err == nil {
			if !opts.Overwrite {
				log.Warn().Str("target", target).Msg("target exists, file skipped")
				result.Tally.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("already exists: %s", assets.RelPath(rt.Layout, target)))
				continue
			}
			log.Info().Str("target", target).Msg("overwriting existing asset")
		}
		if err := rt.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to create category directory")
		}
		if err := rt.FS.WriteFile(target, cleaned, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", target)
		}

		if err := upsertRecord(rt, id, category, cfg, target); err != nil {
			return nil, err
		}

		result.Tally.Generated++
		result.Paths = append(result.Paths, assets.RelPath(rt.Layout, target))
	}

	result.Message = fmt.Sprintf("Imported %d of %d files into %s.",
		result.Tally.Generated, result.Tally.Processed, opts.Variant)
	return result, nil
}

func upsertRecord(rt *runtime.Runtime, id, category string, cfg types.VariantConfig, target string) error {
	rec, err := rt.Store.Get(id)
	switch {
	case err == nil:
	case errors.IsErrorCode(err, errors.ErrNotFound):
		rec = &types.IconRecord{
			ID:                id,
			Name:              identity.Humanize(id),
			ComponentBaseName: identity.Pascal(id),
			Category:          category,
			Tags:              classify.GenerateTags(id, category, rt.Schema.Categories),
			Variants:          map[string]types.VariantInfo{},
			Metadata:          types.Audit{Author: rt.Config.Build.Author},
		}
	default:
		return err
	}

	if rec.Variants == nil {
		rec.Variants = map[string]types.VariantInfo{}
	}
	rec.Variants[cfg.ID] = types.VariantInfo{
		Available:           true,
		ComponentName:       identity.ComponentName(id, cfg.Suffix()),
		SVGPath:             assets.RelPath(rt.Layout, target),
		SupportsStrokeWidth: cfg.SupportsStrokeWidth,
		DefaultStrokeWidth:  cfg.DefaultStrokeWidth,
		FillType:            cfg.FillType,
	}
	rec.Status = types.StatusActive

	return rt.Store.Put(id, rec)
}
