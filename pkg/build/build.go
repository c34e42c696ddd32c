// Package build implements the batch pipeline that turns the source asset
// tree into generated components, per-identity metadata records, and the
// aggregate catalog. One synchronous pass, no state between runs: rebuilding
// over unchanged inputs reproduces identical outputs.
package build

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/classify"
	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/metadata"
	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/arthur-debert/iconforge/pkg/transcode"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Layout generations of the source tree.
const (
	LayoutCategory = "category"
	LayoutVariant  = "variant"
)

// Options control one build run.
type Options struct {
	// Layout selects how the icons directory is organized: category-first
	// (canonical) or variant-first (legacy, read-only support).
	Layout string
	// SkipCollisions downgrades name collisions from a fatal error to a
	// skip-with-warning, for bulk-import workflows.
	SkipCollisions bool
	// Author is stamped on records created by this run.
	Author string
}

// Result tallies one build run.
type Result struct {
	Processed  int
	Generated  int
	Records    int
	Skipped    int
	Malformed  int
	Collisions int
	Warnings   []string
	Stats      types.CatalogStats
}

// source is one discovered SVG file, resolved to its identity and variant.
type source struct {
	ID           string
	OriginalName string
	Category     string
	Variant      string
	Path         string
}

// Orchestrator runs the pipeline over one library root.
type Orchestrator struct {
	fs     types.FS
	layout config.Layout
	schema *schema.Schema
	store  *metadata.Store
	opts   Options
}

// New assembles an orchestrator. A zero Layout option means category-first.
func New(fsys types.FS, layout config.Layout, sch *schema.Schema, store *metadata.Store, opts Options) *Orchestrator {
	if opts.Layout == "" {
		opts.Layout = LayoutCategory
	}
	return &Orchestrator{fs: fsys, layout: layout, schema: sch, store: store, opts: opts}
}

// Run executes the full pipeline: discover, transcode, emit.
func (o *Orchestrator) Run() (*Result, error) {
	logger := logging.GetLogger("build")
	result := &Result{}

	sources, err := o.discover(result)
	if err != nil {
		return nil, err
	}

	// Component names must be unique across the whole catalog, so claims are
	// checked before anything is written.
	claims := map[string]string{}
	icons := map[string]*types.IconRecord{}
	catalog := o.emptyCatalog()

	for _, src := range sources {
		result.Processed++

		cfg, ok := o.schema.Variant(src.Variant)
		if !ok {
			return nil, errors.Newf(errors.ErrVariantUnknown, "variant %q is not in the schema", src.Variant)
		}
		componentName := identity.ComponentName(src.ID, cfg.Suffix())

		if prior, claimed := claims[componentName]; claimed {
			msg := fmt.Sprintf("component %s claimed by both %s and %s", componentName, prior, src.Path)
			if !o.opts.SkipCollisions {
				return nil, errors.New(errors.ErrNameCollision, msg)
			}
			logger.Warn().Str("component", componentName).Msg("name collision, second source skipped")
			result.Collisions++
			result.Warnings = append(result.Warnings, msg)
			continue
		}

		svg, err := o.fs.ReadFile(src.Path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", src.Path)
		}

		component, err := transcode.Component(svg, componentName, cfg.RenderingPolicy)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrMalformedSVG) {
				logger.Warn().Str("path", src.Path).Err(err).Msg("malformed SVG, file skipped")
				result.Malformed++
				result.Warnings = append(result.Warnings, fmt.Sprintf("malformed SVG: %s", src.Path))
				continue
			}
			return nil, err
		}

		claims[componentName] = src.Path

		outDir := filepath.Join(o.layout.OutputDir, src.Variant)
		if err := o.fs.MkdirAll(outDir, 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to create output directory")
		}
		outPath := filepath.Join(outDir, componentName+".tsx")
		if err := o.fs.WriteFile(outPath, []byte(component), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", outPath)
		}
		result.Generated++

		o.fold(icons, catalog, src, cfg, componentName)
	}

	if err := o.emitIndexes(catalog); err != nil {
		return nil, err
	}
	if err := o.emitRecords(icons, result); err != nil {
		return nil, err
	}
	if err := o.emitCatalog(catalog, icons); err != nil {
		return nil, err
	}
	if err := o.emitCategoryIndex(catalog); err != nil {
		return nil, err
	}
	result.Stats = catalog.Stats

	logger.Info().
		Int("processed", result.Processed).
		Int("generated", result.Generated).
		Int("records", result.Records).
		Int("skipped", result.Skipped).
		Int("malformed", result.Malformed).
		Int("collisions", result.Collisions).
		Msg("build complete")
	return result, nil
}

// discover walks the icons tree and resolves every SVG to a source. Walks
// are sorted so output ordering is deterministic.
func (o *Orchestrator) discover(result *Result) ([]source, error) {
	logger := logging.GetLogger("build")

	entries, err := o.fs.ReadDir(o.layout.IconsDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to read icons directory")
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	var sources []source
	for _, dir := range dirs {
		dirPath := filepath.Join(o.layout.IconsDir, dir)
		files, err := o.fs.ReadDir(dirPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", dirPath)
		}
		var names []string
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".svg") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			src, ok := o.resolve(dir, name)
			if !ok {
				logger.Warn().Str("file", name).Str("dir", dir).Msg("unrecognized filename shape, file skipped")
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("unrecognized filename: %s/%s", dir, name))
				continue
			}
			src.Path = filepath.Join(dirPath, name)
			sources = append(sources, src)
		}
	}
	return sources, nil
}

// resolve maps one filename inside one top-level directory to a source,
// according to the layout generation.
func (o *Orchestrator) resolve(dir, filename string) (source, bool) {
	switch o.opts.Layout {
	case LayoutVariant:
		if _, ok := o.schema.Variant(dir); !ok {
			return source{}, false
		}
		base := strings.TrimSuffix(filename, ".svg")
		id := identity.Normalize(base)
		if id == "" {
			return source{}, false
		}
		return source{
			ID:           id,
			OriginalName: base,
			Category:     classify.Classify(id, o.schema.Categories),
			Variant:      dir,
		}, true
	default:
		parsed, ok := identity.ParseFilename(filename, o.schema.Variants)
		if !ok {
			return source{}, false
		}
		id := identity.Normalize(parsed.Base)
		if id == "" {
			return source{}, false
		}
		return source{
			ID:           id,
			OriginalName: parsed.Base,
			Category:     dir,
			Variant:      parsed.Variant,
		}, true
	}
}

func (o *Orchestrator) emptyCatalog() *types.Catalog {
	return &types.Catalog{
		Icons:      []types.CatalogIcon{},
		Variants:   o.schema.Variants,
		Categories: map[string][]string{},
		Components: map[string]string{},
		Defaults:   o.schema.DefaultSettings,
		Stats: types.CatalogStats{
			ByVariant:  map[string]int{},
			ByCategory: map[string]int{},
		},
	}
}

// fold merges one generated component into the per-identity record map and
// the aggregate catalog.
func (o *Orchestrator) fold(icons map[string]*types.IconRecord, catalog *types.Catalog, src source, cfg types.VariantConfig, componentName string) {
	rec, ok := icons[src.ID]
	if !ok {
		rec = &types.IconRecord{
			ID:                src.ID,
			Name:              identity.Humanize(src.ID),
			ComponentBaseName: identity.Pascal(src.ID),
			Category:          src.Category,
			Tags:              classify.GenerateTags(src.ID, src.Category, o.schema.Categories),
			Variants:          map[string]types.VariantInfo{},
			Metadata:          types.Audit{Author: o.opts.Author},
		}
		o.enrichFromSidecar(rec, src)
		icons[src.ID] = rec
	}

	relPath := assets.RelPath(o.layout, src.Path)
	rec.Variants[src.Variant] = types.VariantInfo{
		Available:           true,
		ComponentName:       componentName,
		SVGPath:             relPath,
		SupportsStrokeWidth: cfg.SupportsStrokeWidth,
		DefaultStrokeWidth:  cfg.DefaultStrokeWidth,
		FillType:            cfg.FillType,
	}

	catalog.Icons = append(catalog.Icons, types.CatalogIcon{
		Name:                src.ID,
		OriginalName:        src.OriginalName,
		Path:                relPath,
		Variant:             src.Variant,
		Category:            src.Category,
		SupportsStrokeWidth: cfg.SupportsStrokeWidth,
		DefaultStrokeWidth:  cfg.DefaultStrokeWidth,
		FillType:            cfg.FillType,
	})
	catalog.Components[types.ComponentKey(src.ID, src.Variant)] = componentName
	catalog.Stats.Total++
	catalog.Stats.ByVariant[src.Variant]++
	catalog.Stats.ByCategory[src.Category]++
}

// enrichFromSidecar folds a paired sidecar's hand-authored fields into a
// fresh record.
func (o *Orchestrator) enrichFromSidecar(rec *types.IconRecord, src source) {
	data, err := o.fs.ReadFile(assets.SidecarPath(src.Path))
	if err != nil {
		return
	}
	var sc types.Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return
	}
	if len(sc.Tags) > 0 {
		rec.Tags = sc.Tags
	}
	if len(sc.Aliases) > 0 {
		rec.Aliases = sc.Aliases
	}
	rec.Metadata.IsDeprecated = sc.Deprecated
}

// emitIndexes writes per-variant index.ts files and the root index.ts.
func (o *Orchestrator) emitIndexes(catalog *types.Catalog) error {
	byVariant := map[string][]string{}
	for key, componentName := range catalog.Components {
		_, variant, _ := strings.Cut(key, "/")
		byVariant[variant] = append(byVariant[variant], componentName)
	}

	var variantIDs []string
	for variant := range byVariant {
		variantIDs = append(variantIDs, variant)
	}
	sort.Strings(variantIDs)

	for _, variant := range variantIDs {
		names := byVariant[variant]
		sort.Strings(names)
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "export { default as %s } from './%s';\n", name, name)
		}
		path := filepath.Join(o.layout.OutputDir, variant, "index.ts")
		if err := o.fs.WriteFile(path, []byte(b.String()), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
		}
	}

	var root strings.Builder
	for _, variant := range variantIDs {
		fmt.Fprintf(&root, "export * from './%s';\n", variant)
	}
	path := filepath.Join(o.layout.OutputDir, "index.ts")
	if err := o.fs.MkdirAll(o.layout.OutputDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create output directory")
	}
	if err := o.fs.WriteFile(path, []byte(root.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return nil
}

// emitRecords upserts one record per identity, in sorted order.
func (o *Orchestrator) emitRecords(icons map[string]*types.IconRecord, result *Result) error {
	var ids []string
	for id := range icons {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec := icons[id]
		if len(rec.AvailableVariants()) > 0 {
			rec.Status = types.StatusActive
		} else {
			rec.Status = types.StatusDraft
		}
		if err := o.store.Put(id, rec); err != nil {
			return err
		}
		result.Records++
	}
	return nil
}

// emitCategoryIndex writes the category to icon-list index.
func (o *Orchestrator) emitCategoryIndex(catalog *types.Catalog) error {
	if err := o.fs.MkdirAll(o.layout.CategoriesDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create categories directory")
	}
	data, err := json.MarshalIndent(catalog.Categories, "", "\t")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode category index")
	}
	path := filepath.Join(o.layout.CategoriesDir, "categories.json")
	if err := o.fs.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return nil
}

// emitCatalog finalizes derived stats and writes metadata.json next to the
// generated components.
func (o *Orchestrator) emitCatalog(catalog *types.Catalog, icons map[string]*types.IconRecord) error {
	for id, rec := range icons {
		catalog.Categories[rec.Category] = append(catalog.Categories[rec.Category], id)
	}
	for category := range catalog.Categories {
		sort.Strings(catalog.Categories[category])
	}
	catalog.Stats.UniqueIcons = len(icons)

	sort.Slice(catalog.Icons, func(i, j int) bool {
		a, b := catalog.Icons[i], catalog.Icons[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Variant < b.Variant
	})

	data, err := json.MarshalIndent(catalog, "", "\t")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode catalog")
	}
	path := filepath.Join(o.layout.OutputDir, "metadata.json")
	if err := o.fs.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return nil
}
