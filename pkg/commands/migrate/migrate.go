package migrate

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/classify"
	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
	"github.com/arthur-debert/iconforge/pkg/variants"
)

// Options defines the options for the Migrate command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Migrate converts a variant-first tree to the canonical category-first
// layout, one time and one direction. Every legacy file is moved to
// icons/<category>/<identity>-<NN>.svg and its sidecar content folded into
// the icon record. The migration refuses to run when any target file
// already exists, so it cannot clobber a migrated tree.
func Migrate(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.migrate")
	log.Debug().Str("command", "Migrate").Str("root", opts.Root).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}
	markers := identity.Markers(rt.Schema.Variants)
	registry := variants.New(rt.FS, rt.Layout)

	registered, err := registry.List()
	if err != nil {
		return nil, err
	}
	if len(registered) == 0 {
		return nil, errors.New(errors.ErrLayoutUnknown, "no variant directories found, tree is not variant-first")
	}

	// First pass: plan every move and refuse on any existing target.
	type move struct {
		id, category, variant string
		oldSVG, newSVG        string
		sidecar               *types.LegacySidecar
	}
	var moves []move

	for _, v := range registered {
		cfg, ok := rt.Schema.Variant(v.ID)
		if !ok {
			return nil, errors.Newf(errors.ErrVariantUnknown, "variant directory %q is not in the schema", v.ID)
		}
		dir := filepath.Join(rt.Layout.IconsDir, v.ID)
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
			base := strings.TrimSuffix(name, ".svg")
			id := identity.Normalize(base)
			if id == "" {
				continue
			}

			oldSVG := filepath.Join(dir, name)
			legacy := readLegacySidecar(rt, assets.SidecarPath(oldSVG))
			category := ""
			if legacy != nil {
				category = legacy.Category
			}
			if category == "" {
				category = classify.Classify(id, rt.Schema.Categories)
			}

			newSVG := assets.SVGPath(rt.Layout, category, id, markers[cfg.ID])
			if _, err := rt.FS.Stat(newSVG); err == nil {
				return nil, errors.Newf(errors.ErrAlreadyExists,
					"target %s already exists, refusing to migrate", assets.RelPath(rt.Layout, newSVG))
			}
			moves = append(moves, move{
				id: id, category: category, variant: cfg.ID,
				oldSVG: oldSVG, newSVG: newSVG, sidecar: legacy,
			})
		}
	}

	result := &types.CommandResult{Command: "migrate", Timestamp: time.Now()}
	records := map[string]*types.IconRecord{}

	for _, m := range moves {
		result.Tally.Processed++

		if err := rt.FS.MkdirAll(filepath.Dir(m.newSVG), 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to create category directory")
		}
		if err := rt.FS.Rename(m.oldSVG, m.newSVG); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to move %s", m.oldSVG)
		}
		// The legacy sidecar's content lives on in the record; the file
		// itself is superseded by the projected category-first sidecar.
		oldSidecar := assets.SidecarPath(m.oldSVG)
		if _, err := rt.FS.Stat(oldSidecar); err == nil {
			if err := rt.FS.Remove(oldSidecar); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to remove %s", oldSidecar)
			}
		}

		rec := records[m.id]
		if rec == nil {
			rec = &types.IconRecord{
				ID:                m.id,
				Name:              identity.Humanize(m.id),
				ComponentBaseName: identity.Pascal(m.id),
				Category:          m.category,
				Tags:              classify.GenerateTags(m.id, m.category, rt.Schema.Categories),
				Status:            types.StatusActive,
				Variants:          map[string]types.VariantInfo{},
				Metadata:          types.Audit{Author: rt.Config.Build.Author},
			}
			if m.sidecar != nil {
				if len(m.sidecar.Tags) > 0 {
					rec.Tags = m.sidecar.Tags
				}
				rec.Aliases = m.sidecar.Aliases
				rec.Description = m.sidecar.Description
				rec.Metadata.IsDeprecated = m.sidecar.Deprecated
			}
			records[m.id] = rec
		}

		cfg, _ := rt.Schema.Variant(m.variant)
		rec.Variants[m.variant] = types.VariantInfo{
			Available:           true,
			ComponentName:       identity.ComponentName(m.id, cfg.Suffix()),
			SVGPath:             assets.RelPath(rt.Layout, m.newSVG),
			SupportsStrokeWidth: cfg.SupportsStrokeWidth,
			DefaultStrokeWidth:  cfg.DefaultStrokeWidth,
			FillType:            cfg.FillType,
		}
		result.Tally.Generated++
	}

	var ids []string
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := rt.Store.Put(id, records[id]); err != nil {
			return nil, err
		}
	}

	// Drop the emptied variant directories.
	for _, v := range registered {
		dir := filepath.Join(rt.Layout.IconsDir, v.ID)
		remaining, err := rt.FS.ReadDir(dir)
		if err != nil {
			continue
		}
		empty := true
		for _, f := range remaining {
			if f.Name() != "variant.json" {
				empty = false
				break
			}
		}
		if empty {
			if err := rt.FS.RemoveAll(dir); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to remove %s", dir)
			}
		}
	}

	result.Message = fmt.Sprintf("Migrated %d files across %d icons.", result.Tally.Generated, len(records))
	return result, nil
}

func readLegacySidecar(rt *runtime.Runtime, path string) *types.LegacySidecar {
	data, err := rt.FS.ReadFile(path)
	if err != nil {
		return nil
	}
	var sc types.LegacySidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil
	}
	return &sc
}
