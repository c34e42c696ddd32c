// Package variants manages the variant registry: one directory per variant
// with a variant.json describing its rendering policy and presentation.
//
// A policy is immutable once components exist for the variant; the registry
// therefore only supports create and list, never update.
package variants

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/types"
)

const configFile = "variant.json"

// variantDoc is the on-disk shape of variant.json.
type variantDoc struct {
	Schema string `json:"$schema,omitempty"`
	types.VariantConfig
}

// Registry reads and creates variant directories under the icons dir.
type Registry struct {
	fs     types.FS
	layout config.Layout
}

// New creates a registry over the given filesystem and layout.
func New(fsys types.FS, layout config.Layout) *Registry {
	return &Registry{fs: fsys, layout: layout}
}

func (r *Registry) dir(id string) string {
	return filepath.Join(r.layout.IconsDir, id)
}

// Create registers a new variant: makes its directory and writes
// variant.json. Fails with ALREADY_EXISTS when the directory is present.
func (r *Registry) Create(cfg types.VariantConfig) (*types.VariantConfig, error) {
	if cfg.ID == "" || cfg.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "variant id and name are required")
	}
	if !identity.IsKebabCase(cfg.ID) {
		return nil, errors.Newf(errors.ErrInvalidIdentifier, "variant id %q is not kebab-case", cfg.ID)
	}

	if _, err := r.fs.Stat(r.dir(cfg.ID)); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "variant %q already exists", cfg.ID)
	}

	if cfg.FillType == "" {
		cfg.FillType = types.FillTypeStroke
	}
	if cfg.DefaultStrokeWidth == 0 && cfg.FillType != types.FillTypeFill {
		cfg.DefaultStrokeWidth = 2
	}

	if err := r.fs.MkdirAll(r.dir(cfg.ID), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to create variant directory %q", cfg.ID)
	}

	doc := variantDoc{Schema: "../../variant.schema.json", VariantConfig: cfg}
	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode variant %q", cfg.ID)
	}
	path := filepath.Join(r.dir(cfg.ID), configFile)
	if err := r.fs.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return &cfg, nil
}

// List returns every registered variant, sorted by id.
func (r *Registry) List() ([]types.VariantConfig, error) {
	entries, err := r.fs.ReadDir(r.layout.IconsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to list icons directory")
	}

	var configs []types.VariantConfig
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cfg, err := r.read(e.Name())
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrNotFound) {
				// Plain category directories have no variant.json.
				continue
			}
			return nil, err
		}
		configs = append(configs, *cfg)
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	return configs, nil
}

// Get returns one variant's config, or NOT_FOUND.
func (r *Registry) Get(id string) (*types.VariantConfig, error) {
	return r.read(id)
}

func (r *Registry) read(id string) (*types.VariantConfig, error) {
	data, err := r.fs.ReadFile(filepath.Join(r.dir(id), configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no variant config for %q", id)
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read variant %q", id)
	}
	var doc variantDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "corrupt variant config %q", id)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return &doc.VariantConfig, nil
}
