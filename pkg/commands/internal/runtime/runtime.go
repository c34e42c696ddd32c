// Package runtime wires the dependencies every command needs: filesystem,
// configuration, schema, and the metadata store, resolved once per
// invocation.
package runtime

import (
	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/filesystem"
	"github.com/arthur-debert/iconforge/pkg/metadata"
	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Runtime holds one command invocation's resolved dependencies.
type Runtime struct {
	FS     types.FS
	Config *config.Config
	Layout config.Layout
	Schema *schema.Schema
	Store  *metadata.Store
}

// Load resolves a runtime for the library root. A nil fsys selects the OS
// filesystem. The schema document is optional; without one the built-in
// defaults apply.
func Load(root string, fsys types.FS) (*Runtime, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	layout := cfg.Resolve(root)

	var sch *schema.Schema
	if _, err := fsys.Stat(layout.SchemaPath); err == nil {
		sch, err = schema.Load(fsys, layout.SchemaPath)
		if err != nil {
			return nil, err
		}
	} else {
		sch = schema.Default()
	}

	return &Runtime{
		FS:     fsys,
		Config: cfg,
		Layout: layout,
		Schema: sch,
		Store:  metadata.New(fsys, layout).WithCategories(sch.Categories),
	}, nil
}
