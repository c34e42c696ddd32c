package build

import (
	"fmt"
	"time"

	pipeline "github.com/arthur-debert/iconforge/pkg/build"
	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Build command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// Layout overrides the configured source layout (category or variant).
	Layout string
	// SkipCollisions downgrades name collisions to skip-with-warning.
	SkipCollisions bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Build runs the full pipeline over the library root.
func Build(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.build")
	log.Debug().Str("command", "Build").Str("root", opts.Root).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	layout := opts.Layout
	if layout == "" {
		layout = rt.Config.Build.Layout
	}

	orch := pipeline.New(rt.FS, rt.Layout, rt.Schema, rt.Store, pipeline.Options{
		Layout:         layout,
		SkipCollisions: opts.SkipCollisions || rt.Config.Build.SkipCollisions,
		Author:         rt.Config.Build.Author,
	})
	res, err := orch.Run()
	if err != nil {
		return nil, err
	}

	return &types.CommandResult{
		Command:   "build",
		Timestamp: time.Now(),
		Message: fmt.Sprintf("Generated %d components for %d icons.",
			res.Generated, res.Records),
		Tally: types.Tally{
			Processed: res.Processed,
			Generated: res.Generated,
			Skipped:   res.Skipped + res.Collisions,
			Errors:    res.Malformed,
		},
		Warnings: res.Warnings,
		Stats:    &res.Stats,
	}, nil
}
