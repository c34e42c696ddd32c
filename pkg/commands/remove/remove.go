package remove

import (
	"fmt"
	"time"

	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Remove command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// ID is the identity to remove.
	ID string
	// Category locates the icon's asset files.
	Category string
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Remove deletes an icon: every asset file, every sidecar, and the record.
func Remove(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("command", "Remove").Str("id", opts.ID).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	if err := rt.Store.Delete(opts.ID, opts.Category); err != nil {
		return nil, err
	}

	return &types.CommandResult{
		Command:   "remove",
		Timestamp: time.Now(),
		Message:   fmt.Sprintf("Removed %s.", opts.ID),
		Tally:     types.Tally{Processed: 1, Generated: 1},
	}, nil
}
