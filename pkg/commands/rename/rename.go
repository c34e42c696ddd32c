package rename

import (
	"fmt"
	"time"

	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the Rename command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// OldID is the current identity.
	OldID string
	// NewID is the target identity, which must be kebab-case.
	NewID string
	// Category locates the icon's asset files.
	Category string
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Rename moves an icon to a new identity: asset files, sidecars, and the
// metadata record.
func Rename(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.rename")
	log.Debug().Str("command", "Rename").Str("old", opts.OldID).Str("new", opts.NewID).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	if err := rt.Store.Rename(opts.OldID, opts.NewID, opts.Category); err != nil {
		return nil, err
	}

	return &types.CommandResult{
		Command:   "rename",
		Timestamp: time.Now(),
		Message:   fmt.Sprintf("Renamed %s to %s.", opts.OldID, opts.NewID),
		Tally:     types.Tally{Processed: 1, Generated: 1},
	}, nil
}
