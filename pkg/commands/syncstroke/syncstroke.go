package syncstroke

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/commands/internal/runtime"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// Options defines the options for the SyncStroke command.
type Options struct {
	// Root is the path to the library root.
	Root string
	// Fix rewrites existing files whose stroke-width drifted from the
	// variant default, instead of only generating missing siblings.
	Fix bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

var numericFile = regexp.MustCompile(`^(.+)-(\d{2})\.svg$`)

// SyncStroke keeps the stroke-weight variant family complete: variants
// that differ only by stroke-width (outline and light in the standard
// schema) are derived from whichever sibling exists. Fill-based sources are
// skipped. With Fix set, existing files with a wrong stroke-width are
// repaired in place.
func SyncStroke(opts Options) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.syncstroke")
	log.Debug().Str("command", "SyncStroke").Bool("fix", opts.Fix).Msg("Executing command")

	rt, err := runtime.Load(opts.Root, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	// The sync family: stroke-policy variants that support a stroke-width
	// parameter. Everything else is untouched.
	markers := identity.Markers(rt.Schema.Variants)
	family := map[string]string{} // marker code -> formatted width
	for _, v := range rt.Schema.Variants {
		if v.FillType == types.FillTypeStroke && v.SupportsStrokeWidth {
			family[markers[v.ID]] = strconv.FormatFloat(v.DefaultStrokeWidth, 'f', -1, 64)
		}
	}

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

	result := &types.CommandResult{Command: "syncstroke", Timestamp: time.Now()}

	for _, category := range categories {
		dir := filepath.Join(rt.Layout.IconsDir, category)
		if err := syncCategory(rt, dir, category, family, opts.Fix, result); err != nil {
			return nil, err
		}
	}

	verb := "Generated"
	if opts.Fix {
		verb = "Repaired"
	}
	result.Message = fmt.Sprintf("%s %d files.", verb, result.Tally.Generated)
	return result, nil
}

func syncCategory(rt *runtime.Runtime, dir, category string, family map[string]string, fix bool, result *types.CommandResult) error {
	log := logging.GetLogger("commands.syncstroke")

	files, err := rt.FS.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", dir)
	}

	// Group files by base name, keyed by marker code.
	groups := map[string]map[string]string{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := numericFile.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}
		if groups[m[1]] == nil {
			groups[m[1]] = map[string]string{}
		}
		groups[m[1]][m[2]] = f.Name()
	}

	var bases []string
	for base := range groups {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		group := groups[base]

		// Pick the source: the first family member present, in marker order.
		var sourceCode string
		for _, code := range sortedCodes(family) {
			if _, ok := group[code]; ok {
				sourceCode = code
				break
			}
		}
		if sourceCode == "" {
			continue
		}

		sourcePath := filepath.Join(dir, group[sourceCode])
		svg, err := rt.FS.ReadFile(sourcePath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", sourcePath)
		}
		if !assets.IsStrokeBased(string(svg)) {
			result.Tally.Skipped++
			continue
		}

		for _, code := range sortedCodes(family) {
			width := family[code]

			if name, ok := group[code]; ok {
				if !fix {
					continue
				}
				path := filepath.Join(dir, name)
				content, err := rt.FS.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", path)
				}
				if !assets.IsStrokeBased(string(content)) || assets.StrokeWidth(string(content)) == width {
					continue
				}
				result.Tally.Processed++
				fixed := assets.SetStrokeWidth(string(content), width)
				if err := rt.FS.WriteFile(path, []byte(fixed), 0644); err != nil {
					return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
				}
				result.Tally.Generated++
				result.Paths = append(result.Paths, fmt.Sprintf("%s/%s", category, name))
				continue
			}

			if fix {
				continue
			}
			result.Tally.Processed++
			target := filepath.Join(dir, fmt.Sprintf("%s-%s.svg", base, code))
			derived := assets.SetStrokeWidth(string(svg), width)
			if err := rt.FS.WriteFile(target, []byte(derived), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", target)
			}
			log.Debug().Str("source", group[sourceCode]).Str("target", filepath.Base(target)).Msg("derived stroke sibling")
			result.Tally.Generated++
			result.Paths = append(result.Paths, fmt.Sprintf("%s/%s", category, filepath.Base(target)))
		}
	}
	return nil
}

func sortedCodes(family map[string]string) []string {
	codes := make([]string, 0, len(family))
	for code := range family {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
