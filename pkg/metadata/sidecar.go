package metadata

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconforge/pkg/classify"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/types"
)

const sidecarSchema = "../icon.schema.json"

// ProjectSidecars regenerates every per-asset sidecar of a record from the
// record itself. Pure and idempotent: sidecars carry no state of their own,
// so running this twice is a no-op. Only sidecars whose SVG asset still
// exists are written.
func (s *Store) ProjectSidecars(rec *types.IconRecord) error {
	for variantID, info := range rec.Variants {
		if info.SVGPath == "" {
			continue
		}
		svgPath := filepath.Join(s.layout.Root, filepath.FromSlash(info.SVGPath))
		if !s.exists(svgPath) {
			continue
		}

		sidecar := types.Sidecar{
			Schema:       sidecarSchema,
			Variant:      variantID,
			Contributors: contributors(rec),
			Tags:         emptyNotNil(rec.Tags),
			Categories:   s.sidecarCategories(rec),
			Aliases:      emptyNotNil(rec.Aliases),
			Deprecated:   rec.Metadata.IsDeprecated,
		}

		data, err := json.MarshalIndent(sidecar, "", "\t")
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to encode sidecar for %q/%s", rec.ID, variantID)
		}
		sidecarPath := strings.TrimSuffix(svgPath, ".svg") + ".json"
		if err := s.fs.WriteFile(sidecarPath, append(data, '\n'), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to write sidecar for %q/%s", rec.ID, variantID)
		}
	}
	return nil
}

// sidecarCategories lists the record's primary category first, then every
// other category whose keywords match the identity.
func (s *Store) sidecarCategories(rec *types.IconRecord) []string {
	out := []string{rec.Category}
	for _, related := range classify.RelatedCategories(rec.ID, s.categories) {
		if related != rec.Category {
			out = append(out, related)
		}
	}
	return out
}

func contributors(rec *types.IconRecord) []string {
	if rec.Metadata.Author != "" {
		return []string{rec.Metadata.Author}
	}
	return []string{"Admin"}
}

func emptyNotNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
