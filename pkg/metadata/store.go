// Package metadata implements the icon record store: durable, identity-keyed
// metadata documents persisted as JSON files, one per icon.
//
// The record is the single source of truth. Per-asset sidecar files are a
// projection of it, regenerated after every mutation rather than maintained
// as independently writable state.
package metadata

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/iconforge/pkg/assets"
	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/identity"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/arthur-debert/iconforge/pkg/types"
)

const dateLayout = "2006-01-02"

// Store persists icon records under the library's metadata directory.
type Store struct {
	fs         types.FS
	layout     config.Layout
	categories []schema.Category
	now        func() time.Time
}

// New creates a store over the given filesystem and layout.
func New(fsys types.FS, layout config.Layout) *Store {
	return &Store{fs: fsys, layout: layout, now: time.Now}
}

// WithClock replaces the store's clock, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithCategories supplies the classification table so projected sidecars can
// list related categories alongside the primary one.
func (s *Store) WithCategories(categories []schema.Category) *Store {
	s.categories = categories
	return s
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.layout.MetadataDir, id+".json")
}

func (s *Store) today() string {
	return s.now().Format(dateLayout)
}

// Get returns the record for id, or NOT_FOUND.
func (s *Store) Get(id string) (*types.IconRecord, error) {
	data, err := s.fs.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no metadata record for %q", id)
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read record %q", id)
	}
	var rec types.IconRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "corrupt record %q", id)
	}
	return &rec, nil
}

// Create writes a brand-new record. Fails with ALREADY_EXISTS when a record
// for id is present; this is the only path that sets addedDate.
func (s *Store) Create(id string, rec *types.IconRecord) error {
	if _, err := s.fs.Stat(s.recordPath(id)); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "record %q already exists", id)
	}

	rec.ID = id
	if rec.Metadata.AddedDate == "" {
		rec.Metadata.AddedDate = s.today()
	}
	rec.Metadata.LastModified = s.today()

	if err := s.write(id, rec); err != nil {
		return err
	}
	return s.ProjectSidecars(rec)
}

// Put creates or overwrites a record wholesale. Build runs use it to refresh
// derived records: addedDate survives from the existing record, and
// lastModified only moves when the record content actually changed, so a
// rebuild over unchanged inputs reproduces identical bytes.
func (s *Store) Put(id string, rec *types.IconRecord) error {
	rec.ID = id

	prev, err := s.Get(id)
	switch {
	case err == nil:
		if rec.Metadata.AddedDate == "" {
			rec.Metadata.AddedDate = prev.Metadata.AddedDate
		}
		rec.Metadata.LastModified = prev.Metadata.LastModified
		if !sameRecord(prev, rec) {
			rec.Metadata.LastModified = s.today()
		}
	case errors.IsErrorCode(err, errors.ErrNotFound):
		if rec.Metadata.AddedDate == "" {
			rec.Metadata.AddedDate = s.today()
		}
		rec.Metadata.LastModified = s.today()
	default:
		return err
	}

	if err := s.write(id, rec); err != nil {
		return err
	}
	return s.ProjectSidecars(rec)
}

// sameRecord compares two records ignoring lastModified.
func sameRecord(a, b *types.IconRecord) bool {
	ac, bc := *a, *b
	ac.Metadata.LastModified = ""
	bc.Metadata.LastModified = ""
	aj, _ := json.Marshal(ac)
	bj, _ := json.Marshal(bc)
	return bytes.Equal(aj, bj)
}

// Update deep-merges a partial record into the stored one. Sub-objects merge
// field by field, so a partial update never clobbers sibling fields.
// lastModified is stamped regardless of what the caller supplied. When the
// merge touches category or variants, sidecars are re-projected.
func (s *Store) Update(id string, updates map[string]any) (*types.IconRecord, error) {
	data, err := s.fs.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no metadata record for %q", id)
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read record %q", id)
	}

	var current map[string]any
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "corrupt record %q", id)
	}

	merged := deepMerge(current, updates)
	meta, _ := merged["metadata"].(map[string]any)
	if meta == nil {
		meta = map[string]any{}
		merged["metadata"] = meta
	}
	meta["lastModified"] = s.today()

	rec, err := recordFromMap(merged)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "merged record %q is invalid", id)
	}
	if err := s.write(id, rec); err != nil {
		return nil, err
	}

	_, touchedCategory := updates["category"]
	_, touchedVariants := updates["variants"]
	if touchedCategory || touchedVariants {
		if err := s.ProjectSidecars(rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Rename moves an icon to a new identity: every asset file whose name is
// prefixed with the old id is renamed first, then the record is rewritten
// under the new id, and only then is the old record deleted. A crash in the
// middle leaves duplicate-but-recoverable state, never data loss.
func (s *Store) Rename(oldID, newID, category string) error {
	log := logging.GetLogger("metadata")

	if !identity.IsKebabCase(newID) {
		return errors.Newf(errors.ErrInvalidIdentifier, "new id %q is not kebab-case", newID)
	}

	categoryDir := assets.CategoryDir(s.layout, category)
	files, err := assets.IconFiles(s.fs, categoryDir, oldID)
	if err != nil || len(files) == 0 {
		return errors.Newf(errors.ErrNotFound, "no asset files for %q under category %q", oldID, category)
	}

	for _, name := range files {
		newName := newID + strings.TrimPrefix(name, oldID)
		oldPath := filepath.Join(categoryDir, name)
		newPath := filepath.Join(categoryDir, newName)
		if err := s.fs.Rename(oldPath, newPath); err != nil {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to rename %s", name)
		}
		log.Debug().Str("from", name).Str("to", newName).Msg("Renamed asset file")
	}

	rec, err := s.Get(oldID)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			// Assets without a record: nothing more to move.
			return nil
		}
		return err
	}

	rec.ID = newID
	for key, info := range rec.Variants {
		info.SVGPath = strings.Replace(info.SVGPath, oldID+"-", newID+"-", 1)
		if info.ComponentName != "" {
			info.ComponentName = strings.Replace(info.ComponentName, identity.Pascal(oldID), identity.Pascal(newID), 1)
		}
		rec.Variants[key] = info
	}
	rec.Metadata.LastModified = s.today()

	// New state must be fully written before the old identity goes away.
	if err := s.write(newID, rec); err != nil {
		return err
	}
	if err := s.fs.Remove(s.recordPath(oldID)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove old record %q", oldID)
	}
	return nil
}

// Delete removes every asset file for id under category plus the record.
// NOT_FOUND only when neither assets nor a record exist.
func (s *Store) Delete(id, category string) error {
	categoryDir := assets.CategoryDir(s.layout, category)
	files, _ := assets.IconFiles(s.fs, categoryDir, id)
	for _, name := range files {
		if err := s.fs.Remove(filepath.Join(categoryDir, name)); err != nil {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove %s", name)
		}
	}

	recordExisted := true
	if err := s.fs.Remove(s.recordPath(id)); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove record %q", id)
		}
		recordExisted = false
	}

	if len(files) == 0 && !recordExisted {
		return errors.Newf(errors.ErrNotFound, "no assets or record for %q under category %q", id, category)
	}
	return nil
}

// List returns all records, optionally filtered to one category. Order is
// by id, ascending.
func (s *Store) List(category string) ([]*types.IconRecord, error) {
	entries, err := s.fs.ReadDir(s.layout.MetadataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to list metadata directory")
	}

	var records []*types.IconRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := s.Get(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		if category != "" && rec.Category != category {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *Store) write(id string, rec *types.IconRecord) error {
	if err := s.fs.MkdirAll(s.layout.MetadataDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create metadata directory")
	}
	data, err := json.MarshalIndent(rec, "", "\t")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode record %q", id)
	}
	if err := s.fs.WriteFile(s.recordPath(id), append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write record %q", id)
	}
	return nil
}

// deepMerge merges src into dst recursively: sub-maps merge field by field,
// everything else is replaced.
func deepMerge(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				dst[k] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

func recordFromMap(m map[string]any) (*types.IconRecord, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var rec types.IconRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// exists is a small helper for sidecar projection.
func (s *Store) exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}
