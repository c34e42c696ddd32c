// Package testutil orchestrates test environments for pipeline and command
// tests: a full library layout over either a pure in-memory filesystem or a
// real temp directory.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/iconforge/pkg/config"
	"github.com/arthur-debert/iconforge/pkg/filesystem"
	"github.com/arthur-debert/iconforge/pkg/metadata"
	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FixedDate is the clock every test store runs on.
var FixedDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// TestEnvironment provides a complete library environment with all
// dependencies wired.
type TestEnvironment struct {
	Root   string
	Layout config.Layout
	FS     types.FS
	Store  *metadata.Store
	Schema *schema.Schema
	Type   EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/library"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "library")
		env.FS = filesystem.NewOS()
	}

	cfg := config.Default()
	env.Layout = cfg.Resolve(env.Root)
	env.Schema = schema.Default()

	for _, dir := range []string{
		env.Layout.IconsDir,
		env.Layout.MetadataDir,
		env.Layout.CategoriesDir,
		env.Layout.OutputDir,
	} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	env.Store = metadata.New(env.FS, env.Layout).
		WithCategories(env.Schema.Categories).
		WithClock(func() time.Time {
			return FixedDate
		})

	return env
}
