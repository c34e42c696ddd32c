package testutil

import (
	"path/filepath"
)

// StrokeSVG is a minimal stroke-based source usable by any stroke-policy
// variant.
const StrokeSVG = `<svg viewBox="0 0 24 24" fill="none"><path stroke="#000" stroke-width="2" d="M4 12h16"/></svg>`

// FillSVG is a minimal fill-based source.
const FillSVG = `<svg viewBox="0 0 24 24"><path fill="#000" d="M4 12h16"/></svg>`

// WriteSVG writes one source file under the icons directory, creating the
// parent as needed.
func (env *TestEnvironment) WriteSVG(dir, filename, content string) string {
	env.t.Helper()
	path := filepath.Join(env.Layout.IconsDir, dir, filename)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteFile writes an arbitrary file under the library root.
func (env *TestEnvironment) WriteFile(rel string, content []byte) string {
	env.t.Helper()
	path := filepath.Join(env.Root, rel)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := env.FS.WriteFile(path, content, 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile reads a file and fails the test on error.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether a path exists.
func (env *TestEnvironment) FileExists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil
}
