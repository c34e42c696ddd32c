package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// PathsConfig holds the directory layout of the icon library, all relative
// to the library root.
type PathsConfig struct {
	IconsDir      string `koanf:"icons_dir"`
	MetadataDir   string `koanf:"metadata_dir"`
	CategoriesDir string `koanf:"categories_dir"`
	OutputDir     string `koanf:"output_dir"`
	Schema        string `koanf:"schema"`
}

// BuildConfig holds build-time behavior knobs.
type BuildConfig struct {
	Layout         string `koanf:"layout"`
	SkipCollisions bool   `koanf:"skip_collisions"`
	Author         string `koanf:"author"`
}

// Config is the resolved iconforge configuration.
type Config struct {
	Paths PathsConfig `koanf:"paths"`
	Build BuildConfig `koanf:"build"`
}

// Load builds the configuration for the library at root:
// embedded defaults, then iconforge.toml / .iconforge.toml at the root,
// then ICONFORGE_* environment variables.
func Load(root string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load root config if it exists
	for _, filename := range []string{".iconforge.toml", "iconforge.toml"} {
		path := filepath.Join(root, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load root config from %s: %w", path, err)
			}
			break
		}
	}

	// 3. Load env vars
	if err := k.Load(env.Provider("ICONFORGE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "ICONFORGE_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting a root
// config file or the environment. The embedded defaults are compiled in, so
// a load failure here is a programming error.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Layout is the set of absolute directories derived from a Config for one
// library root.
type Layout struct {
	Root          string
	IconsDir      string
	MetadataDir   string
	CategoriesDir string
	OutputDir     string
	SchemaPath    string
}

// Resolve joins the configured relative paths onto the library root.
func (c *Config) Resolve(root string) Layout {
	return Layout{
		Root:          root,
		IconsDir:      filepath.Join(root, c.Paths.IconsDir),
		MetadataDir:   filepath.Join(root, c.Paths.MetadataDir),
		CategoriesDir: filepath.Join(root, c.Paths.CategoriesDir),
		OutputDir:     filepath.Join(root, c.Paths.OutputDir),
		SchemaPath:    filepath.Join(root, c.Paths.Schema),
	}
}
