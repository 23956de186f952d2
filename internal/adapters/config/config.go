package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/3-lines-studio/compgen/internal/adapters/env"
	"github.com/3-lines-studio/compgen/internal/adapters/fs"
	"github.com/3-lines-studio/compgen/internal/core"
)

const (
	DefaultFile     = "compgen.yaml"
	DefaultRegistry = ".nuxt/components.registry.json"
	DefaultBuildDir = ".nuxt"
)

type Config struct {
	Registry          string `yaml:"registry"`
	BuildDir          string `yaml:"buildDir"`
	ComponentIslands  bool   `yaml:"componentIslands"`
	ServerPlaceholder string `yaml:"serverPlaceholder"`
	WriteVirtual      bool   `yaml:"writeVirtual"`
	Validate          bool   `yaml:"validate"`
}

func Default() Config {
	return Config{
		Registry: DefaultRegistry,
		BuildDir: DefaultBuildDir,
		Validate: true,
	}
}

// Load layers defaults, the YAML file at path (skipped when missing) and
// environment overrides. Relative paths resolve against the file's directory.
func Load(fsys fs.FileSystem, path string) (Config, error) {
	return LoadOver(fsys, path, Default())
}

// LoadOver is Load with base in place of the package defaults.
func LoadOver(fsys fs.FileSystem, path string, base Config) (Config, error) {
	cfg := base

	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, iofs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	ApplyEnv(&cfg, env.Read())
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func ApplyEnv(cfg *Config, o env.Overrides) {
	if o.Registry != nil {
		cfg.Registry = *o.Registry
	}
	if o.BuildDir != nil {
		cfg.BuildDir = *o.BuildDir
	}
	if o.ComponentIslands != nil {
		cfg.ComponentIslands = *o.ComponentIslands
	}
	if o.ServerPlaceholder != nil {
		cfg.ServerPlaceholder = *o.ServerPlaceholder
	}
	if o.Dev {
		cfg.WriteVirtual = true
	}
}

func (cfg *Config) resolve(base string) {
	if cfg.Registry != "" && !filepath.IsAbs(cfg.Registry) {
		cfg.Registry = filepath.Join(base, cfg.Registry)
	}
	if cfg.BuildDir != "" && !filepath.IsAbs(cfg.BuildDir) {
		cfg.BuildDir = filepath.Join(base, cfg.BuildDir)
	}
}

func (cfg Config) BuildOptions() core.BuildOptions {
	return core.BuildOptions{
		BuildDir:              cfg.BuildDir,
		ComponentIslands:      cfg.ComponentIslands,
		ServerPlaceholderPath: cfg.ServerPlaceholder,
	}
}

var ErrConfigExists = errors.New("config file already exists")

// Create writes cfg to path, refusing to replace an existing file.
func Create(fsys fs.FileSystem, path string, cfg Config) error {
	if fsys.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
