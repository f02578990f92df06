// Package config loads the per-project typeweaver configuration.
//
// The project file lives at <root>/.typeweaver/config.toml. Every key has a
// default, so a project without the file behaves as if `typeweaver init` had
// just written it. Environment variables override file values:
// TYPEWEAVER_RAILS_DATABASE overrides rails.database.
package config

import (
	"path/filepath"
	"strings"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/producer"
)

const (
	// Dir is the project-local directory holding config and generated types
	Dir = ".typeweaver"

	// FileName is the config file inside Dir
	FileName = "config.toml"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "TYPEWEAVER"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Config represents a project's typeweaver configuration
type Config struct {
	Version           string      `mapstructure:"version" toml:"version"`
	OutputFormats     []string    `mapstructure:"output_formats" toml:"output_formats"`
	GenerationSources []string    `mapstructure:"generation_sources" toml:"generation_sources"`
	ExcludePaths      []string    `mapstructure:"exclude_paths" toml:"exclude_paths"`
	TypesDir          string      `mapstructure:"types_dir" toml:"types_dir"` // relative to the project root
	Rails             RailsConfig `mapstructure:"rails" toml:"rails"`
}

// RailsConfig configures the live schema reflector
type RailsConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`

	// Components lists the Rails layers to type. Only "models" produces
	// declarations; routes and controllers are accepted and ignored.
	Components []string `mapstructure:"components" toml:"components"`

	Database string `mapstructure:"database" toml:"database"` // SQLite file, relative to the project root
}

// Path returns the config file location for root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Sources returns the configured producers in order, without duplicates.
// Rails is dropped when rails.enabled is false.
func (c *Config) Sources() ([]producer.Kind, error) {
	var kinds []producer.Kind
	seen := make(map[producer.Kind]bool)
	for _, s := range c.GenerationSources {
		k, err := ParseSource(s)
		if err != nil {
			return nil, err
		}
		if seen[k] || (k == producer.Rails && !c.Rails.Enabled) {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Formats returns the configured output formats in order, without duplicates.
func (c *Config) Formats() ([]ir.Format, error) {
	var formats []ir.Format
	seen := make(map[ir.Format]bool)
	for _, s := range c.OutputFormats {
		f, err := ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// OutputDir returns the directory format f is written to.
func (c *Config) OutputDir(root string, f ir.Format) string {
	return filepath.Join(resolve(root, c.TypesDir), f.String())
}

// DatabasePath returns the absolute location of rails.database.
func (c *Config) DatabasePath(root string) string {
	return resolve(root, c.Database())
}

// Database returns rails.database as configured.
func (c *Config) Database() string {
	return c.Rails.Database
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ParseSource maps a generation source selector to its producer kind.
func ParseSource(s string) (producer.Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range producer.Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, errors.WithHint(
		errors.Wrapf(errors.ErrUnknownProducer, "%q", s),
		"supported sources: static, yard, rails")
}

// ParseFormat maps an output format selector to its format.
func ParseFormat(s string) (ir.Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range ir.Formats() {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, errors.WithHint(
		errors.Wrapf(errors.ErrUnknownFormat, "%q", s),
		"supported formats: rbi, rbs")
}
