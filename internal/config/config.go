// Package config handles loading configuration from .srclistrc files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is the default configuration file name.
const DefaultConfigFileName = ".srclistrc.yaml"

// ConfigFileNames are the names looked up in each directory, in order.
var ConfigFileNames = []string{
	DefaultConfigFileName,
	".srclistrc.yml",
	".srclistrc.toml",
}

// Config represents the complete configuration structure.
type Config struct {
	Source SourceConfig `yaml:"source" toml:"source"`
	Scan   ScanConfig   `yaml:"scan"   toml:"scan"`
	Output OutputConfig `yaml:"output" toml:"output"`
}

// SourceConfig describes where sources live and what they look like.
type SourceConfig struct {
	// Path is the source root. Relative paths are resolved against the project root.
	Path string `yaml:"path" toml:"path"`

	// Extensions to collect, with leading dot (e.g., ".vala").
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// SkipHidden stops the walk from entering dot-directories.
	SkipHidden bool `yaml:"skip_hidden" toml:"skip_hidden"`
}

// ScanConfig holds include/exclude rules over root-relative paths.
type ScanConfig struct {
	// Include globs; when set, only matching paths are listed.
	// Example: "ui/**"
	Include []string `yaml:"include" toml:"include"`

	// Exclude globs.
	// Example: "**/tests/**"
	Exclude []string `yaml:"exclude" toml:"exclude"`

	// Regex patterns of paths to drop.
	// Example: "_test\\.vala$"
	Regex []string `yaml:"regex" toml:"regex"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	// Format for stdout: text, json, yaml, xml, markdown, html.
	Format string `yaml:"format" toml:"format"`
}

// Load reads configuration from the current directory.
// Returns an empty config if no file exists (not an error).
func Load() (*Config, error) {
	return FindIn(".")
}

// FindIn loads the first config file found in dir, without looking at parents.
func FindIn(dir string) (*Config, error) {
	if path := Locate(dir); path != "" {
		return LoadFrom(path)
	}
	return &Config{}, nil
}

// Locate returns the path of the first config file present in dir, or "".
func Locate(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFrom reads configuration from a specific path.
// The format is chosen by extension: .toml is TOML, anything else YAML.
// Returns an empty config if the file doesn't exist (not an error).
// Returns an error only if the file exists but cannot be parsed.
func LoadFrom(path string) (*Config, error) {
	// Start with empty config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		// File not found is not an error - just return empty config
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// FindAndLoad searches for a config file starting from the given directory
// and walking up to parent directories until it finds one or reaches root.
// It also returns the directory the file was found in ("" if none).
func FindAndLoad(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", err
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				cfg, err := LoadFrom(configPath)
				if err != nil {
					return nil, "", err
				}
				return cfg, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return &Config{}, "", nil
		}
		dir = parent
	}
}

// IsEmpty returns true if the config sets nothing.
func (c *Config) IsEmpty() bool {
	return c.Source.Path == "" &&
		len(c.Source.Extensions) == 0 &&
		!c.Source.SkipHidden &&
		len(c.Scan.Include) == 0 &&
		len(c.Scan.Exclude) == 0 &&
		len(c.Scan.Regex) == 0 &&
		c.Output.Format == ""
}

// HasExtensions returns true if extensions are configured.
func (c *Config) HasExtensions() bool {
	return len(c.Source.Extensions) > 0
}

// SourceRoot returns the configured source root resolved against base,
// or "" when no path is configured.
func (c *Config) SourceRoot(base string) string {
	if c.Source.Path == "" {
		return ""
	}
	if filepath.IsAbs(c.Source.Path) {
		return filepath.Clean(c.Source.Path)
	}
	return filepath.Join(base, filepath.FromSlash(c.Source.Path))
}

// Validate checks extensions and compiles every pattern.
func (c *Config) Validate() error {
	for _, ext := range c.Source.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("source.extensions: empty extension")
		}
	}

	for _, p := range slices.Concat(c.Scan.Include, c.Scan.Exclude) {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
	}

	for _, p := range c.Scan.Regex {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
	}

	return nil
}

// Merge combines another config into this one.
// Lists are appended; scalar values from other win when set.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Source.Path != "" {
		c.Source.Path = other.Source.Path
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	c.Source.SkipHidden = c.Source.SkipHidden || other.Source.SkipHidden
	c.Source.Extensions = append(c.Source.Extensions, other.Source.Extensions...)
	c.Scan.Include = append(c.Scan.Include, other.Scan.Include...)
	c.Scan.Exclude = append(c.Scan.Exclude, other.Scan.Exclude...)
	c.Scan.Regex = append(c.Scan.Regex, other.Scan.Regex...)
}
