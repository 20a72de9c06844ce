package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/leonardomso/srclist/internal/config"
	"github.com/leonardomso/srclist/internal/scanner"
)

// LoadedConfig wraps a loaded configuration and provides helper methods
// for getting effective values that respect CLI overrides.
type LoadedConfig struct {
	cfg      *config.Config
	dir      string // Directory the file was found in, "" if none
	noConfig bool
}

// LoadConfig loads the configuration file unless noConfig is true.
// An explicit path must exist; otherwise only projectRoot is searched, so a
// file in a parent directory never changes the listing.
// Returns an error if the config file exists but is invalid.
func LoadConfig(noConfig bool, explicit, projectRoot string) (*LoadedConfig, error) {
	if noConfig {
		return &LoadedConfig{cfg: &config.Config{}, noConfig: true}, nil
	}

	var (
		cfg *config.Config
		dir string
		err error
	)
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg, err = config.LoadFrom(explicit)
		dir = filepath.Dir(explicit)
	} else if path := config.Locate(projectRoot); path != "" {
		cfg, err = config.LoadFrom(path)
		dir = projectRoot
	} else {
		cfg = &config.Config{}
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &LoadedConfig{cfg: cfg, dir: dir}, nil
}

// Config returns the underlying config for direct access.
func (lc *LoadedConfig) Config() *config.Config {
	return lc.cfg
}

// Dir returns the directory the config file was loaded from, or "".
func (lc *LoadedConfig) Dir() string {
	return lc.dir
}

// GetSourceRoot returns the effective source root.
// CLI overrides config; a relative config path is resolved against projectRoot.
func (lc *LoadedConfig) GetSourceRoot(cliValue, projectRoot, defaultRoot string) string {
	if cliValue != "" {
		return cliValue // CLI explicitly set
	}
	if root := lc.cfg.SourceRoot(projectRoot); root != "" {
		return root
	}
	return defaultRoot
}

// GetExtensions returns the effective extensions.
// CLI extensions override config when the flag was given, even if its
// value equals the default. Otherwise config wins over the CLI default.
func (lc *LoadedConfig) GetExtensions(cliExts []string, cliSet bool) []string {
	if cliSet {
		return scanner.TypesToExtensions(cliExts)
	}
	if lc.cfg.HasExtensions() {
		return scanner.TypesToExtensions(lc.cfg.Source.Extensions)
	}
	if len(cliExts) == 0 {
		return []string{scanner.DefaultExtension}
	}
	return scanner.TypesToExtensions(cliExts)
}

// GetSkipHidden returns the effective skip-hidden setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetSkipHidden(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.Source.SkipHidden
}

// GetOutputFormat returns the effective output format.
// CLI overrides config if set.
func (lc *LoadedConfig) GetOutputFormat(cliValue string) string {
	if cliValue != "" {
		return cliValue // CLI explicitly set
	}
	return lc.cfg.Output.Format
}

// ScanFlags are the CLI values that shape a collection.
type ScanFlags struct {
	Source     string
	Extensions []string

	// ExtensionsSet is true when --ext was given on the command line.
	ExtensionsSet bool
	Include       []string
	Exclude       []string
	Regex         []string
	SkipHidden    bool
}

// BuildScanOptions creates scanner.ScanOptions from config and CLI values.
// Pattern lists are merged additively, config first.
func (lc *LoadedConfig) BuildScanOptions(flags ScanFlags, projectRoot, defaultRoot string) scanner.ScanOptions {
	return scanner.ScanOptions{
		Root:       lc.GetSourceRoot(flags.Source, projectRoot, defaultRoot),
		Extensions: lc.GetExtensions(flags.Extensions, flags.ExtensionsSet),
		Include:    slices.Concat(lc.cfg.Scan.Include, flags.Include),
		Exclude:    slices.Concat(lc.cfg.Scan.Exclude, flags.Exclude),
		Regex:      slices.Concat(lc.cfg.Scan.Regex, flags.Regex),
		SkipHidden: lc.GetSkipHidden(flags.SkipHidden),
	}
}
