package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the optional per-project config read from the input root.
const ProjectFile = ".archmirror.toml"

// Config represents the top-level application configuration.
type Config struct {
	Run       RunConfig       `toml:"run"`
	Cache     CacheConfig     `toml:"cache"`
	Languages LanguagesConfig `toml:"languages"`
	Report    ReportConfig    `toml:"report"`
}

// RunConfig holds settings for a mirror pass.
type RunConfig struct {
	// Concurrency caps simultaneous file units; 0 means GOMAXPROCS.
	Concurrency          int    `toml:"concurrency"`
	SummaryOrder         string `toml:"summary_order"`
	TolerateSyntaxErrors bool   `toml:"tolerate_syntax_errors"`
	// OutputParent overrides where the output root is created.
	OutputParent string `toml:"output_parent"`
}

// CacheConfig holds settings for the segment cache. An empty Path disables it.
type CacheConfig struct {
	Path string `toml:"path"`
}

// LanguagesConfig extends or overrides the extension dispatch table.
// Keys are extensions (".pyw"), values are language ids ("python").
type LanguagesConfig struct {
	Extensions map[string]string `toml:"extensions"`
}

// ReportConfig selects the format of the end-of-run report.
type ReportConfig struct {
	Format string `toml:"format"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			SummaryOrder: "completion",
		},
		Report: ReportConfig{
			Format: "markdown",
		},
	}
}

// Load reads the TOML file at path on top of DefaultConfig. A missing file
// is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge decodes the TOML file at path over cfg in place. Keys absent from
// the file keep their current values. A missing file leaves cfg untouched.
func Merge(cfg *Config, path string) error {
	return decodeInto(path, cfg)
}

func decodeInto(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
