// Package config loads the branchstub configuration from a YAML file
// and supplies defaults for every setting.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the root directory.
const FileName = ".branchstub.yaml"

// Supported values for Config.Language.
const (
	LanguageAuto       = "auto"
	LanguageGo         = "go"
	LanguageTypeScript = "typescript"
)

// Config holds every setting of a generate run.
type Config struct {
	// Root is the directory scanned for source files.
	Root string `yaml:"root"`

	// Language selects a frontend: "auto" detects per file.
	Language string `yaml:"language"`

	// IncludePrivate renders stubs for private functions.
	IncludePrivate bool `yaml:"include_private"`

	// IncludeProtected renders stubs for protected functions.
	IncludeProtected bool `yaml:"include_protected"`

	// PendingBody is the text placed inside every pending test.
	PendingBody string `yaml:"pending_body"`

	// Verbose enables debug logging and sanitizer notices.
	Verbose bool `yaml:"verbose"`

	// Exclude lists glob patterns (relative to Root) of paths to skip.
	// A trailing "/**" matches a whole directory.
	Exclude []string `yaml:"exclude"`

	// SkipVendored skips dependency directories (see finder.VendorDirs).
	SkipVendored bool `yaml:"skip_vendored"`

	// Indent overrides the indentation unit of the stub dialect.
	Indent string `yaml:"indent"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		Language:     LanguageAuto,
		Exclude:      []string{"testdata/**", "node_modules/**"},
		SkipVendored: true,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Language {
	case LanguageAuto, LanguageGo, LanguageTypeScript:
	default:
		return fmt.Errorf("invalid language %q: must be %q, %q or %q",
			c.Language, LanguageAuto, LanguageGo, LanguageTypeScript)
	}
	if c.Root == "" {
		return errors.New("root directory must not be empty")
	}
	return nil
}

// Load reads the YAML file at path over DefaultConfig. Keys missing
// from the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir loads FileName from dir when present and falls back to
// DefaultConfig otherwise. The returned path is empty when no file was
// found.
func LoadDir(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Root = dir
		return cfg, "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(dir, cfg.Root)
	}
	return cfg, path, nil
}
