// Package config loads doomfront.jsonc, the per-directory settings file.
//
// The file is JSON with comments and trailing commas:
//
//	{
//		// fail on the first error instead of recovering
//		"strict": false,
//		"extensions": [".cvarinfo", ".txt"],
//		"workers": 4,
//		"exclude": ["build/*"],
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// FileName is the name LoadFrom looks for.
const FileName = "doomfront.jsonc"

// Config holds project settings. Command-line flags override them.
type Config struct {
	// Root is the directory the file was loaded from. Exclude patterns are
	// relative to it.
	Root string `json:"-"`

	Strict bool `json:"strict"`
	// Extensions lists file extensions, dot included, that hold CVARINFO in
	// addition to files named cvarinfo or cvarinfo.*.
	Extensions []string `json:"extensions"`
	// Workers bounds parallel parsing. Zero means one per CPU.
	Workers   int      `json:"workers"`
	Verbosity int      `json:"verbosity"`
	Exclude   []string `json:"exclude"`
}

func Default() *Config {
	return &Config{Root: ".", Extensions: []string{".cvarinfo"}}
}

// Load reads the settings file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// LoadFrom loads FileName from dir, or returns the defaults if dir has none.
func LoadFrom(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.Root = dir
		return cfg, nil
	}
	return cfg, err
}

// Parse decodes settings from data. Fields missing from data keep their
// default values.
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	for _, pat := range c.Exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
	}
	return nil
}

// Matches reports whether path names a CVARINFO file.
func (c *Config) Matches(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if base == "cvarinfo" || strings.HasPrefix(base, "cvarinfo.") {
		return true
	}
	ext := filepath.Ext(base)
	for _, e := range c.Extensions {
		if ext != "" && strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Excluded reports whether path matches one of the exclude patterns, either
// relative to Root or by its base name. Relative and absolute paths are
// compared after resolving both against the working directory.
func (c *Config) Excluded(path string) bool {
	rel, err := relToRoot(c.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

func relToRoot(root, path string) (string, error) {
	if filepath.IsAbs(root) != filepath.IsAbs(path) {
		var err error
		if root, err = filepath.Abs(root); err != nil {
			return "", err
		}
		if path, err = filepath.Abs(path); err != nil {
			return "", err
		}
	}
	return filepath.Rel(root, path)
}
