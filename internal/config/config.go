// Package config loads and validates the assetforge configuration: source
// roots, output location, the writer enable list, and pipeline limits.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
)

// Config represents the application configuration
type Config struct {
	// Theme is the theme root; template sources live here and are rendered,
	// not copied.
	Theme string `yaml:"theme"`
	// Static lists additional source roots whose files are copied or
	// compiled into the output tree.
	Static []string `yaml:"static,omitempty"`
	Output OutputConfig `yaml:"output"`
	// CacheDir holds compiler staging files.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// ThemeIgnore and StaticIgnore are glob patterns matched against
	// relative paths during discovery.
	ThemeIgnore  []string `yaml:"theme_ignore,omitempty"`
	StaticIgnore []string `yaml:"static_ignore,omitempty"`

	// Writers names the builtin writer specs to activate (e.g. "scss",
	// "less"). Extensions without an active writer fall back to plain copy.
	Writers []string `yaml:"writers,omitempty"`
	// CustomWriters declares additional external compilers.
	CustomWriters []WriterSpec `yaml:"custom_writers,omitempty"`

	Limits Limits `yaml:"limits,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// WriterSpec declares an external compiler as configuration data: which
// extensions it claims, what it produces, how to invoke it, and how its
// sources reference each other.
type WriterSpec struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Target     string   `yaml:"target"`
	Command    []string `yaml:"command"`
	// Uses is a multiline-anchored regexp with a named group "file"
	// extracting include targets from a source's header bytes. Empty means
	// the writer's sources do not reference each other.
	Uses string `yaml:"uses,omitempty"`
}

// Limits bounds pipeline resource use.
type Limits struct {
	// IncludeDepth bounds the transitive include scan.
	IncludeDepth int `yaml:"include_depth,omitempty"`
	// ScanWindow is how many leading bytes of a source are scanned for
	// includes. Includes declared beyond the window are not detected.
	ScanWindow int `yaml:"scan_window,omitempty"`
	// ProcessTimeout bounds a single compiler invocation.
	ProcessTimeout Duration `yaml:"process_timeout,omitempty"`
	// MaxCompilers caps concurrently running compiler processes.
	MaxCompilers int `yaml:"max_compilers,omitempty"`
	// Workers caps concurrently processed buckets.
	Workers int `yaml:"workers,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, aerrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
