package config

import (
	"path/filepath"
	"runtime"
	"time"
)

// Pipeline limit defaults. The depth bound and scan window mirror the
// long-standing include-resolution contract: six levels of transitive
// includes, detected within the first 512 bytes of each source.
const (
	DefaultIncludeDepth   = 6
	DefaultScanWindow     = 512
	DefaultProcessTimeout = 30 * time.Second
	DefaultMaxCompilers   = 4
)

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = "./output"
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(c.Output.Directory, ".cache")
	}
	if len(c.Writers) == 0 {
		c.Writers = []string{"html", "xml", "template", "sass", "scss", "less", "coffee", "iced", "markdown"}
	}

	if c.Limits.IncludeDepth <= 0 {
		c.Limits.IncludeDepth = DefaultIncludeDepth
	}
	if c.Limits.ScanWindow <= 0 {
		c.Limits.ScanWindow = DefaultScanWindow
	}
	if c.Limits.ProcessTimeout <= 0 {
		c.Limits.ProcessTimeout = Duration(DefaultProcessTimeout)
	}
	if c.Limits.MaxCompilers <= 0 {
		c.Limits.MaxCompilers = DefaultMaxCompilers
	}
	if c.Limits.Workers <= 0 {
		c.Limits.Workers = runtime.NumCPU()
	}
}
