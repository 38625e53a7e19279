// Package discovery walks source roots and yields candidate asset files as
// (relative path, directory) pairs. Ignore patterns and template names
// claimed by the templating engine are filtered out here, so the pipeline
// core only ever sees files it may write.
package discovery

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/assetforge/internal/assets"
	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
	"git.home.luguber.info/inful/assetforge/internal/logfields"
	"git.home.luguber.info/inful/assetforge/internal/util/sets"
)

// Root is one directory to discover assets under, with its ignore patterns.
type Root struct {
	Dir string
	// Ignore holds glob patterns matched against the relative path, each
	// path segment, and the base name.
	Ignore []string
}

// Files walks root and returns every non-ignored file. The exclude list
// names additional relative paths to drop (the templating engine's claimed
// templates).
func Files(root Root, exclude ...string) ([]assets.SourceFile, error) {
	excluded := sets.New(exclude...)
	var out []assets.SourceFile

	err := filepath.WalkDir(root.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root.Dir, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if ignored(rel, d.Name(), root.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(rel, d.Name(), root.Ignore) || excluded.Has(rel) {
			return nil
		}
		out = append(out, assets.SourceFile{Directory: root.Dir, RelativePath: rel})
		return nil
	})
	if err != nil {
		return nil, aerrors.DiscoveryFailed(root.Dir, err)
	}

	slog.Debug("Discovered assets", logfields.Directory(root.Dir), slog.Int("files", len(out)))
	return out, nil
}

// All discovers every root in order and concatenates the results.
func All(roots []Root, exclude ...string) ([]assets.SourceFile, error) {
	var out []assets.SourceFile
	for _, root := range roots {
		files, err := Files(root, exclude...)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// ignored reports whether a relative path matches any ignore pattern. A
// pattern matches the whole relative path, any single segment, or the base
// name; path separators are normalized so patterns behave the same on every
// platform.
func ignored(rel, base string, patterns []string) bool {
	slashRel := filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, slashRel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		for _, segment := range strings.Split(slashRel, "/") {
			if ok, _ := path.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
