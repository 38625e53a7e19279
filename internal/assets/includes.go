package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/assetforge/internal/util/sets"
)

// IncludeScanner extracts include/import references from a source file's
// header bytes. Only the first window bytes are scanned, so includes declared
// deeper in a file are never detected; the bound keeps per-candidate cost
// fixed across arbitrarily large asset trees.
type IncludeScanner struct {
	pattern *regexp.Regexp
	window  int
	exts    []string
}

// NewIncludeScanner compiles pattern (implicitly multiline-anchored) and
// validates that it captures a named group "file". An empty window falls back
// to 512 bytes. References without an extension (`@import "lib";`) are
// resolved against the claimed exts, so "lib" finds lib.scss on disk.
func NewIncludeScanner(pattern string, window int, exts ...string) (*IncludeScanner, error) {
	if !strings.HasPrefix(pattern, "(?m)") {
		pattern = "(?m)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile include pattern: %w", err)
	}
	if re.SubexpIndex("file") < 0 {
		return nil, fmt.Errorf("include pattern %q has no named group \"file\"", pattern)
	}
	if window <= 0 {
		window = 512
	}
	return &IncludeScanner{pattern: re, window: window, exts: exts}, nil
}

// IncludesFor returns the include targets referenced by directory/path,
// resolved relative to path's own directory. A nil scanner and a missing or
// unreadable source both yield the empty set: a reference that cannot be
// read contributes nothing to staleness.
func (s *IncludeScanner) IncludesFor(directory, path string) sets.Set[string] {
	out := sets.New[string]()
	if s == nil {
		return out
	}

	f, err := os.Open(filepath.Join(directory, path))
	if err != nil {
		return out
	}
	defer f.Close()

	buf := make([]byte, s.window)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return out
	}

	idx := s.pattern.SubexpIndex("file")
	for _, m := range s.pattern.FindAllSubmatch(buf[:n], -1) {
		ref := string(m[idx])
		if ref == "" {
			continue
		}
		out.Add(s.resolve(directory, filepath.Join(filepath.Dir(path), ref)))
	}
	return out
}

// resolve maps a reference to the file it denotes on disk: the exact path if
// it exists, otherwise the first claimed extension that does. An unresolvable
// reference is returned as-is; it contributes nothing to staleness later.
func (s *IncludeScanner) resolve(directory, ref string) string {
	full := filepath.Join(directory, ref)
	if _, err := os.Stat(full); err == nil {
		return ref
	}
	for _, ext := range s.exts {
		if _, err := os.Stat(full + ext); err == nil {
			return ref + ext
		}
	}
	return ref
}

// notExist reports whether err means the file is absent.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
