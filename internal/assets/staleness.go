package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/assetforge/internal/util/sets"
)

// StalenessChecker decides whether a destination is out of date relative to
// a source and everything the source transitively includes.
type StalenessChecker struct {
	scanner *IncludeScanner // nil means no include resolution
	depth   int
}

// NewStalenessChecker builds a checker. A zero or negative depth falls back
// to 6 levels of transitive includes.
func NewStalenessChecker(scanner *IncludeScanner, depth int) *StalenessChecker {
	if depth <= 0 {
		depth = 6
	}
	return &StalenessChecker{scanner: scanner, depth: depth}
}

// Modified reports whether dest must be regenerated: it is stale iff it does
// not exist or its mtime is older than the newest mtime across the source
// and all files reachable through includes within the depth bound.
//
// The scan is a bounded BFS: each iteration expands the current frontier one
// include level. Already-visited paths are not re-expanded, so cyclic include
// graphs terminate without redundant scanning. A referenced file that does
// not exist contributes nothing.
func (c *StalenessChecker) Modified(file SourceFile, dest string) (bool, error) {
	srcInfo, err := os.Stat(file.Abs())
	if err != nil {
		return false, fmt.Errorf("stat source %s: %w", file.Abs(), err)
	}
	maxTime := srcInfo.ModTime()

	visited := sets.New(file.RelativePath)
	frontier := sets.New(file.RelativePath)

	for i := 0; i < c.depth; i++ {
		next := sets.New[string]()
		for path := range frontier {
			for inc := range c.scanner.IncludesFor(file.Directory, path) {
				if visited.Has(inc) {
					continue
				}
				visited.Add(inc)
				next.Add(inc)
			}
		}
		if len(next) == 0 {
			break
		}
		maxTime = maxMtime(file.Directory, next, maxTime)
		frontier = next
	}

	destInfo, err := os.Stat(dest)
	if err != nil {
		if notExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat destination %s: %w", dest, err)
	}
	return maxTime.After(destInfo.ModTime()), nil
}

func maxMtime(directory string, paths sets.Set[string], current time.Time) time.Time {
	for path := range paths {
		info, err := os.Stat(filepath.Join(directory, path))
		if err != nil {
			continue
		}
		if info.ModTime().After(current) {
			current = info.ModTime()
		}
	}
	return current
}
