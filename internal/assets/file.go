package assets

import "path/filepath"

// SourceFile identifies one candidate source file by the root it was
// discovered under and its path relative to that root.
type SourceFile struct {
	Directory    string
	RelativePath string
}

// Ext returns the file extension including the leading dot.
func (f SourceFile) Ext() string {
	return filepath.Ext(f.RelativePath)
}

// Abs returns the full path of the source file.
func (f SourceFile) Abs() string {
	return filepath.Join(f.Directory, f.RelativePath)
}

// swapExt replaces path's extension with target. An empty target keeps the
// path unchanged.
func swapExt(path, target string) string {
	if target == "" {
		return path
	}
	return path[:len(path)-len(filepath.Ext(path))] + target
}
