package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// write creates a file under dir with parent directories as needed.
func write(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

// touch pins a file's mtime.
func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// builtinScanner builds the include scanner of a builtin compiler spec.
func builtinScanner(t *testing.T, name string) *IncludeScanner {
	t.Helper()
	spec, ok := builtinSystemSpecs[name]
	require.True(t, ok, "unknown builtin %q", name)
	require.NotEmpty(t, spec.uses)
	s, err := NewIncludeScanner(spec.uses, 512, spec.exts...)
	require.NoError(t, err)
	return s
}
