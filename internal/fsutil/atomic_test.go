package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicCreate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "style.css")

	outcome, err := WriteFileAtomic(dest, []byte("body{}"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestWriteFileAtomicUpdate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	outcome, err := WriteFileAtomic(dest, []byte("new"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileAtomicIdenticalPreservesMtime(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(dest, []byte("same"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(dest, old, old))

	outcome, err := WriteFileAtomic(dest, []byte("same"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, Identical, outcome)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.WithinDuration(t, old, info.ModTime(), time.Second)
}

func TestWriteFileAtomicNoStagingLeftovers(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "style.css")

	_, err := WriteFileAtomic(dest, []byte("x"), 0o644)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "style.css", entries[0].Name())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "create", Created.String())
	assert.Equal(t, "update", Updated.String())
	assert.Equal(t, "identical", Identical.String())
}
