package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
)

// catWriter builds a system writer whose "compiler" is cat: the artifact is
// the source content, which keeps tests independent of real compilers.
func catWriter(t *testing.T, events EventSink, cacheDir string) *systemWriter {
	t.Helper()
	return newSystemWriter(SystemWriterConfig{
		Name:       "scss",
		Extensions: []string{".scss"},
		Target:     ".css",
		Command:    []string{"cat"},
		Scanner:    builtinScanner(t, "scss"),
		CacheDir:   cacheDir,
	}, events, nil)
}

func TestSystemWriterCompiles(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	cache := t.TempDir()
	write(t, dir, "main.scss", "body { color: red; }")

	events := NewRunLog()
	w := catWriter(t, events, cache)

	require.NoError(t, w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(out, "main.scss"), WriteOptions{}))

	// Destination carries the swapped target extension.
	data, err := os.ReadFile(filepath.Join(out, "main.css"))
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", string(data))
	assert.Equal(t, map[EventKind]int{EventCreate: 1}, events.Counts())

	// Staging files are removed on every exit path.
	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSystemWriterArtifactPermissions(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	write(t, dir, "main.scss", "body{}")

	w := catWriter(t, nil, t.TempDir())
	require.NoError(t, w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(out, "main.scss"), WriteOptions{}))

	info, err := os.Stat(filepath.Join(out, "main.css"))
	require.NoError(t, err)
	// Group- and world-readable like the pipeline's other outputs.
	assert.Equal(t, os.FileMode(0o044), info.Mode().Perm()&0o044)
}

func TestSystemWriterSkipsFresh(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-2 * time.Hour)

	src := write(t, dir, "lib.scss", "body{}")
	dest := write(t, dir, "out/lib.css", "compiled")
	touch(t, src, base)
	touch(t, dest, base.Add(time.Hour))

	events := NewRunLog()
	w := catWriter(t, events, t.TempDir())

	require.NoError(t, w.Write(context.Background(), SourceFile{dir, "lib.scss"}, filepath.Join(dir, "out/lib.scss"), WriteOptions{}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "compiled", string(data))
	assert.Equal(t, map[EventKind]int{EventSkip: 1}, events.Counts())
}

func TestSystemWriterTransitiveStaleness(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-2 * time.Hour)

	// main.scss unchanged, but the partial it imports is newer than the
	// destination: the master file must be recompiled.
	main := write(t, dir, "main.scss", `@import "lib";`)
	lib := write(t, dir, "lib.scss", "body{}")
	dest := write(t, dir, "out/main.css", "stale")
	touch(t, main, base)
	touch(t, dest, base.Add(30*time.Minute))
	touch(t, lib, base.Add(time.Hour))

	events := NewRunLog()
	w := catWriter(t, events, t.TempDir())

	require.NoError(t, w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(dir, "out/main.scss"), WriteOptions{}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, `@import "lib";`, string(data))
	assert.Equal(t, map[EventKind]int{EventUpdate: 1}, events.Counts())
}

func TestSystemWriterMissingBinaryDeletesDest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "main.scss", "body{}")
	dest := write(t, dir, "out/main.css", "stale artifact")

	w := newSystemWriter(SystemWriterConfig{
		Name:       "scss",
		Extensions: []string{".scss"},
		Target:     ".css",
		Command:    []string{"assetforge-no-such-compiler"},
		CacheDir:   t.TempDir(),
	}, nil, nil)

	err := w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(dir, "out/main.scss"), WriteOptions{Force: true})
	require.Error(t, err)
	assert.True(t, aerrors.IsCategory(err, aerrors.CategoryCompiler))

	// A stale artifact must never survive a failed compile.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSystemWriterCompilerStderrInError(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "main.scss", "body{}")

	w := newSystemWriter(SystemWriterConfig{
		Name:       "scss",
		Extensions: []string{".scss"},
		Target:     ".css",
		Command:    []string{"sh", "-c", `echo "syntax error" >&2; exit 1`},
		CacheDir:   t.TempDir(),
	}, nil, nil)

	err := w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(t.TempDir(), "main.scss"), WriteOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestSystemWriterTimeout(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "main.scss", "body{}")

	w := newSystemWriter(SystemWriterConfig{
		Name:       "scss",
		Extensions: []string{".scss"},
		Target:     ".css",
		Command:    []string{"sh", "-c", "sleep 5"},
		CacheDir:   t.TempDir(),
		Timeout:    100 * time.Millisecond,
	}, nil, nil)

	start := time.Now()
	err := w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(t.TempDir(), "main.scss"), WriteOptions{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestSystemWriterDryRun(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	write(t, dir, "main.scss", "body{}")

	events := NewRunLog()
	w := catWriter(t, events, t.TempDir())

	require.NoError(t, w.Write(context.Background(), SourceFile{dir, "main.scss"}, filepath.Join(out, "main.scss"), WriteOptions{DryRun: true}))

	_, err := os.Stat(filepath.Join(out, "main.css"))
	assert.True(t, os.IsNotExist(err), "dryrun must not persist the artifact")
	assert.Equal(t, map[EventKind]int{EventCreate: 1}, events.Counts())
}
