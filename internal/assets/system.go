package assets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
	"git.home.luguber.info/inful/assetforge/internal/fsutil"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
)

// systemWriter delegates compilation to an external command. The source path
// is appended as the final argument and standard output is the compiled
// artifact. Concrete compilers (sass, lessc, coffee, user-defined) differ
// only in configuration.
type systemWriter struct {
	base
	target   string
	command  []string
	cacheDir string
	timeout  time.Duration
	procs    *semaphore.Weighted
}

// SystemWriterConfig bundles the configuration data of one external compiler.
type SystemWriterConfig struct {
	Name       string
	Extensions []string
	Target     string
	Command    []string
	Scanner    *IncludeScanner // nil when sources do not reference each other
	Depth      int
	CacheDir   string
	Timeout    time.Duration
	// Procs caps concurrently running compiler processes across all system
	// writers sharing it.
	Procs *semaphore.Weighted
}

func newSystemWriter(cfg SystemWriterConfig, events EventSink, rec metrics.Recorder) *systemWriter {
	procs := cfg.Procs
	if procs == nil {
		procs = semaphore.NewWeighted(1)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &systemWriter{
		base:     newBase(cfg.Name, cfg.Extensions, cfg.Scanner, cfg.Depth, events, rec),
		target:   cfg.Target,
		command:  cfg.Command,
		cacheDir: cfg.CacheDir,
		timeout:  timeout,
		procs:    procs,
	}
}

// Generate invokes the compiler without persisting; exposed to satisfy the
// Writer capability set.
func (w *systemWriter) Generate(src, _ string) ([]byte, error) {
	return w.invoke(context.Background(), src)
}

// Write overrides the shared flow entirely: stale destinations are rebuilt
// by the external compiler, the artifact is staged in the cache directory
// with adjusted permissions, and persisted through the shared atomic-write
// primitive. A failed invocation removes any existing destination so a
// stale artifact never survives under a fresh-looking timestamp.
func (w *systemWriter) Write(ctx context.Context, file SourceFile, dest string, opts WriteOptions) error {
	src := file.Abs()
	dest = swapExt(dest, w.target)

	if !opts.Force {
		modified, err := w.Modified(file, dest)
		if err != nil {
			return err
		}
		if !modified {
			w.emit(EventSkip, dest)
			return nil
		}
	}

	if err := w.procs.Acquire(ctx, 1); err != nil {
		return err
	}
	defer w.procs.Release(1)

	start := time.Now()
	out, err := w.invoke(ctx, src)
	w.rec.ObserveCompileDuration(w.name, time.Since(start), err == nil)
	if err != nil {
		if _, statErr := os.Stat(dest); statErr == nil {
			_ = os.Remove(dest)
		}
		return aerrors.CompilerFailed(strings.Join(w.command, " "), err).
			WithContext("source", src)
	}

	if opts.DryRun {
		if _, err := os.Stat(dest); err == nil {
			w.emit(EventUpdate, dest)
		} else {
			w.emit(EventCreate, dest)
		}
		return nil
	}
	return w.stage(out, dest)
}

// stage writes the artifact to a temporary file in the cache directory,
// makes it group- and world-readable like the pipeline's other outputs, and
// persists it atomically. The temporary file is removed on every exit path.
func (w *systemWriter) stage(artifact []byte, dest string) error {
	if err := os.MkdirAll(w.cacheDir, 0o755); err != nil {
		return aerrors.FileSystemError("create cache directory", err)
	}
	tmp, err := os.CreateTemp(w.cacheDir, "assetforge-*")
	if err != nil {
		return aerrors.FileSystemError("create staging file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(artifact); err != nil {
		_ = tmp.Close()
		return aerrors.FileSystemError("write staging file", err)
	}
	if err := tmp.Chmod(outputPerm); err != nil {
		_ = tmp.Close()
		return aerrors.FileSystemError("chmod staging file", err)
	}
	if err := tmp.Close(); err != nil {
		return aerrors.FileSystemError("close staging file", err)
	}

	outcome, err := fsutil.PersistFile(tmpName, dest, outputPerm)
	if err != nil {
		return aerrors.FileSystemError("persist artifact", err)
	}
	switch outcome {
	case fsutil.Created:
		w.emit(EventCreate, dest)
	case fsutil.Updated:
		w.emit(EventUpdate, dest)
	case fsutil.Identical:
		w.emit(EventIdentical, dest)
	}
	return nil
}

func (w *systemWriter) invoke(ctx context.Context, src string) ([]byte, error) {
	cctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	args := make([]string, 0, len(w.command))
	args = append(args, w.command[1:]...)
	args = append(args, src)

	cmd := exec.CommandContext(cctx, w.command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
