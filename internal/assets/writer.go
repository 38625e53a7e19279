package assets

import (
	"context"
	"os"

	"git.home.luguber.info/inful/assetforge/internal/fsutil"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
	"git.home.luguber.info/inful/assetforge/internal/util/sets"
)

// Output artifacts are group- and world-readable like everything else the
// pipeline produces.
const outputPerm os.FileMode = 0o644

// WriteOptions carries the per-run flags every writer honors.
type WriteOptions struct {
	// Force bypasses the staleness check and always regenerates.
	Force bool
	// DryRun suppresses persistence while still computing staleness and
	// emitting events, so reporting stays accurate without touching the
	// output tree.
	DryRun bool
}

// Writer turns one source file into one output file for a set of claimed
// extensions. Implementations are safe for concurrent use across buckets:
// they hold no per-file mutable state.
type Writer interface {
	// Name identifies the writer in logs, events, and metrics.
	Name() string
	// Extensions lists the source extensions this writer claims.
	Extensions() []string
	// Filter removes from files every path that is included by another
	// path in the set; such files are compiled in, never written standalone.
	Filter(files sets.Set[string], directory string) sets.Set[string]
	// IncludesFor returns the include targets of directory/path, resolved
	// relative to path's own directory. Writers without an include pattern
	// return the empty set.
	IncludesFor(directory, path string) sets.Set[string]
	// Modified reports whether dest is stale relative to file and its
	// transitive includes.
	Modified(file SourceFile, dest string) (bool, error)
	// Generate produces the raw output content for file.
	Generate(src, dest string) ([]byte, error)
	// Write performs the full skip-or-produce decision for one file.
	Write(ctx context.Context, file SourceFile, dest string, opts WriteOptions) error
	// Shutdown releases writer-held resources; invoked once after the
	// writer's buckets are exhausted.
	Shutdown()
}

// base carries the behavior shared by all writer variants: include
// resolution, transitive staleness, filtering, and event emission.
type base struct {
	name    string
	exts    []string
	scanner *IncludeScanner
	checker *StalenessChecker
	events  EventSink
	rec     metrics.Recorder
}

func newBase(name string, exts []string, scanner *IncludeScanner, depth int, events EventSink, rec metrics.Recorder) base {
	if events == nil {
		events = discardSink{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return base{
		name:    name,
		exts:    exts,
		scanner: scanner,
		checker: NewStalenessChecker(scanner, depth),
		events:  events,
		rec:     rec,
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Extensions() []string { return b.exts }

func (b *base) Filter(files sets.Set[string], directory string) sets.Set[string] {
	if b.scanner == nil {
		return files
	}
	included := sets.New[string]()
	for path := range files {
		included = included.Union(b.scanner.IncludesFor(directory, path))
	}
	return files.Difference(included)
}

func (b *base) IncludesFor(directory, path string) sets.Set[string] {
	return b.scanner.IncludesFor(directory, path)
}

func (b *base) Modified(file SourceFile, dest string) (bool, error) {
	return b.checker.Modified(file, dest)
}

func (b *base) Shutdown() {}

func (b *base) emit(kind EventKind, path string) {
	b.events.Record(Event{Kind: kind, Path: path})
	b.rec.IncWriteOutcome(b.name, metrics.OutcomeLabel(kind))
}

// writeWith runs the shared skip-or-produce flow with the variant's generate
// function. Used by every variant except the external-process writer, which
// overrides the whole flow.
func (b *base) writeWith(file SourceFile, dest string, opts WriteOptions, generate func(src, dest string) ([]byte, error)) error {
	if !opts.Force {
		modified, err := b.Modified(file, dest)
		if err != nil {
			return err
		}
		if !modified {
			b.emit(EventSkip, dest)
			return nil
		}
	}

	data, err := generate(file.Abs(), dest)
	if err != nil {
		return err
	}
	return b.persist(dest, data, opts)
}

// persist writes data to dest atomically, or only reports what would happen
// under dryrun.
func (b *base) persist(dest string, data []byte, opts WriteOptions) error {
	if opts.DryRun {
		if _, err := os.Stat(dest); err == nil {
			b.emit(EventUpdate, dest)
		} else {
			b.emit(EventCreate, dest)
		}
		return nil
	}

	outcome, err := fsutil.WriteFileAtomic(dest, data, outputPerm)
	if err != nil {
		return err
	}
	switch outcome {
	case fsutil.Created:
		b.emit(EventCreate, dest)
	case fsutil.Updated:
		b.emit(EventUpdate, dest)
	case fsutil.Identical:
		b.emit(EventIdentical, dest)
	}
	return nil
}
