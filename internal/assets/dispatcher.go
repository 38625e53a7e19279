package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/assetforge/internal/logfields"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
	"git.home.luguber.info/inful/assetforge/internal/util/sets"
)

// bucketKey identifies the unit of parallel work: all files sharing an
// extension and directory. Include resolution never crosses a bucket's
// directory and each destination is written by at most one bucket, so
// buckets run concurrently without coordination.
type bucketKey struct {
	Ext       string
	Directory string
}

// Dispatcher groups discovered files into buckets, routes each bucket to a
// writer, and drives the per-file writes.
type Dispatcher struct {
	registry  *Registry
	outputDir string
	rec       metrics.Recorder
	workers   int
}

// NewDispatcher creates a dispatcher writing into outputDir with at most
// workers concurrently processed buckets.
func NewDispatcher(registry *Registry, outputDir string, workers int, rec metrics.Recorder) *Dispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Dispatcher{
		registry:  registry,
		outputDir: outputDir,
		rec:       rec,
		workers:   workers,
	}
}

// Run processes all files. Failures of individual writes are logged and
// counted but never abort the bucket or the run; only context cancellation
// stops processing early. Every writer that handled a bucket is shut down
// exactly once after all buckets are exhausted.
func (d *Dispatcher) Run(ctx context.Context, files []SourceFile, opts WriteOptions) error {
	start := time.Now()
	buckets := groupBuckets(files)
	d.rec.SetBucketConcurrency(d.workers)
	slog.Info("Dispatching asset buckets",
		slog.Int("buckets", len(buckets)),
		slog.Int("files", len(files)),
		slog.Bool("force", opts.Force),
		slog.Bool("dryrun", opts.DryRun))

	var mu sync.Mutex
	used := make(map[Writer]struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for key, items := range buckets {
		key, items := key, items
		g.Go(func() error {
			writer := d.registry.Lookup(key.Ext)
			mu.Lock()
			used[writer] = struct{}{}
			mu.Unlock()
			return d.processBucket(gctx, writer, key, items, opts)
		})
	}
	err := g.Wait()

	for writer := range used {
		writer.Shutdown()
	}
	d.rec.ObserveRunDuration(time.Since(start))
	return err
}

func (d *Dispatcher) processBucket(ctx context.Context, writer Writer, key bucketKey, items sets.Set[string], opts WriteOptions) error {
	for _, rel := range writer.Filter(items, key.Directory).Values() {
		if err := ctx.Err(); err != nil {
			return err
		}
		file := SourceFile{Directory: key.Directory, RelativePath: rel}
		dest := filepath.Join(d.outputDir, rel)
		if err := writer.Write(ctx, file, dest, opts); err != nil {
			// Per-file isolation: log, count, move on.
			slog.Error("Asset write failed",
				logfields.Writer(writer.Name()),
				logfields.Path(rel),
				logfields.Directory(key.Directory),
				logfields.Error(err))
			d.rec.IncWriteOutcome(writer.Name(), metrics.OutcomeFailed)
		}
	}
	return nil
}

func groupBuckets(files []SourceFile) map[bucketKey]sets.Set[string] {
	buckets := make(map[bucketKey]sets.Set[string])
	for _, f := range files {
		key := bucketKey{Ext: f.Ext(), Directory: f.Directory}
		if buckets[key] == nil {
			buckets[key] = sets.New[string]()
		}
		buckets[key].Add(f.RelativePath)
	}
	return buckets
}
