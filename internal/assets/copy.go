package assets

import (
	"context"
	"os"

	"git.home.luguber.info/inful/assetforge/internal/metrics"
)

// copyWriter is the default pass-through variant: the output is the source,
// byte for byte. It claims no extensions of its own when used as the
// registry fallback.
type copyWriter struct {
	base
}

func newCopyWriter(name string, exts []string, events EventSink, rec metrics.Recorder) *copyWriter {
	return &copyWriter{base: newBase(name, exts, nil, 0, events, rec)}
}

func (w *copyWriter) Generate(src, _ string) ([]byte, error) {
	return os.ReadFile(src)
}

func (w *copyWriter) Write(_ context.Context, file SourceFile, dest string, opts WriteOptions) error {
	return w.writeWith(file, dest, opts, w.Generate)
}

// themeCopyWriter copies like copyWriter but refuses sources inside the
// theme root; those belong to the templating variant. The XML flavor is the
// same behavior under a second extension.
type themeCopyWriter struct {
	copyWriter
	themeDir string
}

func newThemeCopyWriter(name string, exts []string, themeDir string, events EventSink, rec metrics.Recorder) *themeCopyWriter {
	return &themeCopyWriter{
		copyWriter: *newCopyWriter(name, exts, events, rec),
		themeDir:   themeDir,
	}
}

func (w *themeCopyWriter) Write(ctx context.Context, file SourceFile, dest string, opts WriteOptions) error {
	if file.Directory == w.themeDir {
		return nil
	}
	return w.copyWriter.Write(ctx, file, dest, opts)
}
