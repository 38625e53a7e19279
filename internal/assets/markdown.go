package assets

import (
	"bytes"
	"context"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/assetforge/internal/metrics"
)

// markdownWriter renders Markdown sources to HTML in-process. Unlike the
// external-process variants it needs no compiler binary, but it follows the
// same skip-or-produce flow and target-extension swap.
type markdownWriter struct {
	base
	md goldmark.Markdown
}

func newMarkdownWriter(events EventSink, rec metrics.Recorder) *markdownWriter {
	return &markdownWriter{
		base: newBase("markdown", []string{".md", ".markdown"}, nil, 0, events, rec),
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (w *markdownWriter) Generate(src, _ string) ([]byte, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.md.Convert(raw, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *markdownWriter) Write(_ context.Context, file SourceFile, dest string, opts WriteOptions) error {
	return w.writeWith(file, swapExt(dest, ".html"), opts, w.Generate)
}
