package assets

import (
	"context"
	"path/filepath"

	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
	"git.home.luguber.info/inful/assetforge/internal/templating"
)

// templateTarget is the fixed output extension of rendered templates.
const templateTarget = ".html"

// templateWriter renders sources through the templating engine. Its claimed
// source extension is whatever the active engine advertises; the destination
// always ends in .html.
type templateWriter struct {
	base
	engine templating.Engine
	data   map[string]any
}

func newTemplateWriter(engine templating.Engine, data map[string]any, events EventSink, rec metrics.Recorder) *templateWriter {
	return &templateWriter{
		base:   newBase("template", []string{engine.Extension()}, nil, 0, events, rec),
		engine: engine,
		data:   data,
	}
}

func (w *templateWriter) Generate(src, _ string) ([]byte, error) {
	out, err := w.engine.RenderFile(filepath.Base(src), w.data)
	if err != nil {
		return nil, aerrors.TemplateRenderFailed(src, err)
	}
	return out, nil
}

func (w *templateWriter) Write(_ context.Context, file SourceFile, dest string, opts WriteOptions) error {
	return w.writeWith(file, swapExt(dest, templateTarget), opts, w.Generate)
}
