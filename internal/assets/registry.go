package assets

import (
	"golang.org/x/sync/semaphore"

	"git.home.luguber.info/inful/assetforge/internal/config"
	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
	"git.home.luguber.info/inful/assetforge/internal/templating"
)

// Registry maps source extensions to writers. It is built once at pipeline
// start and immutable afterwards, so concurrent buckets can consult it
// without synchronization.
type Registry struct {
	byExt    map[string]Writer
	fallback Writer
}

// NewRegistry builds a registry from the fallback writer and the given
// writers in order. When two writers claim the same extension the last
// registration wins.
func NewRegistry(fallback Writer, writers ...Writer) *Registry {
	byExt := make(map[string]Writer)
	for _, w := range writers {
		for _, ext := range w.Extensions() {
			byExt[ext] = w
		}
	}
	return &Registry{byExt: byExt, fallback: fallback}
}

// Lookup resolves the writer for an extension. Unregistered extensions
// silently route to the fallback pass-through writer.
func (r *Registry) Lookup(ext string) Writer {
	if w, ok := r.byExt[ext]; ok {
		return w
	}
	return r.fallback
}

// builtinSpec is the configuration data of one builtin external compiler.
type builtinSpec struct {
	exts   []string
	target string
	cmd    []string
	uses   string
}

// Builtin compiler table. The include patterns are anchored per line and
// capture the referenced file in the named group "file".
var builtinSystemSpecs = map[string]builtinSpec{
	"sass": {
		exts:   []string{".sass"},
		target: ".css",
		cmd:    []string{"sass"},
		// matches @import 'foo.sass' (and optionally without quotes)
		uses: `^@import ["']?(?P<file>.+?\.sass)["']?`,
	},
	"scss": {
		exts:   []string{".scss"},
		target: ".css",
		cmd:    []string{"sass", "--scss"},
		// matches @import 'foo.scss' / 'foo', we do not support import url(foo);
		uses: `^@import ["'](?P<file>.+?(\.scss)?)["'];`,
	},
	"less": {
		exts:   []string{".less"},
		target: ".css",
		cmd:    []string{"lessc"},
		// matches @import 'foo.less'; and @import-once ...
		uses: `^@import(-once)? ["'](?P<file>.+?(\.(less|css))?)["'];`,
	},
	"coffee": {
		exts:   []string{".coffee"},
		target: ".js",
		cmd:    []string{"coffee", "-cp"},
	},
	"iced": {
		exts:   []string{".iced", ".coffee"},
		target: ".js",
		cmd:    []string{"iced", "-cp"},
	},
}

// Env bundles the collaborators writers need: the templating engine, event
// sink, metrics recorder, and shared process cap.
type Env struct {
	Engine       templating.Engine
	TemplateData map[string]any
	Events       EventSink
	Recorder     metrics.Recorder
	Procs        *semaphore.Weighted
}

// BuildRegistry constructs the writer registry from the configured enable
// list and any custom writer specs.
func BuildRegistry(cfg *config.Config, env Env) (*Registry, error) {
	if env.Procs == nil {
		env.Procs = semaphore.NewWeighted(int64(cfg.Limits.MaxCompilers))
	}

	fallback := newCopyWriter("copy", nil, env.Events, env.Recorder)

	var writers []Writer
	for _, name := range cfg.Writers {
		w, err := buildBuiltin(name, cfg, env)
		if err != nil {
			return nil, err
		}
		if w != nil {
			writers = append(writers, w)
		}
	}
	for _, spec := range cfg.CustomWriters {
		w, err := buildSystem(spec.Name, builtinSpec{
			exts:   spec.Extensions,
			target: spec.Target,
			cmd:    spec.Command,
			uses:   spec.Uses,
		}, cfg, env)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	return NewRegistry(fallback, writers...), nil
}

func buildBuiltin(name string, cfg *config.Config, env Env) (Writer, error) {
	switch name {
	case "html":
		return newThemeCopyWriter("html", []string{".html"}, cfg.Theme, env.Events, env.Recorder), nil
	case "xml":
		return newThemeCopyWriter("xml", []string{".xml"}, cfg.Theme, env.Events, env.Recorder), nil
	case "template":
		if env.Engine == nil {
			// No engine wired (e.g. discover-only invocations); templates
			// fall back to plain copy via the default writer.
			return nil, nil
		}
		return newTemplateWriter(env.Engine, env.TemplateData, env.Events, env.Recorder), nil
	case "markdown":
		return newMarkdownWriter(env.Events, env.Recorder), nil
	default:
		spec, ok := builtinSystemSpecs[name]
		if !ok {
			return nil, aerrors.ValidationFailed("writers", "unknown writer name").
				WithContext("writer", name)
		}
		return buildSystem(name, spec, cfg, env)
	}
}

func buildSystem(name string, spec builtinSpec, cfg *config.Config, env Env) (Writer, error) {
	var scanner *IncludeScanner
	if spec.uses != "" {
		var err error
		scanner, err = NewIncludeScanner(spec.uses, cfg.Limits.ScanWindow, spec.exts...)
		if err != nil {
			return nil, aerrors.InternalError("invalid include pattern", err).
				WithContext("writer", name)
		}
	}
	return newSystemWriter(SystemWriterConfig{
		Name:       name,
		Extensions: spec.exts,
		Target:     spec.target,
		Command:    spec.cmd,
		Scanner:    scanner,
		Depth:      cfg.Limits.IncludeDepth,
		CacheDir:   cfg.CacheDir,
		Timeout:    cfg.Limits.ProcessTimeout.Std(),
		Procs:      env.Procs,
	}, env.Events, env.Recorder), nil
}
