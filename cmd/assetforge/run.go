package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/assetforge/internal/assets"
	"git.home.luguber.info/inful/assetforge/internal/config"
	"git.home.luguber.info/inful/assetforge/internal/discovery"
	"git.home.luguber.info/inful/assetforge/internal/logfields"
	"git.home.luguber.info/inful/assetforge/internal/metrics"
	"git.home.luguber.info/inful/assetforge/internal/templating"
)

// runBuild wires the collaborators together and drives one pipeline run:
// templating engine, writer registry, discovery, dispatcher.
func runBuild(ctx context.Context, cfg *config.Config, opts assets.WriteOptions) error {
	var engine *templating.HTMLEngine
	if cfg.Theme != "" {
		engine = templating.NewHTMLEngine(cfg.Theme)
		engine.Extend(cfg.Static...)
	}

	events := assets.NewRunLog()
	rec := metrics.NewPrometheusRecorder(nil)

	env := assets.Env{
		Events:   events,
		Recorder: rec,
	}
	if engine != nil {
		env.Engine = engine
		env.TemplateData = map[string]any{"conf": cfg}
	}

	registry, err := assets.BuildRegistry(cfg, env)
	if err != nil {
		return err
	}

	files, err := discoverAll(cfg, engine)
	if err != nil {
		return err
	}

	dispatcher := assets.NewDispatcher(registry, cfg.Output.Directory, cfg.Limits.Workers, rec)
	if err := dispatcher.Run(ctx, files, opts); err != nil {
		return err
	}

	counts := events.Counts()
	slog.Info("Asset compilation finished",
		logfields.RunID(events.RunID()),
		slog.Int("skipped", counts[assets.EventSkip]),
		slog.Int("created", counts[assets.EventCreate]),
		slog.Int("updated", counts[assets.EventUpdate]),
		slog.Int("identical", counts[assets.EventIdentical]))
	return nil
}

// discoverAll walks the theme root (minus the engine's claimed templates)
// and every static root.
func discoverAll(cfg *config.Config, engine *templating.HTMLEngine) ([]assets.SourceFile, error) {
	var files []assets.SourceFile
	if cfg.Theme != "" {
		var exclude []string
		if engine != nil {
			exclude = engine.Templates()
		}
		themeFiles, err := discovery.Files(discovery.Root{Dir: cfg.Theme, Ignore: cfg.ThemeIgnore}, exclude...)
		if err != nil {
			return nil, err
		}
		files = append(files, themeFiles...)
	}
	for _, static := range cfg.Static {
		staticFiles, err := discovery.Files(discovery.Root{Dir: static, Ignore: cfg.StaticIgnore})
		if err != nil {
			return nil, err
		}
		files = append(files, staticFiles...)
	}
	return files, nil
}

func runDiscover(cfg *config.Config) error {
	files, err := discoverAll(cfg, nil)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("%s\t%s\n", f.Directory, f.RelativePath)
	}
	slog.Info("Discovery complete", slog.Int("files", len(files)))
	return nil
}

const defaultConfig = `# assetforge configuration
theme: ./theme
static:
  - ./static
output:
  directory: ./output

# Glob patterns excluded during discovery.
theme_ignore:
  - "*.swp"
static_ignore:
  - "*.swp"

# Active writers; extensions without one fall back to plain copy.
writers: [html, xml, template, sass, scss, less, coffee, iced, markdown]

limits:
  include_depth: 6
  scan_window: 512
  process_timeout: 30s
  max_compilers: 4
`

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
