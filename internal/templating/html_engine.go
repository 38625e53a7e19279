package templating

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// HTMLEngine is the default Engine: Go text/template over .html sources.
// Templates in the theme root are parsed lazily per render so edits between
// pipeline runs are always picked up.
type HTMLEngine struct {
	themeDir  string
	templates []string
	roots     []string
}

// NewHTMLEngine creates an engine rooted at themeDir. The listed template
// names (relative to themeDir) are claimed as layouts and excluded from
// asset discovery.
func NewHTMLEngine(themeDir string, templates ...string) *HTMLEngine {
	return &HTMLEngine{
		themeDir:  themeDir,
		templates: templates,
		roots:     []string{themeDir},
	}
}

// Extension implements Engine.
func (e *HTMLEngine) Extension() string { return ".html" }

// Templates implements Engine.
func (e *HTMLEngine) Templates() []string { return e.templates }

// Extend implements Engine.
func (e *HTMLEngine) Extend(dirs ...string) {
	e.roots = append(e.roots, dirs...)
}

// RenderFile implements Engine. The named file is resolved against the
// engine's search roots in order; the first match wins. Claimed layout
// templates are parsed alongside so sources can reference them.
func (e *HTMLEngine) RenderFile(name string, data map[string]any) ([]byte, error) {
	src, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	tpl := template.New(filepath.Base(name))
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	if _, err := tpl.Parse(string(raw)); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	for _, layout := range e.templates {
		path := filepath.Join(e.themeDir, layout)
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, err := tpl.New(layout).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse layout %s: %w", layout, err)
		}
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *HTMLEngine) resolve(name string) (string, error) {
	for _, root := range e.roots {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("template %s not found in any search root", name)
}
