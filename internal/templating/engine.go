// Package templating defines the narrow rendering interface the asset
// pipeline consumes. The pipeline never inspects template semantics; it only
// asks the engine which source extension it claims, which theme files are
// templates (so discovery can exclude them), and for rendered bytes.
package templating

// Engine renders theme sources into output-ready bytes.
type Engine interface {
	// Extension returns the source extension the engine claims, e.g. ".html".
	Extension() string
	// Templates lists relative paths inside the theme root that the engine
	// owns (layouts, partials). Discovery excludes them from the asset set.
	Templates() []string
	// Extend adds additional search roots (static directories whose
	// templates may be inherited from).
	Extend(dirs ...string)
	// RenderFile renders the template identified by its file name with the
	// provided data.
	RenderFile(name string, data map[string]any) ([]byte, error)
}
