package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form pipeline.
type RenderOptions struct {
	// Action is the URL the rendered form posts to.
	Action string
	// Method overrides the HTTP method of the rendered form. Renderers are
	// responsible for translating unsupported verbs into POST plus a hidden
	// _method input when needed.
	Method string
	// Errors surfaces server-side validation feedback keyed by the error keys
	// or dotted field paths the API reports.
	Errors map[string][]string
	// Theme carries resolved theme assets for renderers that support them.
	Theme *theme.RendererConfig
}
