package vanilla

import theme "github.com/goliatone/go-theme"

// themeView flattens a resolved theme config into the shape form.tmpl reads.
func themeView(cfg *theme.RendererConfig) map[string]any {
	view := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
	}
	if len(cfg.CSSVars) > 0 {
		vars := make(map[string]any, len(cfg.CSSVars))
		for name, value := range cfg.CSSVars {
			vars[name] = value
		}
		view["cssVars"] = vars
	}
	if len(cfg.Partials) > 0 {
		partials := make(map[string]any, len(cfg.Partials))
		for name, value := range cfg.Partials {
			partials[name] = value
		}
		view["partials"] = partials
	}
	return view
}
