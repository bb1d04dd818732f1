package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves a theme selection by name and variant.
type ThemeSelector = theme.ThemeSelector

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// requests can resolve themed render configs by name.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks overrides the partial fallbacks merged into every
// resolved theme config.
func WithThemeFallbacks(partials map[string]string) Option {
	return func(o *Orchestrator) {
		if len(partials) > 0 {
			o.themeFallbacks = partials
		}
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.form":  "form.tmpl",
		"forms.field": "form.tmpl",
	}
}

// resolveTheme turns a selection into the renderer config: manifest tokens
// merged with variant overrides, CSS vars derived from tokens, partials
// layered fallbacks < manifest < variant, and asset URLs joined onto the
// manifest prefix.
func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil || name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	manifest := selection.Manifest

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: make(map[string]string, len(o.themeFallbacks)+len(manifest.Templates)),
		Tokens:   make(map[string]string, len(manifest.Tokens)),
		CSSVars:  make(map[string]string, len(manifest.Tokens)),
	}

	for key, value := range o.themeFallbacks {
		cfg.Partials[key] = value
	}
	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}

	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}

	assetFiles := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		assetFiles[key] = value
	}

	if variantCfg, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variantCfg.Templates {
			cfg.Partials[key] = value
		}
		for key, value := range variantCfg.Tokens {
			cfg.Tokens[key] = value
		}
		for key, value := range variantCfg.Assets.Files {
			assetFiles[key] = value
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	prefix := strings.TrimSuffix(manifest.Assets.Prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := assetFiles[key]
		if !ok {
			return ""
		}
		return prefix + "/" + file
	}

	return cfg, nil
}
