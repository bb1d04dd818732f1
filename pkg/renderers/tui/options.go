package tui

import (
	"github.com/goliatone/go-payeeform/pkg/normalize"
	"github.com/goliatone/go-payeeform/pkg/sections"
)

// OutputFormat controls how the final state is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the normalized form state as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatForm emits the flattened submission fields, urlencoded.
	OutputFormatForm OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithNormalizer overrides the normalizer answers run through.
func WithNormalizer(normalizer *normalize.Normalizer) Option {
	return func(r *Renderer) {
		if normalizer != nil {
			r.normalizer = normalizer
		}
	}
}

// WithSectionBuilder overrides the builder used to re-derive sections after
// each answer.
func WithSectionBuilder(builder *sections.Builder) Option {
	return func(r *Renderer) {
		if builder != nil {
			r.builder = builder
		}
	}
}
