// Package payeeform turns settlement API payee rows into editable form
// sections and back into multipart submissions. The root package re-exports
// the orchestrator entry points so callers can start with a single import.
package payeeform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/orchestrator"
	"github.com/goliatone/go-payeeform/pkg/payload"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/sections"
	"github.com/goliatone/go-payeeform/pkg/submit"
)

// FormState is the nested payee form state.
type FormState = model.FormState

// Payload is the inbound settlement API payload.
type Payload = payload.Payload

// RenderOptions describes per-request overrides renderers can use to surface
// server-side validation errors or theme assets.
type RenderOptions = render.RenderOptions

// Request describes one render of the payee form.
type Request = orchestrator.Request

// Result carries rendered output plus intermediate pipeline values.
type Result = orchestrator.Result

// Flow names shipped with the embedded layouts.
const (
	FlowRegister = sections.FlowRegister
	FlowEdit     = sections.FlowEdit
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML maps the payload into a form state and renders the requested
// flow with the default vanilla renderer. It is the simplest entry point for
// callers that just want HTML output.
func RenderHTML(ctx context.Context, payloadBytes []byte, flow string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Render(ctx, orchestrator.Request{
		PayloadBytes: payloadBytes,
		Flow:         flow,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// EncodeSubmission flattens a form state into the outgoing multipart fields.
func EncodeSubmission(ctx context.Context, state FormState, options ...orchestrator.Option) (submit.Form, error) {
	gen := orchestrator.New(options...)
	return gen.EncodeSubmission(ctx, state)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
