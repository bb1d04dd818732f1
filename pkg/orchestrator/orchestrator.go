// Package orchestrator coordinates the full payee form pipeline: payload
// mapping, normalization, section derivation, and rendering. It applies
// sensible defaults (embedded catalog, vanilla renderer) while remaining open
// to dependency injection for advanced callers.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-payeeform/pkg/apischema"
	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/normalize"
	"github.com/goliatone/go-payeeform/pkg/payload"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/renderers/vanilla"
	"github.com/goliatone/go-payeeform/pkg/sections"
	"github.com/goliatone/go-payeeform/pkg/submit"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects a custom reference catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		if cat != nil {
			o.cat = cat
		}
	}
}

// WithNormalizer injects a custom normalizer.
func WithNormalizer(normalizer *normalize.Normalizer) Option {
	return func(o *Orchestrator) {
		if normalizer != nil {
			o.normalizer = normalizer
		}
	}
}

// WithSectionBuilder injects a custom section builder.
func WithSectionBuilder(builder *sections.Builder) Option {
	return func(o *Orchestrator) {
		if builder != nil {
			o.builder = builder
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithDecorators registers decorators that run against the derived sections
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithSubmissionValidation checks encoded submissions against the settlement
// API contract before returning them.
func WithSubmissionValidation() Option {
	return func(o *Orchestrator) {
		o.validateSubmissions = true
	}
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	cat                 *catalog.Catalog
	normalizer          *normalize.Normalizer
	builder             *sections.Builder
	registry            *render.Registry
	defaultRenderer     string
	decorators          []model.Decorator
	themeSelector       ThemeSelector
	themeFallbacks      map[string]string
	validateSubmissions bool
	validator           *apischema.Validator
	initErr             error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.cat == nil {
		o.cat = catalog.Default()
	}
	if o.normalizer == nil {
		o.normalizer = normalize.New(o.cat)
	}
	if o.builder == nil {
		builder, err := sections.New(sections.WithCatalog(o.cat))
		if err != nil {
			o.initErr = errors.Join(o.initErr, err)
		} else {
			o.builder = builder
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if !o.registry.Has(defaultRendererName) {
		renderer, err := vanilla.New()
		if err != nil {
			o.initErr = errors.Join(o.initErr, err)
		} else if err := o.registry.Register(renderer); err != nil {
			o.initErr = errors.Join(o.initErr, err)
		}
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
}

// Request describes one render of the payee form.
type Request struct {
	// Payload seeds the form state. Optional; PayloadBytes is decoded when
	// Payload is nil, and both absent means an empty registration form.
	Payload      *payload.Payload
	PayloadBytes []byte

	// Flow selects the layout, defaulting to the register flow.
	Flow string

	// Title is passed through to the renderer.
	Title string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carry per-request renderer data (action, errors, ...).
	RenderOptions render.RenderOptions
}

// Result carries the rendered output plus the intermediate pipeline values so
// callers can chain follow-up work without re-deriving them.
type Result struct {
	Output      []byte
	ContentType string
	State       model.FormState
	Sections    []model.Section
}

// State maps and normalizes the request payload into a form state.
func (o *Orchestrator) State(req Request) (model.FormState, error) {
	var p payload.Payload
	switch {
	case req.Payload != nil:
		p = *req.Payload
	case len(req.PayloadBytes) > 0:
		decoded, err := payload.DecodeBytes(req.PayloadBytes)
		if err != nil {
			return model.FormState{}, fmt.Errorf("orchestrator: decode payload: %w", err)
		}
		p = decoded
	}
	state := payload.Map(p, o.cat)
	return o.normalizer.Normalize(state, nil), nil
}

// Render runs the pipeline end to end and returns the renderer output.
func (o *Orchestrator) Render(ctx context.Context, req Request) (*Result, error) {
	if o.initErr != nil {
		return nil, fmt.Errorf("orchestrator: initialisation failed: %w", o.initErr)
	}

	state, err := o.State(req)
	if err != nil {
		return nil, err
	}

	flow := req.Flow
	if flow == "" {
		flow = sections.FlowRegister
	}
	built, err := o.builder.BuildFlow(flow, state)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build sections: %w", err)
	}
	for _, decorator := range o.decorators {
		built, err = decorator.Decorate(built)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decorate sections: %w", err)
		}
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, render.FormView{
		Flow:     flow,
		Title:    req.Title,
		Sections: built,
		State:    state,
	}, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render with %q: %w", name, err)
	}

	return &Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		State:       state,
		Sections:    built,
	}, nil
}

// EncodeSubmission flattens the state into the outgoing API payload,
// validating it against the settlement contract when enabled.
func (o *Orchestrator) EncodeSubmission(ctx context.Context, state model.FormState) (submit.Form, error) {
	form := submit.BuildForm(state)
	if !o.validateSubmissions {
		return form, nil
	}
	if o.validator == nil {
		validator, err := apischema.New(ctx)
		if err != nil {
			return submit.Form{}, fmt.Errorf("orchestrator: load submission contract: %w", err)
		}
		o.validator = validator
	}
	if err := o.validator.Validate(form); err != nil {
		return submit.Form{}, err
	}
	return form, nil
}
