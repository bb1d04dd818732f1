// Package vanilla renders the payee form as dependency-free HTML.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"reflect"

	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/render"
	rendertemplate "github.com/goliatone/go-payeeform/pkg/render/template"
	gotemplate "github.com/goliatone/go-payeeform/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders a form view through the embedded pongo2 templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form document. Server error payloads are mapped to
// the owning fields; unmatched keys surface as form-level messages.
func (r *Renderer) Render(_ context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	mapping := render.MapErrorPayload(view.Sections, options.Errors)

	action := options.Action
	method := options.Method
	if method == "" {
		method = "POST"
	}

	data := map[string]any{
		"flow":       view.Flow,
		"title":      view.Title,
		"sections":   sectionViews(view.Sections, mapping),
		"formErrors": mapping.Form,
		"action":     action,
		"method":     method,
	}
	if options.Theme != nil {
		data["theme"] = themeView(options.Theme)
	}

	result, err := r.templates.RenderTemplate("form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func sectionViews(sections []model.Section, mapping render.ErrorMapping) []map[string]any {
	out := make([]map[string]any, 0, len(sections))
	for _, section := range sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, fieldView(field, mapping.Fields[field.Path]))
		}
		out = append(out, map[string]any{
			"id":     section.ID,
			"label":  section.Label,
			"fields": fields,
		})
	}
	return out
}

func fieldView(field model.FieldDescriptor, errors []string) map[string]any {
	options := make([]map[string]any, 0, len(field.Options))
	for _, option := range field.Options {
		options = append(options, map[string]any{
			"value":       option.Value,
			"label":       option.Label,
			"description": sanitizeMarkup(option.Description),
		})
	}

	view := map[string]any{
		"id":        field.ID,
		"label":     field.Label,
		"widget":    string(field.Widget),
		"path":      field.Path,
		"value":     displayValue(field.Value),
		"options":   options,
		"readOnly":  field.ReadOnly,
		"fullWidth": field.FullWidth,
		"errors":    errors,
	}
	if ref, ok := field.Value.(model.FileRef); ok {
		view["fileURL"] = ref.URL()
		view["fileName"] = ref.Name()
	}
	return view
}

// displayValue flattens typed leaf values so template comparisons against
// option strings behave.
func displayValue(value any) any {
	switch v := value.(type) {
	case model.FileRef:
		return v.URL()
	case nil, bool, string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String {
			return rv.String()
		}
		return v
	}
}
