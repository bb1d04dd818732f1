package sections

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/visibility"
	"github.com/goliatone/go-payeeform/pkg/visibility/expr"
	"github.com/goliatone/go-payeeform/pkg/widgets"
)

// Flow names shipped in the embedded layouts.
const (
	FlowRegister = "register"
	FlowEdit     = "edit"
)

// Builder derives display sections from a form state. Building is a pure read
// of the state: it never mutates it and is safe to run on every render.
type Builder struct {
	cat         *catalog.Catalog
	eval        visibility.Evaluator
	widgets     *widgets.Registry
	layouts     map[string]Layout
	layoutFS    fs.FS
	defaultFlow string
}

// Option configures the builder.
type Option func(*Builder)

// WithCatalog overrides the reference catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(b *Builder) {
		if cat != nil {
			b.cat = cat
		}
	}
}

// WithLayoutFS loads layouts from the given filesystem instead of the
// embedded ones.
func WithLayoutFS(fsys fs.FS) Option {
	return func(b *Builder) {
		if fsys != nil {
			b.layoutFS = fsys
		}
	}
}

// WithEvaluator overrides the visibility rule evaluator.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(b *Builder) {
		if eval != nil {
			b.eval = eval
		}
	}
}

// WithWidgets overrides the widget registry used to fill unspecified widgets.
func WithWidgets(reg *widgets.Registry) Option {
	return func(b *Builder) {
		if reg != nil {
			b.widgets = reg
		}
	}
}

// WithDefaultFlow sets the flow Build uses.
func WithDefaultFlow(flow string) Option {
	return func(b *Builder) {
		if flow != "" {
			b.defaultFlow = flow
		}
	}
}

// New constructs a Builder with the embedded layouts and catalog unless
// overridden.
func New(opts ...Option) (*Builder, error) {
	b := &Builder{
		cat:         catalog.Default(),
		eval:        expr.New(),
		widgets:     widgets.NewRegistry(),
		layoutFS:    EmbeddedLayouts(),
		defaultFlow: FlowRegister,
	}
	for _, opt := range opts {
		opt(b)
	}

	layouts, err := LoadFS(b.layoutFS)
	if err != nil {
		return nil, err
	}
	b.layouts = layouts

	if _, ok := b.layouts[b.defaultFlow]; !ok {
		return nil, fmt.Errorf("sections: default flow %q not defined by layouts", b.defaultFlow)
	}
	return b, nil
}

// Flows lists the loaded flow names.
func (b *Builder) Flows() []string {
	out := make([]string, 0, len(b.layouts))
	for name := range b.layouts {
		out = append(out, name)
	}
	return out
}

// Build derives the sections of the default flow.
func (b *Builder) Build(state model.FormState) ([]model.Section, error) {
	return b.BuildFlow(b.defaultFlow, state)
}

// BuildFlow derives the sections of the named flow for the given state.
// Hidden sections and fields are omitted entirely, order follows the layout.
func (b *Builder) BuildFlow(flow string, state model.FormState) ([]model.Section, error) {
	layout, ok := b.layouts[flow]
	if !ok {
		return nil, fmt.Errorf("sections: unknown flow %q", flow)
	}

	ctx := visibility.Context{Values: state.Values()}
	out := make([]model.Section, 0, len(layout.Sections))

	for _, sectionLayout := range layout.Sections {
		visible, err := b.eval.Eval(sectionLayout.VisibleWhen, ctx)
		if err != nil {
			return nil, fmt.Errorf("sections: section %q visibility: %w", sectionLayout.ID, err)
		}
		if !visible {
			continue
		}

		section := model.Section{
			ID:     sectionLayout.ID,
			Label:  sectionLayout.Label,
			Fields: make([]model.FieldDescriptor, 0, len(sectionLayout.Fields)),
		}
		for _, fieldLayout := range sectionLayout.Fields {
			visible, err := b.eval.Eval(fieldLayout.VisibleWhen, ctx)
			if err != nil {
				return nil, fmt.Errorf("sections: field %q visibility: %w", fieldLayout.ID, err)
			}
			if !visible {
				continue
			}
			field, err := b.buildField(fieldLayout, state)
			if err != nil {
				return nil, err
			}
			section.Fields = append(section.Fields, field)
		}
		out = append(out, section)
	}

	return b.widgets.Decorate(out)
}

func (b *Builder) buildField(layout FieldLayout, state model.FormState) (model.FieldDescriptor, error) {
	lens, ok := model.LensFor(layout.Path)
	if !ok {
		return model.FieldDescriptor{}, fmt.Errorf("sections: field %q binds unknown path %q", layout.ID, layout.Path)
	}

	options, err := b.resolveOptions(layout.Options, state)
	if err != nil {
		return model.FieldDescriptor{}, fmt.Errorf("sections: field %q: %w", layout.ID, err)
	}

	label := layout.Label
	if override, ok := layout.LabelByBizType[string(state.BizType.BizType)]; ok {
		label = override
	}

	errorKey := layout.ErrorKey
	if errorKey == "" {
		errorKey = layout.ID
	}

	return model.FieldDescriptor{
		ID:        layout.ID,
		Label:     label,
		Widget:    model.Widget(layout.Widget),
		Path:      layout.Path,
		Value:     lens.Get(state),
		ErrorKey:  errorKey,
		Options:   options,
		ReadOnly:  layout.ReadOnly,
		FullWidth: layout.FullWidth,
		Lens:      lens,
	}, nil
}

func (b *Builder) resolveOptions(source string, state model.FormState) ([]model.Option, error) {
	switch source {
	case "":
		return nil, nil
	case "consent_types":
		return b.cat.ConsentTypeOptions(), nil
	case "biz_types":
		return b.cat.BizTypeOptions(), nil
	case "issue_types":
		return b.cat.IssueTypeOptionsFor(state.BizType.BizType), nil
	case "id_document_types":
		return b.cat.IDDocumentOptions(), nil
	case "banks":
		return b.cat.BankOptions(), nil
	default:
		return nil, fmt.Errorf("unknown option source %q", source)
	}
}
