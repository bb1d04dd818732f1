package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/normalize"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/sections"
	"github.com/goliatone/go-payeeform/pkg/submit"
)

// FileReader loads a local file selected at a file prompt. Swappable so tests
// never touch the filesystem.
type FileReader func(path string) ([]byte, error)

// Renderer drives an interactive terminal session over the form. It holds the
// state, applies each answer as a field intent through the normalizer, and
// re-derives the visible sections before the next prompt.
type Renderer struct {
	driver       PromptDriver
	normalizer   *normalize.Normalizer
	builder      *sections.Builder
	outputFormat OutputFormat
	readFile     FileReader
}

// New constructs a TUI renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	builder, err := sections.New()
	if err != nil {
		return nil, fmt.Errorf("tui renderer: default section builder: %w", err)
	}
	r := &Renderer{
		driver:       newSurveyDriver(),
		normalizer:   normalize.New(nil),
		builder:      builder,
		outputFormat: OutputFormatJSON,
		readFile:     os.ReadFile,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// WithFileReader overrides how file prompts load their payloads.
func WithFileReader(fn FileReader) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatJSON:
		return "application/json"
	case OutputFormatForm:
		return "application/x-www-form-urlencoded"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render walks every visible field once, re-deriving sections after each
// answer so dependent fields appear and disappear mid-session. The returned
// bytes carry the final state in the configured output format.
func (r *Renderer) Render(ctx context.Context, view render.FormView, _ render.RenderOptions) ([]byte, error) {
	state := view.State
	answered := make(map[string]bool)
	currentSection := ""

	for {
		built, err := r.builder.BuildFlow(view.Flow, state)
		if err != nil {
			return nil, fmt.Errorf("tui renderer: derive sections: %w", err)
		}

		field, sectionLabel, ok := nextField(built, answered)
		if !ok {
			break
		}
		if sectionLabel != currentSection {
			currentSection = sectionLabel
			if err := r.driver.Info(ctx, "== "+sectionLabel+" =="); err != nil {
				return nil, err
			}
		}

		next, err := r.ask(ctx, state, field)
		if err != nil {
			return nil, err
		}
		answered[field.Path] = true
		state = next
	}

	return r.encode(state)
}

func nextField(built []model.Section, answered map[string]bool) (model.FieldDescriptor, string, bool) {
	for _, section := range built {
		for _, field := range section.Fields {
			if !answered[field.Path] {
				return field, section.Label, true
			}
		}
	}
	return model.FieldDescriptor{}, "", false
}

func (r *Renderer) ask(ctx context.Context, state model.FormState, field model.FieldDescriptor) (model.FormState, error) {
	if field.ReadOnly {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s: %v", field.Label, field.Value)); err != nil {
			return state, err
		}
		return state, nil
	}

	switch field.Widget {
	case model.WidgetCheckbox:
		current, _ := field.Value.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: field.Label, Default: current})
		if err != nil {
			return state, err
		}
		return r.apply(state, field.Path, answer)

	case model.WidgetRadio, model.WidgetSelect:
		labels := make([]string, len(field.Options))
		defaultIndex := 0
		for i, option := range field.Options {
			labels[i] = option.Label
			if fmt.Sprint(field.Value) == option.Value {
				defaultIndex = i
			}
		}
		index, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return state, err
		}
		if index < 0 || index >= len(field.Options) {
			return state, fmt.Errorf("tui renderer: selection out of range for %q", field.Path)
		}
		return r.apply(state, field.Path, field.Options[index].Value)

	case model.WidgetFile:
		return r.askFile(ctx, state, field)

	default:
		current := fmt.Sprint(field.Value)
		answer, err := r.driver.Input(ctx, InputConfig{Message: field.Label, Default: current})
		if err != nil {
			return state, err
		}
		return r.apply(state, field.Path, answer)
	}
}

func (r *Renderer) askFile(ctx context.Context, state model.FormState, field model.FieldDescriptor) (model.FormState, error) {
	current, _ := field.Value.(model.FileRef)
	help := "Leave empty to keep the stored document."
	if current.IsEmpty() {
		help = "Leave empty to skip."
	}
	path, err := r.driver.Input(ctx, InputConfig{Message: field.Label + " (file path)", Help: help})
	if err != nil {
		return state, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return state, nil
	}
	if r.readFile == nil {
		return state, fmt.Errorf("tui renderer: no file reader configured for %q", field.Path)
	}
	data, err := r.readFile(path)
	if err != nil {
		return state, fmt.Errorf("tui renderer: read %s: %w", path, err)
	}
	return r.apply(state, field.Path, current.Replace(filepath.Base(path), data))
}

func (r *Renderer) apply(state model.FormState, path string, value any) (model.FormState, error) {
	next, err := r.normalizer.Apply(state, normalize.SetField(path, value))
	if err != nil {
		return state, fmt.Errorf("tui renderer: %w", err)
	}
	return next, nil
}

func (r *Renderer) encode(state model.FormState) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatForm:
		form := submit.BuildForm(state)
		values := url.Values{}
		for _, field := range form.Fields {
			values.Set(field.Name, field.Value)
		}
		return []byte(values.Encode()), nil

	case OutputFormatPrettyText:
		var b strings.Builder
		form := submit.BuildForm(state)
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", field.Name, field.Value)
		}
		for _, file := range form.Files {
			fmt.Fprintf(&b, "%s: %s (%d bytes)\n", file.Field, file.Filename, len(file.Data))
		}
		return []byte(b.String()), nil

	default:
		return json.MarshalIndent(state, "", "  ")
	}
}
