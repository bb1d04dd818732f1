// Package apischema checks encoded submissions against the settlement API's
// OpenAPI contract before they leave the process. It guards field names and
// enums only; business validation stays in the UI layer.
package apischema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-payeeform/pkg/submit"
)

//go:embed data/settlement-api.yaml
var embeddedDoc embed.FS

// RegisterPath is the payee registration operation the validator targets.
const RegisterPath = "/v1/payees"

// Validator holds the resolved multipart request schema for payee
// registration.
type Validator struct {
	schema *openapi3.Schema
}

// New loads the embedded settlement API document and resolves the payee
// registration request schema.
func New(ctx context.Context) (*Validator, error) {
	raw, err := embeddedDoc.ReadFile("data/settlement-api.yaml")
	if err != nil {
		return nil, fmt.Errorf("apischema: read embedded document: %w", err)
	}
	return NewFromData(ctx, raw)
}

// NewFromData builds a validator from a raw OpenAPI document.
func NewFromData(ctx context.Context, raw []byte) (*Validator, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apischema: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apischema: validate document: %w", err)
	}

	schema, err := registerSchema(doc)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

func registerSchema(doc *openapi3.T) (*openapi3.Schema, error) {
	if doc.Paths == nil {
		return nil, errors.New("apischema: document has no paths")
	}
	item := doc.Paths.Find(RegisterPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("apischema: document lacks POST %s", RegisterPath)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("apischema: POST %s has no request body", RegisterPath)
	}
	media := body.Value.Content.Get("multipart/form-data")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("apischema: POST %s has no multipart schema", RegisterPath)
	}
	return media.Schema.Value, nil
}

// Validate checks an encoded form against the request schema: every required
// text field present and non-empty, no unknown field names, and enum values
// within the declared sets. Errors are joined so callers see every problem at
// once.
func (v *Validator) Validate(form submit.Form) error {
	var problems []error

	seen := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		seen[field.Name] = true
		prop, ok := v.schema.Properties[field.Name]
		if !ok {
			problems = append(problems, fmt.Errorf("field %q is not part of the API contract", field.Name))
			continue
		}
		if prop.Value != nil && len(prop.Value.Enum) > 0 && !enumAllows(prop.Value.Enum, field.Value) {
			problems = append(problems, fmt.Errorf("field %q value %q not in %v", field.Name, field.Value, prop.Value.Enum))
		}
	}

	for _, required := range v.schema.Required {
		if !seen[required] {
			problems = append(problems, fmt.Errorf("required field %q missing", required))
			continue
		}
		if value, _ := form.Value(required); strings.TrimSpace(value) == "" {
			problems = append(problems, fmt.Errorf("required field %q is empty", required))
		}
	}

	for _, file := range form.Files {
		prop, ok := v.schema.Properties[file.Field]
		if !ok {
			problems = append(problems, fmt.Errorf("file field %q is not part of the API contract", file.Field))
			continue
		}
		if prop.Value == nil || prop.Value.Format != "binary" {
			problems = append(problems, fmt.Errorf("field %q does not accept file uploads", file.Field))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("apischema: submission rejected: %w", errors.Join(problems...))
	}
	return nil
}

func enumAllows(enum []any, value string) bool {
	for _, candidate := range enum {
		if str, ok := candidate.(string); ok && str == value {
			return true
		}
	}
	return false
}
