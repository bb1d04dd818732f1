// Package render defines the renderer contract and the registry the
// orchestrator resolves renderers from.
package render

import (
	"context"

	"github.com/goliatone/go-payeeform/pkg/model"
)

// FormView is the render input: the derived sections of one flow plus the
// state they were built from.
type FormView struct {
	Flow     string
	Title    string
	Sections []model.Section
	State    model.FormState
}

// Renderer converts a FormView into a byte representation (HTML, terminal
// transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view FormView, options RenderOptions) ([]byte, error)
}
