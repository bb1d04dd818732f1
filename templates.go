package payeeform

import (
	"io/fs"

	"github.com/goliatone/go-payeeform/pkg/renderers/vanilla"
	"github.com/goliatone/go-payeeform/pkg/sections"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedLayouts exposes the built-in flow layouts for the same purpose.
func EmbeddedLayouts() fs.FS {
	return sections.EmbeddedLayouts()
}
