package sections

import (
	"embed"
	"io/fs"
)

//go:embed layouts
var embeddedLayouts embed.FS

// EmbeddedLayouts exposes the layout files shipped with the module.
func EmbeddedLayouts() fs.FS {
	sub, err := fs.Sub(embeddedLayouts, "layouts")
	if err != nil {
		panic("sections: embedded layouts missing: " + err.Error())
	}
	return sub
}
