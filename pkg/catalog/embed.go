package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var embeddedFS embed.FS

// EmbeddedFS exposes the built-in reference data so callers can extend or
// replace individual entries before loading.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default loads the embedded catalog once and reuses it. The embedded data is
// fixed at build time, so a parse failure is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Load(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}
