package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-payeeform/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.FormView, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("wrong renderer: %q", renderer.Name())
	}

	_, err = registry.Get("missing")
	if err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if !strings.Contains(err.Error(), "html") {
		t.Fatalf("error does not list registered renderers: %v", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("duplicate registration accepted")
	}
}

func TestRegistryList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui"})
	registry.MustRegister(stubRenderer{name: "html"})

	names := registry.List()
	if len(names) != 2 || names[0] != "html" || names[1] != "tui" {
		t.Fatalf("list not sorted: %v", names)
	}
	if !registry.Has("tui") || registry.Has("preact") {
		t.Fatalf("has misreported")
	}
}
