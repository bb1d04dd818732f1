package orchestrator

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/sections"
)

type captureRenderer struct {
	view    render.FormView
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, view render.FormView, opts render.RenderOptions) ([]byte, error) {
	r.view = view
	r.options = opts
	return []byte(view.Flow), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestRenderRunsPipelineEndToEnd(t *testing.T) {
	orch := New()

	result, err := orch.Render(context.Background(), Request{
		PayloadBytes: []byte(`{
			"payeeData": {
				"biz_type": "individual",
				"user_name": "홍길동",
				"tel": "010-1234-5678",
				"bank_name": "KB국민은행"
			}
		}`),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if result.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", result.ContentType)
	}
	if !strings.Contains(string(result.Output), "홍길동") {
		t.Fatalf("payload value missing from output")
	}
	if result.State.AccountInfo.BankName != "KB국민은행" {
		t.Fatalf("state not propagated: %+v", result.State.AccountInfo)
	}
	if len(result.Sections) == 0 {
		t.Fatalf("derived sections missing from result")
	}
}

func TestRenderDefaultsToRegisterFlow(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithRegistry(registry), WithDefaultRenderer(renderer.Name()))
	if _, err := orch.Render(context.Background(), Request{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.view.Flow != sections.FlowRegister {
		t.Fatalf("expected register flow, got %q", renderer.view.Flow)
	}
}

func TestRenderUnknownRendererFails(t *testing.T) {
	orch := New()
	if _, err := orch.Render(context.Background(), Request{Renderer: "preact"}); err == nil {
		t.Fatalf("expected error for unregistered renderer")
	}
}

func TestRenderAppliesDecorators(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	marker := model.DecoratorFunc(func(built []model.Section) ([]model.Section, error) {
		for i := range built {
			built[i].Label = "* " + built[i].Label
		}
		return built, nil
	})

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithDecorators(marker),
	)
	if _, err := orch.Render(context.Background(), Request{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(renderer.view.Sections) == 0 || !strings.HasPrefix(renderer.view.Sections[0].Label, "* ") {
		t.Fatalf("decorator not applied: %+v", renderer.view.Sections)
	}
}

func TestRenderPassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.form": "themes/acme/form.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	if _, err := orch.Render(context.Background(), Request{
		ThemeName:    "acme",
		ThemeVariant: "dark",
	}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection not propagated: %+v", cfg)
	}
	if cfg.Partials["forms.form"] != "themes/acme/form.tmpl" {
		t.Fatalf("manifest template did not override fallback: %v", cfg.Partials)
	}
	if cfg.Partials["forms.field"] != defaultThemeFallbacks()["forms.field"] {
		t.Fatalf("fallback partial missing: %v", cfg.Partials)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token did not win: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("asset url: %q", got)
	}
	if got := cfg.AssetURL("favicon"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}
}

func TestRenderSkipsThemeWithoutName(t *testing.T) {
	selector := &stubThemeSelector{}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)
	if _, err := orch.Render(context.Background(), Request{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("selector consulted without a theme name")
	}
	if renderer.options.Theme != nil {
		t.Fatalf("unexpected theme config: %+v", renderer.options.Theme)
	}
}

func TestEncodeSubmissionValidatesContract(t *testing.T) {
	orch := New(WithSubmissionValidation())

	state, err := orch.State(Request{})
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	state.AccountInfo.BankName = "KB국민은행"
	state.AccountInfo.AccountHolder = "홍길동"
	state.AccountInfo.AccountNumber = "1234567890"

	form, err := orch.EncodeSubmission(context.Background(), state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, ok := form.Value("bank_name"); !ok || got != "KB국민은행" {
		t.Fatalf("encoded form missing bank: %+v", form.Fields)
	}

	state.AccountInfo.AccountNumber = ""
	if _, err := orch.EncodeSubmission(context.Background(), state); err == nil {
		t.Fatalf("expected contract violation for empty account_number")
	}
}
