package vanilla_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/payload"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/renderers/vanilla"
	"github.com/goliatone/go-payeeform/pkg/sections"
)

func renderDefault(t *testing.T, state model.FormState, options render.RenderOptions) string {
	t.Helper()

	builder, err := sections.New()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	built, err := builder.Build(state)
	if err != nil {
		t.Fatalf("build sections: %v", err)
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	output, err := renderer.Render(context.Background(), render.FormView{
		Flow:     sections.FlowRegister,
		Sections: built,
		State:    state,
	}, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func TestRenderProducesFormDocument(t *testing.T) {
	state := payload.DefaultFormState(catalog.Default())
	html := renderDefault(t, state, render.RenderOptions{Action: "/v1/payees"})

	for _, want := range []string{
		`action="/v1/payees"`,
		`enctype="multipart/form-data"`,
		`data-flow="register"`,
		"정산 계좌",
		`name="biz_type.biz_type"`,
		`name="account_info.bank_name"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "biz_info") {
		t.Fatalf("individual render leaked the business section")
	}
}

func TestRenderMarksFieldErrors(t *testing.T) {
	state := payload.DefaultFormState(catalog.Default())
	html := renderDefault(t, state, render.RenderOptions{
		Errors: map[string][]string{
			"bank_name": {"은행을 선택해 주세요"},
			"unknown":   {"전체 오류"},
		},
	})

	if !strings.Contains(html, "payeeform__field--invalid") {
		t.Fatalf("field error chrome missing")
	}
	if !strings.Contains(html, "은행을 선택해 주세요") {
		t.Fatalf("field error message missing")
	}
	if !strings.Contains(html, "전체 오류") {
		t.Fatalf("form-level fallback missing")
	}
}

func TestRenderLinksStoredDocuments(t *testing.T) {
	state := payload.DefaultFormState(catalog.Default())
	state.PersonalInfo.IDDocument = model.RemoteFile("https://cdn.example.com/id.png", "id.png", "png")

	html := renderDefault(t, state, render.RenderOptions{})
	if !strings.Contains(html, `href="https://cdn.example.com/id.png"`) {
		t.Fatalf("stored document link missing\n%s", html)
	}
}

func TestRenderDefaultsMethodToPost(t *testing.T) {
	state := payload.DefaultFormState(catalog.Default())
	html := renderDefault(t, state, render.RenderOptions{})
	if !strings.Contains(html, `method="POST"`) {
		t.Fatalf("method default missing")
	}
}
