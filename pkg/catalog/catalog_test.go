package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
)

func TestIssueTypesForSelectsByTag(t *testing.T) {
	cat := catalog.Default()

	cases := []struct {
		bizType model.BizType
		want    []string
	}{
		{model.BizTypeIndividual, []string{"withholding_3_3"}},
		{model.BizTypeSoleProprietor, []string{"tax_invoice", "cash_receipt", "no_invoice"}},
		{model.BizTypeSimpleTaxpayer, []string{"tax_invoice", "cash_receipt", "no_invoice"}},
		{model.BizTypeTaxFreeBusiness, []string{"tax_free_invoice"}},
		{model.BizTypeCorporateBusiness, []string{"tax_invoice"}},
	}

	for _, tc := range cases {
		entries := cat.IssueTypesFor(tc.bizType)
		if len(entries) != len(tc.want) {
			t.Fatalf("%s: got %d entries, want %d", tc.bizType, len(entries), len(tc.want))
		}
		for i, entry := range entries {
			if entry.Value != tc.want[i] {
				t.Fatalf("%s[%d]: got %q, want %q", tc.bizType, i, entry.Value, tc.want[i])
			}
		}
	}
}

func TestIssueTypesForUnknownTypeFallsBackToFullCatalog(t *testing.T) {
	cat := catalog.Default()
	entries := cat.IssueTypesFor(model.BizType("franchise"))
	if len(entries) != len(cat.IssueTypes()) {
		t.Fatalf("unknown type should see the full catalog, got %d entries", len(entries))
	}
}

func TestTaxRatioOf(t *testing.T) {
	cat := catalog.Default()

	if got := cat.TaxRatioOf("withholding_3_3"); !got.Equal(decimal.RequireFromString("-3.3")) {
		t.Fatalf("withholding ratio: %s", got)
	}
	if got := cat.TaxRatioOf("tax_invoice"); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("tax invoice ratio: %s", got)
	}
	if got := cat.TaxRatioOf("does_not_exist"); !got.IsZero() {
		t.Fatalf("unknown ratio should be zero, got %s", got)
	}
}

func TestDefaultInvoiceTypeFor(t *testing.T) {
	cat := catalog.Default()

	if got := cat.DefaultInvoiceTypeFor(model.BizTypeIndividual); got != "withholding_3_3" {
		t.Fatalf("individual default: %q", got)
	}
	if got := cat.DefaultInvoiceTypeFor(model.BizTypeCorporateBusiness); got != "tax_invoice" {
		t.Fatalf("corporate default: %q", got)
	}
}

func TestAllowsInvoiceType(t *testing.T) {
	cat := catalog.Default()

	if cat.AllowsInvoiceType(model.BizTypeCorporateBusiness, "withholding_3_3") {
		t.Fatalf("corporate must not allow withholding")
	}
	if !cat.AllowsInvoiceType(model.BizTypeSoleProprietor, "cash_receipt") {
		t.Fatalf("sole proprietor should allow cash receipts")
	}
}

func TestOptionBuilders(t *testing.T) {
	cat := catalog.Default()

	if got := len(cat.BizTypeOptions()); got != len(model.BizTypes()) {
		t.Fatalf("biz type options: %d", got)
	}
	if got := len(cat.BankOptions()); got == 0 {
		t.Fatalf("bank options empty")
	}
	if got := len(cat.ConsentTypeOptions()); got != 2 {
		t.Fatalf("consent options: %d", got)
	}

	options := cat.IssueTypeOptionsFor(model.BizTypeIndividual)
	if len(options) != 1 || options[0].Value != "withholding_3_3" {
		t.Fatalf("individual issue options: %+v", options)
	}
	if options[0].Label == "" {
		t.Fatalf("issue option label missing")
	}
}
