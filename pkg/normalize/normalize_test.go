package normalize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/normalize"
	"github.com/goliatone/go-payeeform/pkg/payload"
)

func individualState() model.FormState {
	return payload.DefaultFormState(catalog.Default())
}

func TestNormalizeDefaultsConsentAndInvoiceType(t *testing.T) {
	n := normalize.New(nil)

	var state model.FormState
	state.BizType.BizType = model.BizTypeIndividual

	got := n.Normalize(state, nil)
	if got.BasicInfo.ConsentType != model.ConsentThirtyDays {
		t.Fatalf("consent default: %q", got.BasicInfo.ConsentType)
	}
	if got.BizType.InvoiceType != "withholding_3_3" {
		t.Fatalf("invoice default: %q", got.BizType.InvoiceType)
	}
	if !got.BizType.Tax.Equal(decimal.RequireFromString("-3.3")) {
		t.Fatalf("tax not derived: %s", got.BizType.Tax)
	}
}

func TestNormalizeClearsOverseasFields(t *testing.T) {
	n := normalize.New(nil)

	state := individualState()
	state.AccountInfo.SwiftCode = "CHASUS33"
	state.AccountInfo.BankAddress = "New York"

	got := n.Normalize(state, nil)
	if got.AccountInfo.SwiftCode != "" || got.AccountInfo.BankAddress != "" {
		t.Fatalf("overseas fields survived is_overseas=false: %+v", got.AccountInfo)
	}
}

func TestNormalizeBusinessTypeDropsIndividualFields(t *testing.T) {
	n := normalize.New(nil)

	state := individualState()
	state.BizType.BizType = model.BizTypeCorporateBusiness
	state.BizType.InvoiceType = "tax_invoice"
	state.BizType.IsMinor = true
	state.BizType.IsForeigner = true
	state.PersonalInfo.SSN = "900101-1234567"
	state.PersonalInfo.FamilyRelationCertificate = model.RemoteFile("https://cdn.example.com/cert.pdf", "cert.pdf", "pdf")

	got := n.Normalize(state, nil)
	if got.BizType.IsMinor || got.BizType.IsForeigner || got.BizType.IsOverseas {
		t.Fatalf("individual flags survived: %+v", got.BizType)
	}
	if got.PersonalInfo.SSN != "" {
		t.Fatalf("ssn survived: %q", got.PersonalInfo.SSN)
	}
	if !got.PersonalInfo.FamilyRelationCertificate.IsEmpty() {
		t.Fatalf("family certificate survived")
	}
}

func TestNormalizeNonMinorLosesGuardianFields(t *testing.T) {
	n := normalize.New(nil)

	state := individualState()
	state.PersonalInfo.GuardianName = "홍판서"
	state.PersonalInfo.GuardianTel = "010-9999-8888"
	state.PersonalInfo.FamilyRelationCertificate = model.PendingFile("cert.pdf", []byte("bin"))

	got := n.Normalize(state, nil)
	if got.PersonalInfo.GuardianName != "" || got.PersonalInfo.GuardianTel != "" {
		t.Fatalf("guardian fields survived is_minor=false")
	}
	if !got.PersonalInfo.FamilyRelationCertificate.IsEmpty() {
		t.Fatalf("family certificate survived is_minor=false")
	}
}

func TestNormalizeForeignerSentinel(t *testing.T) {
	n := normalize.New(nil)

	state := individualState()
	state.BizType.IsForeigner = true
	state.PersonalInfo.IdentificationType = "passport"

	got := n.Normalize(state, nil)
	if got.PersonalInfo.IdentificationType != model.IdentificationForeignerCard {
		t.Fatalf("sentinel not forced: %q", got.PersonalInfo.IdentificationType)
	}

	got.BizType.IsForeigner = false
	got = n.Normalize(got, &state)
	if got.PersonalInfo.IdentificationType != "" {
		t.Fatalf("sentinel not cleared after flag reset: %q", got.PersonalInfo.IdentificationType)
	}
}

func TestNormalizeRecomputesTaxOnInvoiceChange(t *testing.T) {
	n := normalize.New(nil)

	orig := individualState()
	next := orig
	next.BizType.BizType = model.BizTypeSoleProprietor
	next.BizType.InvoiceType = "tax_invoice"
	prev := n.Normalize(next, &orig)
	if !prev.BizType.Tax.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("setup tax: %s", prev.BizType.Tax)
	}

	next = prev
	next.BizType.InvoiceType = "no_invoice"
	got := n.Normalize(next, &prev)
	if !got.BizType.Tax.IsZero() {
		t.Fatalf("tax not recomputed on invoice change: %s", got.BizType.Tax)
	}
}

func TestNormalizeForcesAllowedInvoiceTypeOnBizTypeChange(t *testing.T) {
	n := normalize.New(nil)

	prev := individualState()
	prev.BizType.BizType = model.BizTypeSoleProprietor
	prev.BizType.InvoiceType = "tax_invoice"
	prev = n.Normalize(prev, nil)

	next := prev
	next.BizType.BizType = model.BizTypeIndividual
	got := n.Normalize(next, &prev)

	if got.BizType.InvoiceType != "withholding_3_3" {
		t.Fatalf("invoice type not forced: %q", got.BizType.InvoiceType)
	}
	if !got.BizType.Tax.Equal(decimal.RequireFromString("-3.3")) {
		t.Fatalf("tax not recomputed after forced invoice: %s", got.BizType.Tax)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := normalize.New(nil)

	prev := individualState()
	state := prev
	state.BizType.IsForeigner = true
	state.BizType.IsOverseas = true
	state.AccountInfo.SwiftCode = "CHASUS33"

	once := n.Normalize(state, &prev)
	twice := n.Normalize(once, &prev)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("normalize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestApplyRunsIntentsThroughLenses(t *testing.T) {
	n := normalize.New(nil)
	state := individualState()

	got, err := n.Apply(state,
		normalize.SetField("biz_type.biz_type", "corporate_business"),
		normalize.SetField("biz_info.biz_name", "주식회사 예제"),
	)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.BizType.BizType != model.BizTypeCorporateBusiness {
		t.Fatalf("biz type intent lost: %q", got.BizType.BizType)
	}
	if got.BizInfo.BizName != "주식회사 예제" {
		t.Fatalf("biz name intent lost: %q", got.BizInfo.BizName)
	}
	if got.BizType.InvoiceType != "tax_invoice" {
		t.Fatalf("invoice not forced by normalize: %q", got.BizType.InvoiceType)
	}
}

func TestApplyUnknownPathLeavesStateUntouched(t *testing.T) {
	n := normalize.New(nil)
	state := individualState()

	got, err := n.Apply(state, normalize.SetField("biz_type.tax", "5"))
	if err == nil {
		t.Fatalf("expected error for derived path")
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Fatalf("state mutated on failed intent:\n%s", diff)
	}
}
