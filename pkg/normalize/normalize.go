// Package normalize enforces the cross-field invariants of the payee form.
// Every edit flows through here: the reducer applies field intents and then
// runs the ordered rule set against the previous state, so sections and
// submissions only ever see a consistent FormState.
package normalize

import (
	"strings"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
)

// Normalizer applies the payee form rules against a reference catalog.
type Normalizer struct {
	cat *catalog.Catalog
}

// New constructs a Normalizer. A nil catalog falls back to the embedded one.
func New(cat *catalog.Catalog) *Normalizer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Normalizer{cat: cat}
}

// Normalize returns the candidate state with every invariant enforced. prev
// is the state before the triggering edit, nil on first load. The rules run
// in order and later rules may override earlier ones; the result is
// idempotent for a fixed prev.
func (n *Normalizer) Normalize(next model.FormState, prev *model.FormState) model.FormState {
	state := next

	// Default the consent choice.
	if strings.TrimSpace(string(state.BasicInfo.ConsentType)) == "" {
		state.BasicInfo.ConsentType = model.ConsentThirtyDays
	}

	// An empty invoice type takes the first allowed option for the current
	// business type; its tax ratio was never meaningful, so recompute it.
	if strings.TrimSpace(state.BizType.InvoiceType) == "" {
		state.BizType.InvoiceType = n.cat.DefaultInvoiceTypeFor(state.BizType.BizType)
		state.BizType.Tax = n.cat.TaxRatioOf(state.BizType.InvoiceType)
	}

	// Overseas-only account fields cannot survive the flag being off.
	if !state.BizType.IsOverseas {
		state.AccountInfo.SwiftCode = ""
		state.AccountInfo.BankAddress = ""
	}

	// Non-individual types carry none of the individual flags or fields.
	// Fields are blanked, not just hidden, so a later switch back to
	// individual starts clean.
	if state.BizType.BizType.IsBusiness() {
		state.BizType.IsOverseas = false
		state.BizType.IsMinor = false
		state.BizType.IsForeigner = false
		state.PersonalInfo.SSN = ""
		state.PersonalInfo.IdentificationType = ""
		state.PersonalInfo.IDDocument = model.EmptyFile()
		state.PersonalInfo.GuardianName = ""
		state.PersonalInfo.GuardianTel = ""
		state.PersonalInfo.FamilyRelationCertificate = model.EmptyFile()
		state.AccountInfo.SwiftCode = ""
		state.AccountInfo.BankAddress = ""
	}

	if state.BizType.BizType == model.BizTypeIndividual {
		// The ratio is authoritative for individuals even without a
		// prior-state diff.
		state.BizType.Tax = n.cat.TaxRatioOf(state.BizType.InvoiceType)

		if !state.BizType.IsMinor {
			state.PersonalInfo.GuardianName = ""
			state.PersonalInfo.GuardianTel = ""
			state.PersonalInfo.FamilyRelationCertificate = model.EmptyFile()
		}

		if state.BizType.IsForeigner {
			state.PersonalInfo.IdentificationType = model.IdentificationForeignerCard
		} else if state.PersonalInfo.IdentificationType == model.IdentificationForeignerCard {
			state.PersonalInfo.IdentificationType = ""
		}
	}

	if prev != nil {
		if prev.BizType.InvoiceType != state.BizType.InvoiceType {
			state.BizType.Tax = n.cat.TaxRatioOf(state.BizType.InvoiceType)
		}
		if prev.BizType.BizType != state.BizType.BizType &&
			!n.cat.AllowsInvoiceType(state.BizType.BizType, state.BizType.InvoiceType) {
			state.BizType.InvoiceType = n.cat.DefaultInvoiceTypeFor(state.BizType.BizType)
			state.BizType.Tax = n.cat.TaxRatioOf(state.BizType.InvoiceType)
		}
	}

	return state
}
