package payload

import (
	"strings"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
)

// Logical file field names used by the API's files map and the submission
// encoder alike.
const (
	FileFieldIDDocument        = "id_document"
	FileFieldFamilyCertificate = "family_relation_certificate"
	FileFieldBusinessDocument  = "business_document"
	FileFieldBankDocument      = "bank_document"
)

// DefaultFormState returns the hard-coded starting point for a payee that has
// never registered: individual, 30-day consent, the individual's default
// issue type, and every other leaf blank.
func DefaultFormState(cat *catalog.Catalog) model.FormState {
	if cat == nil {
		cat = catalog.Default()
	}
	invoiceType := cat.DefaultInvoiceTypeFor(model.BizTypeIndividual)
	return model.FormState{
		BasicInfo: model.BasicInfo{ConsentType: model.ConsentThirtyDays},
		BizType: model.BizTypeInfo{
			BizType:     model.BizTypeIndividual,
			InvoiceType: invoiceType,
			Tax:         cat.TaxRatioOf(invoiceType),
		},
	}
}

// Map converts an API payload into a fully shaped FormState. It never fails:
// a nil row yields the default state, and missing leaves stay blank so
// downstream code only checks values, never structure.
func Map(p Payload, cat *catalog.Catalog) model.FormState {
	if cat == nil {
		cat = catalog.Default()
	}

	state := DefaultFormState(cat)
	row := p.PayeeData
	if row == nil {
		return state
	}

	state.BizType.BizType = mapBizType(row)

	if consent := strings.TrimSpace(row.ConsentType); consent != "" {
		state.BasicInfo.ConsentType = model.ConsentType(consent)
	}

	state.BizType.InvoiceType = strings.TrimSpace(row.InvoiceType)
	if state.BizType.InvoiceType == "" {
		state.BizType.InvoiceType = cat.DefaultInvoiceTypeFor(state.BizType.BizType)
	}
	if row.Tax != nil {
		state.BizType.Tax = *row.Tax
	} else {
		state.BizType.Tax = cat.TaxRatioOf(state.BizType.InvoiceType)
	}

	// Identity fields are copied regardless of business type; they are
	// read-only echoes of the account profile.
	state.PersonalInfo.UserName = row.UserName
	state.PersonalInfo.Tel = row.Tel
	state.PersonalInfo.Email = row.Email

	if state.BizType.BizType.IsBusiness() {
		state.BizInfo.BizName = firstNonEmpty(row.BizName, row.CorpName)
		state.BizInfo.BizRegNo = firstNonEmpty(row.BizRegNo, row.CorpRegNo)
		state.BizInfo.BusinessDocument = fileRef(p.Files, FileFieldBusinessDocument)
	} else {
		state.BizType.IsOverseas = row.IsOverseas.Bool()
		state.BizType.IsMinor = row.IsMinor.Bool()
		state.BizType.IsForeigner = row.IsForeigner.Bool()
		state.PersonalInfo.SSN = row.SSN
		state.PersonalInfo.IdentificationType = row.IdentificationType
		state.PersonalInfo.IDDocument = fileRef(p.Files, FileFieldIDDocument)
		if state.BizType.IsMinor {
			state.PersonalInfo.GuardianName = row.GuardianName
			state.PersonalInfo.GuardianTel = row.GuardianTel
			state.PersonalInfo.FamilyRelationCertificate = fileRef(p.Files, FileFieldFamilyCertificate)
		}
	}

	state.AccountInfo.BankName = row.BankName
	state.AccountInfo.AccountHolder = row.AccountHolder
	state.AccountInfo.AccountNumber = row.AccountNumber
	state.AccountInfo.BankDocument = fileRef(p.Files, FileFieldBankDocument)
	if state.BizType.IsOverseas {
		state.AccountInfo.SwiftCode = row.SwiftCode
		state.AccountInfo.BankAddress = row.BankAddress
	}

	return state
}

// mapBizType resolves the row's business type. A sole proprietor row with the
// legacy is_simple_taxpayer flag set predates the dedicated enum value and is
// upgraded to simple_taxpayer.
func mapBizType(row *Row) model.BizType {
	bt := model.BizType(strings.TrimSpace(row.BizType))
	if bt == "" {
		return model.BizTypeIndividual
	}
	if bt == model.BizTypeSoleProprietor && row.IsSimpleTaxpayer.Bool() {
		return model.BizTypeSimpleTaxpayer
	}
	return bt
}

func fileRef(files map[string]File, field string) model.FileRef {
	entry, ok := files[field]
	if !ok {
		return model.EmptyFile()
	}
	return model.RemoteFile(entry.URL, entry.Name, entry.Ext)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
